// go-app/main.go
// App Engine main package for the skraflfinder service
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	skrafl "github.com/vthorsteinsson/skraflfinder"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	cfg, err := skrafl.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Info().Str("go", runtime.Version()).Msg("finder service starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := skrafl.NewMetrics(reg)

	index, err := cfg.OpenIndex(ctx, skrafl.WithMetrics(metrics))
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Backend).Msg("unable to open word index")
	}
	defer index.Store().Close()

	points := skrafl.EnglishLetterPoints
	if f, err := os.Open(cfg.LetterPointsPath()); err == nil {
		points, err = skrafl.ReadLetterPoints(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("invalid letter points")
		}
	} else {
		log.Info().Str("path", cfg.LetterPointsPath()).Msg("no letter points file, using English points")
	}

	finder := skrafl.NewFinder(index, skrafl.NewScorer(points), cfg.FinderOptions()...)
	srv := skrafl.NewServer(finder, skrafl.ServerOptions{
		AccessKey:      cfg.AccessKey,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if cfg.AllowedOrigins == "*" {
		log.Info().Msg("no allowed origins specified, allowing all")
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Backend).Msg("listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server exited")
	}
}
