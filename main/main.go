// main.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson

// Command line tool that lists the words that can be formed
// from a rack, and the best opening plays on a board

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	skrafl "github.com/vthorsteinsson/skraflfinder"
)

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage: %v [-config file] [-v] <data-folder> <rack> [<layout-name>]\n",
		filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

// openFile opens a required file in the data folder
func openFile(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Msg("required file missing")
	}
	return f
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	verbose := flag.Bool("v", false, "Log debug output")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 2 || flag.NArg() > 3 {
		usage()
		os.Exit(2)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := skrafl.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	cfg.DataFolder = flag.Arg(0)
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if *verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	rack, err := skrafl.ParseRack(flag.Arg(1))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid rack")
	}
	if _, err := os.Stat(cfg.WordlistPath()); err != nil {
		log.Fatal().Err(err).Msg("required file missing")
	}
	pointsFile := openFile(cfg.LetterPointsPath())
	points, err := skrafl.ReadLetterPoints(pointsFile)
	pointsFile.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid letter points")
	}

	ctx := context.Background()
	index, err := cfg.OpenIndex(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to open word index")
	}
	defer index.Store().Close()
	finder := skrafl.NewFinder(index, skrafl.NewScorer(points), cfg.FinderOptions()...)

	words, err := finder.ScoredAnagrams(ctx, rack)
	if err != nil {
		log.Fatal().Err(err).Msg("anagram search failed")
	}
	for _, w := range words {
		fmt.Printf("%v %v\n", w.Word, w.Points)
	}

	// The board is the default layout unless a layout is named
	layoutName := ""
	if flag.NArg() == 3 {
		layoutName = flag.Arg(2)
	}
	board, err := cfg.OpenBoard(layoutName)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to read board")
	}
	fmt.Printf("\n%v\n", board)
	plays, err := finder.OptimalPlays(ctx, rack, board)
	if errors.Is(err, skrafl.ErrNoExtender) {
		log.Warn().Msg("the board has tiles on it, so only anagrams are listed")
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("unable to find plays")
	}
	for _, play := range plays {
		fmt.Println(play)
	}
}
