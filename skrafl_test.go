// skrafl_test.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.
// This file contains end-to-end tests and benchmarks for the skrafl package

/*

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.

*/

package skrafl

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func compareResults(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, s := range a {
		if s != b[i] {
			return false
		}
	}
	return true
}

func TestRackScenarios(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), SQLiteFileName))
	if err != nil {
		t.Fatalf("Unable to open SQLite store: %v", err)
	}
	defer store.Close()
	index, err := OpenIndex(ctx, store, testWordlist)
	if err != nil {
		t.Fatalf("Unable to build index: %v", err)
	}
	finder := NewFinder(index, nil)
	cases := []struct {
		rack  string
		words []string
	}{
		{"TEERS", []string{"EERST", "EET", "ER", "ESTER", "RESET"}},
		{"T??RS", []string{"EERST", "EET", "ER", "ESTER", "MN", "RESET", "STAAR", "STEUR", "ZE"}},
		{"XYZ", []string{}},
		{"STEER", []string{"EERST", "EET", "ER", "ESTER", "RESET"}},
	}
	for _, c := range cases {
		results, err := finder.Anagrams(ctx, MustParseRack(c.rack))
		if err != nil {
			t.Errorf("Anagrams(%v) failed: %v", c.rack, err)
			continue
		}
		// Compare as sets; the order is by score
		sort.Strings(results)
		if !compareResults(results, c.words) {
			t.Errorf("Anagrams(%v) returns incorrect result: %v", c.rack, results)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	// Every indexed word is found under its own key
	index := newTestIndex(t)
	ctx := context.Background()
	for _, word := range testWords {
		key, err := KeyOf(word)
		if err != nil {
			t.Fatalf("KeyOf(%v): %v", word, err)
		}
		results, err := index.Lookup(ctx, []Key{key})
		if err != nil {
			t.Fatalf("Lookup(%v): %v", word, err)
		}
		if i := sort.SearchStrings(results, word); i == len(results) || results[i] != word {
			t.Errorf("Did not find word '%v' under its own key", word)
		}
	}
}

func TestLetterPointsFile(t *testing.T) {
	f, err := os.Open("testdata/letterpoints.txt")
	if err != nil {
		t.Fatalf("Unable to open letter points: %v", err)
	}
	defer f.Close()
	points, err := ReadLetterPoints(f)
	if err != nil {
		t.Fatalf("Unable to read letter points: %v", err)
	}
	scorer := NewScorer(points)
	if s, _ := scorer.Score("PEST", MustParseRack("TESP?")); s != 9 {
		t.Errorf("PEST from TESP? should score 9, not %v", s)
	}
	if s, _ := scorer.Score("PEST", MustParseRack("TES?")); s != 5 {
		t.Errorf("PEST from TES? should score 5, not %v", s)
	}
}

func BenchmarkAnagrams(b *testing.B) {
	ctx := context.Background()
	index, err := OpenIndex(ctx, NewMemoryStore(), testWordlist)
	if err != nil {
		b.Fatalf("Unable to build index: %v", err)
	}
	finder := NewFinder(index, nil)
	// Define the anagrammer goroutine
	anagrammer := func(rack string, ch chan int) {
		cnt := 0
		sumLength := 0
		words, _ := finder.Anagrams(ctx, MustParseRack(rack))
		for _, w := range words {
			cnt++
			sumLength += len(w) // Use w
		}
		// Send the results back on this anagrammer's channel
		ch <- cnt
		ch <- sumLength
	}
	// We will look up four racks in each benchmark loop
	// iteration, using four parallel goroutines
	racks := []string{"?EERST", "TEERS?S", "STAAR?", "T??RS"}
	// Make the channels, one for each rack
	ch := make([]chan int, len(racks))
	for j := 0; j < len(ch); j++ {
		ch[j] = make(chan int)
	}
	// Now run the benchmark proper
	for i := 0; i < b.N; i++ {
		// Kick off the parallel anagrammers
		for j, rack := range racks {
			go anagrammer(rack, ch[j])
		}
		// Collect the results as they come back
		var cnt, sumLength int
		for _, c := range ch {
			cnt += <-c
			sumLength += <-c
		}
	}
}

func BenchmarkCombinations(b *testing.B) {
	rack := MustParseRack("AEINRST")
	for i := 0; i < b.N; i++ {
		for _, combo := range Combinations(rack) {
			_ = ExpandWildcards(combo)
		}
	}
}
