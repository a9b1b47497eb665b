// finder.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Finder, which combines the word index,
// the scorer and the board to find the words that can be formed
// from a rack, and the plays that can be made with them.

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
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Extender finds plays on a board that already has tiles on it,
// i.e. plays that connect the rack tiles to the tiles laid down
// earlier. The returned plays should be ranked best first.
type Extender interface {
	Extend(ctx context.Context, rack Rack, board *Board) ([]Play, error)
}

// ScoredWord is a word that can be formed from a rack,
// along with its score
type ScoredWord struct {
	Word   string `json:"word"`
	Points int    `json:"points"`
}

// DefaultMaxWildcards is the default number of blank tiles
// allowed in a rack, as in a standard game
const DefaultMaxWildcards = 2

// Finder finds words and plays for a rack
type Finder struct {
	index        *Index
	scorer       *Scorer
	extender     Extender
	maxWildcards int
}

// FinderOption configures a Finder
type FinderOption func(*Finder)

// WithExtender sets the Extender used for non-opening turns
func WithExtender(e Extender) FinderOption {
	return func(f *Finder) {
		f.extender = e
	}
}

// WithMaxWildcards sets the number of blank tiles allowed in a
// rack. Each additional blank multiplies the work of a search
// about sixfold.
func WithMaxWildcards(n int) FinderOption {
	return func(f *Finder) {
		f.maxWildcards = n
	}
}

// NewFinder returns a Finder that looks words up in the index
// and scores them with the scorer (English points if nil)
func NewFinder(index *Index, scorer *Scorer, opts ...FinderOption) *Finder {
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	f := &Finder{index: index, scorer: scorer, maxWildcards: DefaultMaxWildcards}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Scorer returns the Scorer of the Finder
func (f *Finder) Scorer() *Scorer {
	return f.scorer
}

// Implement a strategy for sorting word lists by score

type byScore []ScoredWord

func (list byScore) Len() int {
	return len(list)
}

func (list byScore) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byScore) Less(i, j int) bool {
	// Ascending order, lowest score first
	return list[i].Points < list[j].Points
}

// ScoredAnagrams returns the dictionary words that can be formed
// from the tiles of the rack, each with its score, in ascending
// order of score. Words of equal score are in lexicographic order.
// A rack with more blank tiles than the Finder allows is rejected.
func (f *Finder) ScoredAnagrams(ctx context.Context, rack Rack) ([]ScoredWord, error) {
	if blanks := rack.NumBlanks(); blanks > f.maxWildcards {
		return nil, newError(ErrInvalidInput,
			"rack '%v' has %v blank tiles, at most %v are allowed", rack, blanks, f.maxWildcards)
	}
	combos := Combinations(rack)
	if len(combos) == 0 {
		return []ScoredWord{}, nil
	}
	words, err := f.index.Anagrams(ctx, combos)
	if err != nil {
		return nil, err
	}
	// words is sorted, and the stable sort keeps it so within each score
	result := make([]ScoredWord, 0, len(words))
	for _, word := range words {
		points, err := f.scorer.Score(word, rack)
		if err != nil {
			return nil, err
		}
		result = append(result, ScoredWord{Word: word, Points: points})
	}
	sort.Stable(byScore(result))
	log.Debug().
		Str("rack", rack.String()).
		Int("combinations", len(combos)).
		Int("words", len(result)).
		Msg("anagrams found")
	return result, nil
}

// Anagrams returns the dictionary words that can be formed from
// the tiles of the rack, in ascending order of score
func (f *Finder) Anagrams(ctx context.Context, rack Rack) ([]string, error) {
	scored, err := f.ScoredAnagrams(ctx, rack)
	if err != nil {
		return nil, err
	}
	return lo.Map(scored, func(sw ScoredWord, _ int) string { return sw.Word }), nil
}

// OptimalPlays returns the best plays for the rack on the board.
// On the opening turn, the highest scoring anagram that fits on the
// board is placed horizontally across the start square, and one Play
// is returned for each anchor column where the word covers it,
// leftmost first. On
// later turns, the plays are found by the Extender of the Finder;
// if it has none, ErrNoExtender is returned.
func (f *Finder) OptimalPlays(ctx context.Context, rack Rack, board *Board) ([]Play, error) {
	if board == nil {
		return nil, newError(ErrInvalidInput, "no board given")
	}
	if !board.IsOpeningTurn() {
		if f.extender == nil {
			return nil, &Error{Err: ErrNoExtender,
				Message: "the board has tiles on it and no extender is configured"}
		}
		return f.extender.Extend(ctx, rack, board)
	}
	origin, err := board.Origin()
	if err != nil {
		return nil, err
	}
	scored, err := f.ScoredAnagrams(ctx, rack)
	if err != nil {
		return nil, err
	}
	plays := make([]Play, 0)
	// Words longer than the board is wide cannot be placed
	scored = lo.Filter(scored, func(sw ScoredWord, _ int) bool {
		return len(sw.Word) <= board.Size()
	})
	if len(scored) == 0 {
		return plays, nil
	}
	// The list is in ascending order of score, and lexicographic
	// within a score, so the best word is the first one having
	// the highest score
	best := lo.MaxBy(scored, func(a, b ScoredWord) bool { return a.Points > b.Points })
	length := len(best.Word)
	first := max(0, origin.Col-length+1)
	last := min(origin.Col, board.Size()-length)
	for col := first; col <= last; col++ {
		plays = append(plays, Play{
			Word:      best.Word,
			Points:    best.Points,
			Anchor:    Coordinate{Row: origin.Row, Col: col},
			Direction: Horizontal,
		})
	}
	return plays, nil
}
