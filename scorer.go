// scorer.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the scoring of words, both on their own,
// as formed from a rack, and as laid down on a Board with its
// letter and word multipliers.

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

// Scorer calculates the points of words using a LetterPoints table
type Scorer struct {
	points LetterPoints
}

// NewScorer returns a Scorer for the given point table,
// or for the English table if points is nil
func NewScorer(points LetterPoints) *Scorer {
	if points == nil {
		points = EnglishLetterPoints
	}
	return &Scorer{points: points}
}

// Points returns the point table of the Scorer
func (s *Scorer) Points() LetterPoints {
	return s.points
}

// checkWord verifies that a word to be scored is non-empty
// and consists of the letters A-Z only
func checkWord(word string) error {
	if word == "" {
		return newError(ErrInvalidInput, "empty word")
	}
	for _, r := range word {
		if !isLetter(r) {
			return newError(ErrInvalidInput, "word '%v' contains invalid letter '%c'", word, r)
		}
	}
	return nil
}

// letterValue returns the face value of a letter
func (s *Scorer) letterValue(letter rune) (int, error) {
	value, ok := s.points.Points(letter)
	if !ok {
		return 0, newError(ErrInvalidInput, "no point value for letter '%c'", letter)
	}
	return value, nil
}

// consume removes the tile for the given letter from the rack
// content and returns its points. If the letter itself is not
// available, a blank tile is used instead, scoring 0.
func (s *Scorer) consume(content *RackTiles, word string, rack Rack, letter rune) (int, error) {
	switch {
	case content.ContainsTile(letter):
		content.RemoveTile(letter)
		return s.letterValue(letter)
	case content.ContainsBlank():
		content.RemoveTile(Wildcard)
		return 0, nil
	}
	return 0, newError(ErrInvalidPlay,
		"the word '%v' needs a '%c' which is not left on the rack '%v'", word, letter, rack)
}

// Score returns the sum of the letter points of the word, as formed
// from the tiles of the rack. Each rack tile is used at most once;
// a letter missing from the rack is covered by a blank tile, if
// one is left, which scores 0.
func (s *Scorer) Score(word string, rack Rack) (int, error) {
	if err := checkWord(word); err != nil {
		return 0, err
	}
	content := rack.Content()
	score := 0
	for _, letter := range word {
		points, err := s.consume(content, word, rack, letter)
		if err != nil {
			return 0, err
		}
		score += points
	}
	return score, nil
}

// ScoreOnBoard returns the score of the word when laid down from
// the rack on the Board, starting at pos and extending in the given
// direction. The points of letters laid on DoubleLetter and
// TripleLetter squares are multiplied by 2 and 3, respectively.
// The total is then doubled if a DoubleWord square is covered and
// tripled if a TripleWord square is covered; each word multiplier
// applies once, however many such squares the word covers. A square
// that is already occupied must hold the same letter as the word;
// it scores the face value of its letter and uses no rack tile.
func (s *Scorer) ScoreOnBoard(word string, rack Rack, board *Board, dir Direction, pos Coordinate) (int, error) {
	if err := checkWord(word); err != nil {
		return 0, err
	}
	rowIncr, colIncr, err := dir.increments()
	if err != nil {
		return 0, err
	}
	if board == nil {
		return 0, newError(ErrInvalidInput, "no board given")
	}
	content := rack.Content()
	var score = 0
	var doubleWord, tripleWord bool
	row, col := pos.Row, pos.Col
	for _, letter := range word {
		sq := board.Sq(row, col)
		if sq == nil {
			return 0, newError(ErrInvalidPlay,
				"the word '%v' at %v,%v runs off the board", word, pos.Row, pos.Col)
		}
		if sq.Letter != 0 {
			// A previously laid tile: it must match the word,
			// and it scores its face value only
			if sq.Letter != letter {
				return 0, newError(ErrInvalidPlay,
					"square %v,%v holds '%c' but the word '%v' needs '%c'",
					row, col, sq.Letter, word, letter)
			}
			value, err := s.letterValue(letter)
			if err != nil {
				return 0, err
			}
			score += value
		} else {
			points, err := s.consume(content, word, rack, letter)
			if err != nil {
				return 0, err
			}
			score += points * sq.Layout.LetterMultiplier()
			switch sq.Layout {
			case DoubleWord:
				doubleWord = true
			case TripleWord:
				tripleWord = true
			}
		}
		row += rowIncr
		col += colIncr
	}
	if doubleWord {
		score *= DoubleWord.WordMultiplier()
	}
	if tripleWord {
		score *= TripleWord.WordMultiplier()
	}
	return score, nil
}
