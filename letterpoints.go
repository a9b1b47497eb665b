// letterpoints.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the per-letter point tables used for scoring,
// and the parser for letter-points source files.

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
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// LetterPoints maps each letter to its point value.
// The wildcard is always worth 0 points.
type LetterPoints map[rune]int

// initEnglishLetterPoints creates the scores of the standard
// English SCRABBLE(tm) tile set
func initEnglishLetterPoints() LetterPoints {
	return LetterPoints{
		'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1,
		'F': 4, 'G': 2, 'H': 4, 'I': 1, 'J': 8,
		'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1,
		'P': 3, 'Q': 10, 'R': 1, 'S': 1, 'T': 1,
		'U': 1, 'V': 4, 'W': 4, 'X': 8, 'Y': 4,
		'Z': 10, Wildcard: 0,
	}
}

// EnglishLetterPoints is the standard English SCRABBLE(tm) point table
var EnglishLetterPoints = initEnglishLetterPoints()

// ReadLetterPoints parses a letter-points source, consisting of
// lines of the form <letter>,<points>. Blank lines and lines
// starting with '#' are ignored.
func ReadLetterPoints(r io.Reader) (LetterPoints, error) {
	points := LetterPoints{Wildcard: 0}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		letterPart, pointsPart, ok := strings.Cut(line, ",")
		if !ok {
			return nil, newError(ErrInvalidInput,
				"letter points line %v: expected <letter>,<points> but got '%v'", lineNo, line)
		}
		letterPart = strings.ToUpper(strings.TrimSpace(letterPart))
		letter, size := utf8.DecodeRuneInString(letterPart)
		if size != len(letterPart) || !isLetter(letter) {
			return nil, newError(ErrInvalidInput,
				"letter points line %v: '%v' is not a letter in A-Z", lineNo, letterPart)
		}
		value, err := strconv.Atoi(strings.TrimSpace(pointsPart))
		if err != nil || value < 0 {
			return nil, newError(ErrInvalidInput,
				"letter points line %v: '%v' is not a valid point value", lineNo, pointsPart)
		}
		points[letter] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, newError(ErrInvalidInput, "reading letter points: %v", err)
	}
	return points, nil
}

// Points returns the point value of a letter, and false
// if the letter has no entry in the table
func (lp LetterPoints) Points(letter rune) (int, bool) {
	if letter == Wildcard {
		return 0, true
	}
	value, ok := lp[letter]
	return value, ok
}
