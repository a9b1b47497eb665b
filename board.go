// board.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.
// This file implements the Board and its Squares, as parsed
// from a layout of premium squares and a current board state

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
	"bytes"
	"embed"
	"io"
	"path"
	"strings"
	"unicode"
)

// BoardSize is the size of the standard Board, and thereby
// the maximum length of a rack or a word
const BoardSize = 15

// Point to the layout resources in the layouts directory
//
//go:embed layouts/*.board
var layoutFS embed.FS

// DefaultLayoutName is the name of the standard embedded layout
const DefaultLayoutName = "default"

// TileKind is the scoring/occupancy category of a board Square
type TileKind int

const (
	Empty TileKind = iota
	Start
	DoubleLetter
	TripleLetter
	DoubleWord
	TripleWord
	Occupied
)

// layoutCodes maps the single-character codes of a layout
// source to tile kinds
var layoutCodes = map[rune]TileKind{
	'.': Empty,
	'1': Start,
	'2': DoubleLetter,
	'3': TripleLetter,
	'4': DoubleWord,
	'5': TripleWord,
}

var tileKindNames = [...]string{
	"Empty", "Start", "DoubleLetter", "TripleLetter",
	"DoubleWord", "TripleWord", "Occupied",
}

var tileKindCodes = [...]rune{'.', '1', '2', '3', '4', '5', '#'}

func (kind TileKind) String() string {
	if kind < Empty || kind > Occupied {
		return "Unknown"
	}
	return tileKindNames[kind]
}

// LetterMultiplier returns the factor applied to the
// points of a letter laid down on a square of this kind
func (kind TileKind) LetterMultiplier() int {
	switch kind {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	}
	return 1
}

// WordMultiplier returns the factor applied to the points
// of a word covering a square of this kind
func (kind TileKind) WordMultiplier() int {
	switch kind {
	case DoubleWord:
		return 2
	case TripleWord:
		return 3
	}
	return 1
}

// Square is a Board square that may be occupied by a letter
type Square struct {
	// Layout is the kind of the square according to the layout;
	// it is never Occupied
	Layout TileKind
	// Letter is the letter occupying the square, or 0 if none
	Letter rune
	Row    int // Board row 0..Size()-1
	Col    int // Board column 0..Size()-1
}

// Kind returns Occupied if a letter is on the square,
// otherwise the layout kind of the square
func (square *Square) Kind() TileKind {
	if square.Letter != 0 {
		return Occupied
	}
	return square.Layout
}

// String represents a Square as a string: its letter
// if occupied, or else its layout code
func (square *Square) String() string {
	if square.Letter != 0 {
		return string(square.Letter)
	}
	return string(tileKindCodes[square.Layout])
}

// Board represents the board as a square matrix of Squares.
// A Board is not modified after it has been parsed.
type Board struct {
	Squares [][]Square
	// The number of tiles on the board
	NumTiles int
}

// readGrid reads a newline-delimited grid of single-character
// cells. Trailing empty lines are ignored.
func readGrid(r io.Reader) ([][]rune, error) {
	var grid [][]rune
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		grid = append(grid, []rune(strings.TrimRight(scanner.Text(), "\r")))
	}
	if err := scanner.Err(); err != nil {
		return nil, newError(ErrInvalidInput, "reading board: %v", err)
	}
	for len(grid) > 0 && len(grid[len(grid)-1]) == 0 {
		grid = grid[:len(grid)-1]
	}
	return grid, nil
}

// ParseLayout parses a layout source into an empty Board.
// The layout must be a non-empty square grid of layout codes,
// with at most one Start square.
func ParseLayout(r io.Reader) (*Board, error) {
	grid, err := readGrid(r)
	if err != nil {
		return nil, err
	}
	size := len(grid)
	if size == 0 {
		return nil, newError(ErrInvalidInput, "layout is empty")
	}
	board := &Board{Squares: make([][]Square, size)}
	starts := 0
	for row, line := range grid {
		if len(line) != size {
			return nil, newError(ErrInvalidInput,
				"layout row %v has %v squares, expected %v", row, len(line), size)
		}
		board.Squares[row] = make([]Square, size)
		for col, code := range line {
			kind, ok := layoutCodes[code]
			if !ok {
				return nil, newError(ErrInvalidInput,
					"unrecognized layout code '%c' at %v,%v", code, row, col)
			}
			if kind == Start {
				starts++
			}
			board.Squares[row][col] = Square{Layout: kind, Row: row, Col: col}
		}
	}
	if starts > 1 {
		return nil, newError(ErrInvalidInput, "layout has %v start squares", starts)
	}
	return board, nil
}

// ParseBoard parses a layout source and a current-state source of
// the same dimensions into a Board. In the current state, '.' or a
// space denotes an unoccupied square and a letter denotes a tile.
// If current is nil, the board is empty.
func ParseBoard(layout, current io.Reader) (*Board, error) {
	board, err := ParseLayout(layout)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return board, nil
	}
	grid, err := readGrid(current)
	if err != nil {
		return nil, err
	}
	size := board.Size()
	if len(grid) != size {
		return nil, newError(ErrNotFound,
			"current board has %v rows, layout has %v", len(grid), size)
	}
	for row, line := range grid {
		if len(line) != size {
			return nil, newError(ErrNotFound,
				"current board row %v has %v squares, layout has %v", row, len(line), size)
		}
		for col, letter := range line {
			if letter == '.' || letter == ' ' {
				continue
			}
			letter = unicode.ToUpper(letter)
			if !isLetter(letter) {
				return nil, newError(ErrInvalidInput,
					"invalid letter '%c' on current board at %v,%v", letter, row, col)
			}
			board.Squares[row][col].Letter = letter
			board.NumTiles++
		}
	}
	return board, nil
}

// EmbeddedLayout returns the contents of a layout that ships
// with the package, such as DefaultLayoutName
func EmbeddedLayout(name string) ([]byte, error) {
	data, err := layoutFS.ReadFile(path.Join("layouts", name+".board"))
	if err != nil {
		return nil, newError(ErrNotFound, "no embedded layout named '%v'", name)
	}
	return data, nil
}

// DefaultLayout returns a reader for the standard 15x15 layout
func DefaultLayout() io.Reader {
	data, err := EmbeddedLayout(DefaultLayoutName)
	if err != nil {
		// The default layout is compiled into the package
		panic(err)
	}
	return bytes.NewReader(data)
}

// Size returns the number of rows (and columns) of the Board
func (board *Board) Size() int {
	return len(board.Squares)
}

// Sq returns a pointer to a Board square, or nil
// if the coordinate is outside the Board
func (board *Board) Sq(row, col int) *Square {
	if row < 0 || row >= board.Size() || col < 0 || col >= board.Size() {
		return nil
	}
	return &board.Squares[row][col]
}

// IsOpeningTurn returns true if no tiles have been placed on the Board
func (board *Board) IsOpeningTurn() bool {
	return board.NumTiles == 0
}

// Origin returns the coordinate of the Start square
func (board *Board) Origin() (Coordinate, error) {
	for row := range board.Squares {
		for col := range board.Squares[row] {
			if board.Squares[row][col].Layout == Start {
				return Coordinate{Row: row, Col: col}, nil
			}
		}
	}
	return Coordinate{}, newError(ErrNotFound, "board has no start square")
}

// String represents a Board as a string, one line per row
func (board *Board) String() string {
	var sb strings.Builder
	for i := range board.Squares {
		for j := range board.Squares[i] {
			sb.WriteString(board.Squares[i][j].String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
