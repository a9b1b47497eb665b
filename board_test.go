// board_test.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.
// This file contains tests for board parsing

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
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

// emptyRows returns size rows of size unoccupied squares
func emptyRows(size int) []string {
	rows := make([]string, size)
	for i := range rows {
		rows[i] = strings.Repeat(".", size)
	}
	return rows
}

// gridReader joins grid rows into a newline-delimited source
func gridReader(rows []string) *strings.Reader {
	return strings.NewReader(strings.Join(rows, "\n") + "\n")
}

func TestDefaultLayout(t *testing.T) {
	is := is.New(t)
	board, err := ParseBoard(DefaultLayout(), nil)
	is.NoErr(err)
	is.Equal(board.Size(), BoardSize)
	is.True(board.IsOpeningTurn())
	origin, err := board.Origin()
	is.NoErr(err)
	is.Equal(origin, Coordinate{Row: 7, Col: 7})
	is.Equal(board.Sq(0, 0).Kind(), TripleWord)
	is.Equal(board.Sq(1, 1).Kind(), DoubleWord)
	is.Equal(board.Sq(1, 5).Kind(), TripleLetter)
	is.Equal(board.Sq(0, 3).Kind(), DoubleLetter)
	is.Equal(board.Sq(0, 1).Kind(), Empty)
	is.Equal(board.Sq(-1, 0), nil)
	is.Equal(board.Sq(0, BoardSize), nil)

	data, err := EmbeddedLayout(DefaultLayoutName)
	is.NoErr(err)
	is.Equal(board.String(), string(data))

	_, err = EmbeddedLayout("nonexistent")
	is.True(errors.Is(err, ErrNotFound))
}

func TestParseBoardOccupied(t *testing.T) {
	is := is.New(t)
	rows := emptyRows(BoardSize)
	rows[7] = ".......test...."
	board, err := ParseBoard(DefaultLayout(), gridReader(rows))
	is.NoErr(err)
	is.True(!board.IsOpeningTurn())
	is.Equal(board.NumTiles, 4)
	sq := board.Sq(7, 7)
	is.Equal(sq.Letter, 'T')
	is.Equal(sq.Kind(), Occupied)
	is.Equal(sq.Layout, Start) // the layout is kept under the tile
	is.Equal(sq.String(), "T")

	// Spaces are unoccupied squares too
	rows = emptyRows(BoardSize)
	rows[0] = strings.Repeat(" ", BoardSize)
	board, err = ParseBoard(DefaultLayout(), gridReader(rows))
	is.NoErr(err)
	is.True(board.IsOpeningTurn())
}

func TestParseBoardErrors(t *testing.T) {
	is := is.New(t)

	// Unrecognized layout code
	layout := emptyRows(BoardSize)
	layout[3] = "......X........"
	_, err := ParseLayout(gridReader(layout))
	is.True(errors.Is(err, ErrInvalidInput))

	// Ragged layout
	layout = emptyRows(BoardSize)
	layout[3] = "...."
	_, err = ParseLayout(gridReader(layout))
	is.True(errors.Is(err, ErrInvalidInput))

	// Empty layout
	_, err = ParseLayout(strings.NewReader(""))
	is.True(errors.Is(err, ErrInvalidInput))

	// Two start squares
	layout = emptyRows(BoardSize)
	layout[7] = ".......1......1"
	_, err = ParseLayout(gridReader(layout))
	is.True(errors.Is(err, ErrInvalidInput))

	// Current board with too few rows
	_, err = ParseBoard(DefaultLayout(), gridReader(emptyRows(BoardSize)[:10]))
	is.True(errors.Is(err, ErrNotFound))

	// Current board with a short row
	current := emptyRows(BoardSize)
	current[14] = "..."
	_, err = ParseBoard(DefaultLayout(), gridReader(current))
	is.True(errors.Is(err, ErrNotFound))

	// Invalid letter on the current board
	current = emptyRows(BoardSize)
	current[0] = "..7............"
	_, err = ParseBoard(DefaultLayout(), gridReader(current))
	is.True(errors.Is(err, ErrInvalidInput))
}

func TestOriginMissing(t *testing.T) {
	is := is.New(t)
	board, err := ParseLayout(gridReader(emptyRows(5)))
	is.NoErr(err)
	is.Equal(board.Size(), 5)
	_, err = board.Origin()
	is.True(errors.Is(err, ErrNotFound))
}

func TestTileKinds(t *testing.T) {
	is := is.New(t)
	is.Equal(DoubleLetter.LetterMultiplier(), 2)
	is.Equal(TripleLetter.LetterMultiplier(), 3)
	is.Equal(DoubleWord.LetterMultiplier(), 1)
	is.Equal(DoubleWord.WordMultiplier(), 2)
	is.Equal(TripleWord.WordMultiplier(), 3)
	is.Equal(Start.WordMultiplier(), 1)
	is.Equal(Occupied.String(), "Occupied")
	is.Equal(TileKind(42).String(), "Unknown")
}
