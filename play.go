// play.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Play type, i.e. a scored and positioned
// candidate word, together with board co-ordinates and directions.

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
	"fmt"
	"strings"
)

// Direction is the direction in which a word is laid down
type Direction int

const (
	// Horizontal plays extend along increasing columns (x) in a fixed row (y)
	Horizontal Direction = iota
	// Vertical plays extend along increasing rows (y) in a fixed column (x)
	Vertical
)

func (dir Direction) String() string {
	switch dir {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Direction(%d)", int(dir))
}

// ParseDirection converts "h"/"horizontal" or "v"/"vertical"
// (in any case) to a Direction
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal", "across":
		return Horizontal, nil
	case "v", "vertical", "down":
		return Vertical, nil
	}
	return 0, newError(ErrInvalidInput, "unknown direction '%v'", s)
}

// MarshalText encodes a Direction by name, e.g. in JSON
func (dir Direction) MarshalText() ([]byte, error) {
	if _, _, err := dir.increments(); err != nil {
		return nil, err
	}
	return []byte(dir.String()), nil
}

// UnmarshalText decodes a Direction by name
func (dir *Direction) UnmarshalText(text []byte) error {
	d, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*dir = d
	return nil
}

// increments returns the row and column steps between consecutive
// letters of a word laid down in this direction
func (dir Direction) increments() (rowIncr, colIncr int, err error) {
	switch dir {
	case Horizontal:
		return 0, 1, nil
	case Vertical:
		return 1, 0, nil
	}
	return 0, 0, newError(ErrInvalidInput, "invalid direction %v", int(dir))
}

// Coordinate stores a Board co-ordinate as as row, col tuple.
// In x, y terms, Col is x and Row is y.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// colIds are the column identifiers of a standard board
var colIds = [BoardSize]string{
	"A", "B", "C", "D", "E",
	"F", "G", "H", "I", "J",
	"K", "L", "M", "N", "O",
}

// rowIds are the row identifiers of a standard board
var rowIds = [BoardSize]string{
	"1", "2", "3", "4", "5",
	"6", "7", "8", "9", "10",
	"11", "12", "13", "14", "15",
}

// Play is a candidate word placement with its score.
// Plays are created by the Finder and never modified.
type Play struct {
	Word      string     `json:"word"`
	Points    int        `json:"points"`
	Anchor    Coordinate `json:"anchor"`
	Direction Direction  `json:"direction"`
}

// String returns a description of the Play in the conventional
// notation, where horizontal plays are written row first
// ("8D WORD") and vertical plays column first ("D8 WORD")
func (play Play) String() string {
	row, col := play.Anchor.Row, play.Anchor.Col
	var coord string
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		coord = fmt.Sprintf("(%v,%v)", row, col)
	} else if play.Direction == Horizontal {
		coord = rowIds[row] + colIds[col]
	} else {
		coord = colIds[col] + rowIds[row]
	}
	return fmt.Sprintf("%v %v %v", coord, play.Word, play.Points)
}
