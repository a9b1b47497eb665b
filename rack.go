// rack.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the Rack struct and its operations

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
	"strings"
	"unicode/utf8"
)

// RackTiles contains a map of tiles with their count,
// with blank tiles being represented by '?'
type RackTiles struct {
	Tiles map[rune]int
}

// Rack represents a player's rack of tiles, in the order
// in which they were given. A Rack is immutable once parsed.
type Rack struct {
	tiles []rune
}

// MakeRackTiles counts the tiles in a slice of runes
func MakeRackTiles(rack []rune) *RackTiles {
	rt := RackTiles{}
	for _, r := range rack {
		rt.AddTile(r)
	}
	return &rt
}

// Add a tile (rune) to a RackTiles map
func (rack *RackTiles) AddTile(tile rune) {
	if rack.Tiles == nil {
		rack.Tiles = make(map[rune]int)
	}
	rack.Tiles[tile]++
}

// Remove a tile (rune) from a RackTiles map,
// returning false if no such tile is left
func (rack *RackTiles) RemoveTile(tile rune) bool {
	if rack.Tiles == nil || rack.Tiles[tile] <= 0 {
		return false
	}
	rack.Tiles[tile]--
	return true
}

func (rack *RackTiles) ContainsBlank() bool {
	return rack.ContainsTile(Wildcard)
}

func (rack *RackTiles) ContainsTile(t rune) bool {
	return rack.Tiles != nil && rack.Tiles[t] > 0
}

// ParseRack creates a Rack from a string of letters, with '?'
// denoting the blank tile. Letters are converted to upper case.
// The rack must hold between 1 and BoardSize tiles.
func ParseRack(s string) (Rack, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	n := utf8.RuneCountInString(s)
	if n < 1 || n > BoardSize {
		return Rack{}, newError(ErrInvalidInput,
			"rack '%v' must hold between 1 and %v tiles", s, BoardSize)
	}
	tiles := make([]rune, 0, n)
	for _, r := range s {
		if !isLetter(r) && r != Wildcard {
			return Rack{}, newError(ErrInvalidInput,
				"rack '%v' contains invalid tile '%c'", s, r)
		}
		tiles = append(tiles, r)
	}
	return Rack{tiles: tiles}, nil
}

// MustParseRack is like ParseRack but panics on error.
// It is intended for tests and constant racks.
func MustParseRack(s string) Rack {
	rack, err := ParseRack(s)
	if err != nil {
		panic(err)
	}
	return rack
}

// Len returns the number of tiles in the Rack
func (rack Rack) Len() int {
	return len(rack.tiles)
}

// AsRunes returns a copy of the tiles in the Rack as a list of runes
func (rack Rack) AsRunes() []rune {
	runes := make([]rune, len(rack.tiles))
	copy(runes, rack.tiles)
	return runes
}

// AsString returns the tiles in the Rack as a contiguous string
func (rack Rack) AsString() string {
	return string(rack.tiles)
}

// String returns a printable string representation of a Rack
func (rack Rack) String() string {
	return rack.AsString()
}

// NumBlanks returns the number of blank tiles in the Rack
func (rack Rack) NumBlanks() int {
	count := 0
	for _, r := range rack.tiles {
		if r == Wildcard {
			count++
		}
	}
	return count
}

// Content returns a fresh count map of the tiles in the Rack,
// which the caller is free to consume
func (rack Rack) Content() *RackTiles {
	return MakeRackTiles(rack.tiles)
}
