// combinations.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the enumeration of letter subsets of a rack,
// and the expansion of wildcards within them to concrete letters.

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
	"sort"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/combin"
)

// MinWordLength is the length of the shortest playable word
const MinWordLength = 2

// Combinations returns every distinct subsequence of the rack having
// between MinWordLength and rack.Len() tiles, sorted. The tiles of each
// subsequence keep their left-to-right order from the rack. Wildcards
// are kept as '?' at this stage; see ExpandWildcards().
func Combinations(rack Rack) []string {
	tiles := rack.AsRunes()
	n := len(tiles)
	seen := make(map[string]struct{})
	buf := make([]rune, 0, n)
	for length := MinWordLength; length <= n; length++ {
		// Walk the index subsets of this length in lexicographic order
		gen := combin.NewCombinationGenerator(n, length)
		idx := make([]int, length)
		for gen.Next() {
			gen.Combination(idx)
			buf = buf[:0]
			for _, i := range idx {
				buf = append(buf, tiles[i])
			}
			seen[string(buf)] = struct{}{}
		}
	}
	result := lo.Keys(seen)
	sort.Strings(result)
	return result
}

// ExpandWildcards returns the concrete letter strings that a
// combination can stand for, substituting every letter A-Z for each
// wildcard in it. Since the order of substituted letters does not
// change the multiset of the result, only non-decreasing assignments
// are generated: k wildcards yield C(26+k-1, k) strings rather than
// 26^k, all with distinct canonical keys. A combination without
// wildcards is returned as is.
func ExpandWildcards(combo string) []string {
	k := strings.Count(combo, string(Wildcard))
	result := make([]string, 0, combin.Binomial(LetterCount+k-1, k))
	visitExpansions(combo, func(letters string) bool {
		result = append(result, letters)
		return true
	})
	return result
}

// visitExpansions calls visit with each string that ExpandWildcards()
// would return, in the same order, until visit returns false
func visitExpansions(combo string, visit func(letters string) bool) {
	runes := []rune(combo)
	positions := make([]int, 0, len(runes))
	for i, r := range runes {
		if r == Wildcard {
			positions = append(positions, i)
		}
	}
	k := len(positions)
	if k == 0 {
		visit(combo)
		return
	}
	// assignment holds the letter index given to each wildcard,
	// and is advanced like an odometer that never decreases
	// from left to right
	assignment := make([]int, k)
	for {
		for j, pos := range positions {
			runes[pos] = rune('A' + assignment[j])
		}
		if !visit(string(runes)) {
			return
		}
		i := k - 1
		for i >= 0 && assignment[i] == LetterCount-1 {
			i--
		}
		if i < 0 {
			return
		}
		assignment[i]++
		for j := i + 1; j < k; j++ {
			assignment[j] = assignment[i]
		}
	}
}
