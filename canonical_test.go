// canonical_test.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.
// This file contains tests for canonical anagram keys

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
	"math/big"
	"testing"

	"github.com/matryer/is"
)

func TestLetterPrimes(t *testing.T) {
	is := is.New(t)
	is.Equal(len(letterPrimes), LetterCount)
	is.Equal(LetterPrime('A'), int64(2))
	is.Equal(LetterPrime('B'), int64(3))
	is.Equal(LetterPrime('E'), int64(11))
	is.Equal(LetterPrime('Z'), int64(101))
	is.Equal(LetterPrime('?'), int64(0))
	is.Equal(LetterPrime('a'), int64(0))
	for i := 1; i < len(letterPrimes); i++ {
		is.True(letterPrimes[i] > letterPrimes[i-1])
		is.True(isPrime(letterPrimes[i]))
	}
}

func TestKeyPermutations(t *testing.T) {
	is := is.New(t)
	groups := [][]string{
		{"EERST", "ESTER", "RESET", "STEER", "TERSE", "TREES"},
		{"LISTEN", "SILENT", "ENLIST", "TINSEL"},
		{"AB", "BA"},
	}
	for _, group := range groups {
		first, err := KeyOf(group[0])
		is.NoErr(err)
		for _, word := range group[1:] {
			key, err := KeyOf(word)
			is.NoErr(err)
			is.Equal(key, first) // permutations share a key
		}
	}
}

func TestKeyDistinctMultisets(t *testing.T) {
	is := is.New(t)
	words := []string{"AB", "AAB", "ABB", "ABC", "EERST", "ERST", "EEERST", "ZZ", "Z", "STAAR", "STEUR"}
	seen := make(map[Key]string)
	for _, word := range words {
		key, err := KeyOf(word)
		is.NoErr(err)
		if other, ok := seen[key]; ok {
			t.Errorf("'%v' and '%v' have the same key %v", word, other, key)
		}
		seen[key] = word
	}
}

func TestKeyWidth(t *testing.T) {
	is := is.New(t)
	// Fifteen Zs overflow 64 bits, and even 128 bits are close
	key, err := KeyOf("ZZZZZZZZZZZZZZZ")
	is.NoErr(err)
	expected := new(big.Int).Exp(big.NewInt(101), big.NewInt(15), nil)
	is.Equal(key.Int().Cmp(expected), 0)
	is.Equal(key.String(), expected.String())
	is.True(key.Int().BitLen() > 64)
}

func TestKeyInvalid(t *testing.T) {
	is := is.New(t)
	for _, letters := range []string{"AB?", "ab", "Æ", "A-B"} {
		_, err := KeyOf(letters)
		is.True(errors.Is(err, ErrInvalidInput))
	}
	is.Equal(Key("not a number").Int(), nil)
}
