// canonical.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file implements the canonical anagram key. Each of the 26
// letters is assigned a distinct prime, and the key of a letter
// sequence is the product of the primes of its letters. By the
// fundamental theorem of arithmetic, two sequences have the same
// key if and only if they are permutations of each other.

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
	"math/big"
)

// Alphabet contains the letters that may appear in dictionary words
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// LetterCount is the number of letters in the Alphabet
const LetterCount = len(Alphabet)

// Wildcard is the rack representation of a blank tile
const Wildcard = '?'

// Key is a canonical anagram key, i.e. the decimal representation
// of the product of the letter primes of a word. The product of
// BoardSize primes does not fit in 64 bits, so the arithmetic is
// done with arbitrary precision and the result is kept as a string,
// which is comparable and can be used directly as a map key or a
// database column value.
type Key string

// letterPrimes maps letter index (A=0) to its prime
var letterPrimes = generatePrimes(LetterCount)

// isPrime checks primality by trial division up to the square root
func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for i := int64(2); i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// generatePrimes returns the first count primes in ascending order
func generatePrimes(count int) []int64 {
	primes := make([]int64, 0, count)
	for n := int64(2); len(primes) < count; n++ {
		if isPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

// isLetter returns true if r is one of the letters A-Z
func isLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// LetterPrime returns the prime assigned to a letter, or 0
// if the rune is not in the Alphabet
func LetterPrime(r rune) int64 {
	if !isLetter(r) {
		return 0
	}
	return letterPrimes[r-'A']
}

// KeyOf calculates the canonical key of a sequence of letters.
// All letters must be within A-Z; wildcards must have been
// resolved to concrete letters beforehand.
func KeyOf(letters string) (Key, error) {
	product := big.NewInt(1)
	var factor big.Int
	for i, r := range letters {
		p := LetterPrime(r)
		if p == 0 {
			return "", newError(ErrInvalidInput,
				"letter '%c' at position %v of '%v' is not in A-Z", r, i, letters)
		}
		product.Mul(product, factor.SetInt64(p))
	}
	return Key(product.String()), nil
}

// Int returns the key as an arbitrary precision integer,
// or nil if the key is not a valid decimal number
func (k Key) Int() *big.Int {
	n, ok := new(big.Int).SetString(string(k), 10)
	if !ok {
		return nil
	}
	return n
}

// String returns the decimal representation of the key
func (k Key) String() string {
	return string(k)
}
