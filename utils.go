// utils.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file contains word normalization and validation helpers.

package skrafl

import (
	"strings"
	"unicode/utf8"
)

// apostrophes are removed from wordlist entries, so that
// for instance "it's" is indexed as "ITS"
var apostrophes = strings.NewReplacer("'", "", "’", "")

// NormalizeWord converts a raw wordlist line to the form in which
// it is indexed: trimmed, upper case and without apostrophes.
// The result is not necessarily a valid word.
func NormalizeWord(line string) string {
	return apostrophes.Replace(strings.ToUpper(strings.TrimSpace(line)))
}

// validLength returns true if a word of n letters can be played
func validLength(n int) bool {
	return n > 1 && n <= BoardSize
}

// ValidWord returns true if the word consists only of the letters
// A-Z and its length is within (1, BoardSize]
func ValidWord(word string) bool {
	if !validLength(utf8.RuneCountInString(word)) {
		return false
	}
	for _, r := range word {
		if !isLetter(r) {
			return false
		}
	}
	return true
}

// validSurface is like ValidWord but also admits wildcards
func validSurface(s string) bool {
	if !validLength(utf8.RuneCountInString(s)) {
		return false
	}
	for _, r := range s {
		if !isLetter(r) && r != Wildcard {
			return false
		}
	}
	return true
}
