package detect

import (
	"strings"
	"unicode"
)

// SyllableEstimator counts the syllables of one word.
type SyllableEstimator interface {
	Syllables(word string) (int, error)
}

// EstimatorFunc adapts a function to SyllableEstimator.
type EstimatorFunc func(word string) (int, error)

// Syllables implements SyllableEstimator.
func (f EstimatorFunc) Syllables(word string) (int, error) { return f(word) }

// EnglishEstimator approximates English syllable counts by vowel groups,
// dropping a silent final e except in a consonant-le ending.
type EnglishEstimator struct{}

// Syllables implements SyllableEstimator. Words without letters count zero;
// any other word counts at least one.
func (EnglishEstimator) Syllables(word string) (int, error) {
	letters := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, word)
	if letters == "" {
		return 0, nil
	}

	runes := []rune(letters)
	count := 0
	prevVowel := false
	for _, r := range runes {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	n := len(runes)
	if count > 1 && runes[n-1] == 'e' && !consonantLe(runes) {
		count--
	}
	return max(count, 1), nil
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// consonantLe reports a "-ble", "-tle" style ending, where the final e is
// voiced.
func consonantLe(runes []rune) bool {
	n := len(runes)
	return n >= 3 && runes[n-2] == 'l' && !isVowel(runes[n-3])
}

// hasVowel reports whether word contains a vowel letter.
func hasVowel(word string) bool {
	for _, r := range strings.ToLower(word) {
		if isVowel(r) {
			return true
		}
	}
	return false
}
