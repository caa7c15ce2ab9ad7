package common

import (
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

const (
	hangulSyllableBase = 0xAC00
	hangulSyllableLast = 0xD7A3
	jungseongCount     = 21
	jongseongCount     = 28
)

// chosungList holds the 19 initial consonants in syllable order.
var chosungList = []rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// chosungGroups folds tense consonants into their plain index letter.
var chosungGroups = map[rune][]rune{
	'ㄱ': {'ㄱ', 'ㄲ'},
	'ㄷ': {'ㄷ', 'ㄸ'},
	'ㅂ': {'ㅂ', 'ㅃ'},
	'ㅅ': {'ㅅ', 'ㅆ'},
	'ㅈ': {'ㅈ', 'ㅉ'},
}

// Chosung returns the initial consonant of the first letter of word.
// A leading compatibility jamo consonant is returned as is.
func Chosung(word string) (rune, bool) {
	first, size := utf8.DecodeRuneInString(word)
	if size == 0 || first == utf8.RuneError {
		return 0, false
	}
	switch {
	case first >= hangulSyllableBase && first <= hangulSyllableLast:
		return chosungList[(first-hangulSyllableBase)/(jungseongCount*jongseongCount)], true
	case first >= 'ㄱ' && first <= 'ㅎ':
		return first, true
	}
	return 0, false
}

// ChosungGroup returns the consonants matched by the index letter initial.
func ChosungGroup(initial rune) []rune {
	if group, ok := chosungGroups[initial]; ok {
		return group
	}
	return []rune{initial}
}

// MatchChosung reports whether word starts with a consonant in initial's group.
func MatchChosung(word string, initial rune) bool {
	chosung, ok := Chosung(word)
	if !ok {
		return false
	}
	return slices.Contains(ChosungGroup(initial), chosung)
}
