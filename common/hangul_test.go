package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChosung(t *testing.T) {
	tests := []struct {
		word    string
		chosung rune
		ok      bool
	}{
		{word: "가방", chosung: 'ㄱ', ok: true},
		{word: "까치", chosung: 'ㄲ', ok: true},
		{word: "동덕여대", chosung: 'ㄷ', ok: true},
		{word: "힣", chosung: 'ㅎ', ok: true},
		{word: "ㅅ", chosung: 'ㅅ', ok: true},
		{word: "apple", ok: false},
		{word: "", ok: false},
	}
	for _, test := range tests {
		chosung, ok := Chosung(test.word)
		require.Equal(t, test.ok, ok, test.word)
		require.Equal(t, test.chosung, chosung, test.word)
	}
}

func TestMatchChosung(t *testing.T) {
	tests := []struct {
		word    string
		initial rune
		want    bool
	}{
		{word: "까치", initial: 'ㄱ', want: true},
		{word: "가방", initial: 'ㄱ', want: true},
		{word: "쌀", initial: 'ㅅ', want: true},
		{word: "짜장", initial: 'ㅈ', want: true},
		{word: "나무", initial: 'ㄱ', want: false},
		{word: "까치", initial: 'ㄲ', want: true},
		{word: "가방", initial: 'ㄲ', want: false},
		{word: "memo", initial: 'ㅁ', want: false},
	}
	for _, test := range tests {
		require.Equal(t, test.want, MatchChosung(test.word, test.initial), test.word)
	}
}
