package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKagomeUserDictCSV(t *testing.T) {
	csv := kagomeUserDictCSV([]Entry{
		{Keyword: "동덕여대", Pos: "NNP"},
		{Keyword: "배달 앱", Pos: "NNG"},
		{Keyword: ",", Pos: "NNG"},
		{Keyword: "성수동"},
	})
	require.Equal(t, "동덕여대,동덕여대,동덕여대,NNP\n배달앱,배달앱,배달앱,NNG\n성수동,성수동,성수동,NNP\n", csv)
}

func TestKagomeUserDictWord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.dict")
	require.NoError(t, os.WriteFile(path, []byte("뭉게뭉게카페\tNNP\n"), 0644))

	analyzer, err := NewKagome(path)
	require.NoError(t, err)

	morphemes, err := analyzer.Analyze(context.Background(), "뭉게뭉게카페")
	require.NoError(t, err)
	require.Equal(t, []Morpheme{{Surface: "뭉게뭉게카페", Pos: "NNP"}}, morphemes)
}
