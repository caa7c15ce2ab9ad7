package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line  string
		entry Entry
		ok    bool
	}{
		{line: "동덕여대\tNNP", entry: Entry{Keyword: "동덕여대", Pos: "NNP"}, ok: true},
		{line: "배달앱\tNNG", entry: Entry{Keyword: "배달앱", Pos: "NNG"}, ok: true},
		{line: "카카오톡", entry: Entry{Keyword: "카카오톡", Pos: "NNP"}, ok: true},
		{line: "카카오\t", entry: Entry{Keyword: "카카오", Pos: "NNP"}, ok: true},
		{line: "", ok: false},
		{line: "   ", ok: false},
		{line: "# comment", ok: false},
		{line: "\tNNG", ok: false},
	}
	for _, test := range tests {
		entry, ok := ParseLine(test.line)
		require.Equal(t, test.ok, ok, test.line)
		require.Equal(t, test.entry, entry, test.line)
	}
}

func TestWriteAndReadUserDict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "komoran", "user.dict")

	entries, err := ReadUserDict(path)
	require.NoError(t, err)
	require.Empty(t, entries)

	err = WriteUserDict(path, []Entry{
		{Keyword: "동덕여대", Pos: "NNP"},
		{Keyword: "배달앱"},
		{Keyword: " "},
	})
	require.NoError(t, err)

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "동덕여대\tNNP\n배달앱\tNNP\n", string(buf))

	entries, err = ReadUserDict(path)
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Keyword: "동덕여대", Pos: "NNP"},
		{Keyword: "배달앱", Pos: "NNP"},
	}, entries)
}

func TestUpsertEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.dict")
	require.NoError(t, os.WriteFile(path, []byte("동덕여대\tNNP\n# note\n배달앱\n"), 0644))

	changed, err := UpsertEntry(path, Entry{Keyword: "동덕여대", Pos: "NNP"})
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = UpsertEntry(path, Entry{Keyword: "배달앱", Pos: "NNG"})
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = UpsertEntry(path, Entry{Keyword: "성수동"})
	require.NoError(t, err)
	require.True(t, changed)

	entries, err := ReadUserDict(path)
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{Keyword: "동덕여대", Pos: "NNP"},
		{Keyword: "배달앱", Pos: "NNG"},
		{Keyword: "성수동", Pos: "NNP"},
	}, entries)
}
