package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esummer9/mykeyword/api"
)

func TestRSS(t *testing.T) {
	s := newTestingServer(t)

	rec := do(t, s, http.MethodPost, "/api/memo", &api.CreateMemoRequest{
		Title:   "성수동 카페",
		Meaning: "**라떼** 추천",
		URL:     "https://example.com/cafe",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s.Extractor.Wait()

	rec = do(t, s, http.MethodGet, "/rss.xml", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "<title>성수동 카페</title>")
	require.Contains(t, body, "https://example.com/cafe")
	require.Contains(t, body, "&lt;strong&gt;라떼&lt;/strong&gt;")
}

func TestGetRSSItemTitle(t *testing.T) {
	require.Equal(t, "(untitled)", getRSSItemTitle("  "))
	require.Equal(t, "배달앱", getRSSItemTitle("배달앱"))
}
