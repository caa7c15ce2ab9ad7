package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esummer9/mykeyword/api"
)

func TestMemoLifecycle(t *testing.T) {
	s := newTestingServer(t)

	created := &api.Memo{}
	rec := do(t, s, http.MethodPost, "/api/memo", &api.CreateMemoRequest{
		Title:   "동덕여대에서 배달앱 주문",
		Meaning: "점심",
	}, created)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "notey", created.Category)
	require.Equal(t, "R", created.Status)
	s.Extractor.Wait()

	memo := &api.Memo{}
	rec = do(t, s, http.MethodGet, fmt.Sprintf("/api/memo/%d", created.ID), nil, memo)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "A", memo.Status)
	require.Equal(t, []string{"동덕여대", "배달앱", "주문"}, memo.Keywords)

	title := "성수동 카페"
	patched := &api.Memo{}
	rec = do(t, s, http.MethodPatch, fmt.Sprintf("/api/memo/%d", created.ID), &api.PatchMemoRequest{Title: &title}, patched)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "성수동 카페", patched.Title)
	require.Equal(t, "점심", patched.Meaning)
	s.Extractor.Wait()

	keywords := []*api.MemoKeyword{}
	rec = do(t, s, http.MethodGet, fmt.Sprintf("/api/memo/%d/keyword", created.ID), nil, &keywords)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, keywords, 2)
	require.Equal(t, "성수동", keywords[0].Keyword)
	require.Equal(t, "카페", keywords[1].Keyword)

	duplicate := &api.Memo{}
	rec = do(t, s, http.MethodPost, fmt.Sprintf("/api/memo/%d/duplicate", created.ID), nil, duplicate)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "성수동 카페 (copy)", duplicate.Title)
	require.NotEqual(t, created.ID, duplicate.ID)
	s.Extractor.Wait()

	rec = do(t, s, http.MethodDelete, fmt.Sprintf("/api/memo/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodGet, fmt.Sprintf("/api/memo/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, s, http.MethodDelete, fmt.Sprintf("/api/memo/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	recent := []*api.Memo{}
	rec = do(t, s, http.MethodGet, "/api/memo/recent", nil, &recent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, recent, 1)
	require.Equal(t, duplicate.ID, recent[0].ID)
}

func TestMemoEmptyTitleIsAnalyzed(t *testing.T) {
	s := newTestingServer(t)

	created := &api.Memo{}
	rec := do(t, s, http.MethodPost, "/api/memo", &api.CreateMemoRequest{Meaning: "제목 없음"}, created)
	require.Equal(t, http.StatusOK, rec.Code)

	keywords := []*api.MemoKeyword{}
	rec = do(t, s, http.MethodPost, fmt.Sprintf("/api/memo/%d/keyword", created.ID), nil, &keywords)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, keywords)
	s.Extractor.Wait()

	memo := &api.Memo{}
	do(t, s, http.MethodGet, fmt.Sprintf("/api/memo/%d", created.ID), nil, memo)
	require.Equal(t, "A", memo.Status)
}

func TestMemoListQuery(t *testing.T) {
	s := newTestingServer(t)

	for _, request := range []*api.CreateMemoRequest{
		{Category: "notey", Title: "커피 원두"},
		{Category: "work", Title: "회의 준비"},
		{Category: "notey", Title: "커피 필터"},
	} {
		rec := do(t, s, http.MethodPost, "/api/memo", request, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	s.Extractor.Wait()

	tests := []struct {
		query string
		count int
	}{
		{query: "", count: 3},
		{query: "?category=notey", count: 2},
		{query: "?keyword=%EC%BB%A4%ED%94%BC", count: 2},
		{query: "?q=%ED%9A%8C%EC%9D%98", count: 1},
		{query: "?period=2%EC%9D%BC", count: 3},
		{query: "?period=1w&status=A", count: 3},
		{query: "?status=R", count: 0},
		{query: "?limit=2", count: 2},
		{query: "?limit=2&offset=2", count: 1},
	}
	for _, test := range tests {
		list := []*api.Memo{}
		rec := do(t, s, http.MethodGet, "/api/memo"+test.query, nil, &list)
		require.Equal(t, http.StatusOK, rec.Code, test.query)
		require.Len(t, list, test.count, test.query)
	}

	for _, query := range []string{"?period=3d", "?status=X", "?limit=-1", "?offset=abc"} {
		rec := do(t, s, http.MethodGet, "/api/memo"+query, nil, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestMemoValidation(t *testing.T) {
	s := newTestingServer(t)

	lat := 123.0
	rec := do(t, s, http.MethodPost, "/api/memo", &api.CreateMemoRequest{Title: "잘못된 위치", Lat: &lat}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/memo", &api.CreateMemoRequest{Title: "링크", URL: "not a url"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/memo/abc", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/memo/9999", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
