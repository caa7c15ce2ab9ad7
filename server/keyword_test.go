package server

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/store"
)

func TestKeywordRoutes(t *testing.T) {
	s := newTestingServer(t)

	old := time.Now().AddDate(0, -2, 0).UnixMilli()
	for _, request := range []*api.CreateMemoRequest{
		{Title: "커피 원두"},
		{Title: "커피 배달앱"},
		{Title: "여행 커피", RegDate: old},
	} {
		rec := do(t, s, http.MethodPost, "/api/memo", request, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	s.Extractor.Wait()

	trending := []*api.Keyword{}
	rec := do(t, s, http.MethodGet, "/api/keyword/trending?limit=2", nil, &trending)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []*api.Keyword{
		{Keyword: "커피", Count: 3},
		{Keyword: "배달앱", Count: 1},
	}, trending)

	recent := []*api.Keyword{}
	rec = do(t, s, http.MethodGet, "/api/keyword?period=1m", nil, &recent)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, recent, 3)
	require.Equal(t, &api.Keyword{Keyword: "커피", Count: 2}, recent[0])

	from := time.UnixMilli(old).In(time.UTC).Format(dateLayout)
	ranged := []*api.Keyword{}
	rec = do(t, s, http.MethodGet, fmt.Sprintf("/api/keyword?from=%s&to=%s", from, from), nil, &ranged)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []*api.Keyword{
		{Keyword: "여행", Count: 1},
		{Keyword: "커피", Count: 1},
	}, ranged)

	memoList := []*api.Memo{}
	rec = do(t, s, http.MethodGet, "/api/keyword/"+url.PathEscape("커피")+"/memo", nil, &memoList)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, memoList, 3)

	deleted := &api.DeleteKeywordResponse{}
	rec = do(t, s, http.MethodDelete, "/api/keyword/"+url.PathEscape("커피"), nil, deleted)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, &api.DeleteKeywordResponse{Keyword: "커피", AffectedMemo: 3}, deleted)

	raw := store.Raw
	rawList, err := s.Store.ListMemos(testContext(t), &store.FindMemoMessage{Status: &raw})
	require.NoError(t, err)
	require.Len(t, rawList, 3)

	reprocessed := &api.ReprocessResponse{}
	rec = do(t, s, http.MethodPost, "/api/keyword/reprocess", nil, reprocessed)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, reprocessed.Processed)

	rec = do(t, s, http.MethodGet, "/api/keyword/trending", nil, &trending)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, &api.Keyword{Keyword: "커피", Count: 3}, trending[0])

	for _, query := range []string{"?period=forever", "?from=2024-13-01", "?from=2024-03-02&to=2024-03-01", "?limit=0"} {
		rec := do(t, s, http.MethodGet, "/api/keyword"+query, nil, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestKeywordPathParam(t *testing.T) {
	ctx := testContext(t)
	s := newTestingServer(t)

	memo, err := s.Store.CreateMemo(ctx, &store.MemoMessage{Title: "할인 메모"})
	require.NoError(t, err)
	_, err = s.Store.ReplaceMemoKeywords(ctx, memo.ID, []string{"100%", "a/b"})
	require.NoError(t, err)

	for _, keyword := range []string{"100%", "a/b"} {
		memoList := []*api.Memo{}
		rec := do(t, s, http.MethodGet, "/api/keyword/"+url.PathEscape(keyword)+"/memo", nil, &memoList)
		require.Equal(t, http.StatusOK, rec.Code, keyword)
		require.Len(t, memoList, 1, keyword)
		require.Equal(t, memo.ID, memoList[0].ID)
	}

	deleted := &api.DeleteKeywordResponse{}
	rec := do(t, s, http.MethodDelete, "/api/keyword/"+url.PathEscape("100%"), nil, deleted)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, &api.DeleteKeywordResponse{Keyword: "100%", AffectedMemo: 1}, deleted)
}
