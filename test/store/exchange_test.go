package teststore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/store"
)

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	source := NewTestingStore(ctx, t)

	lat := 37.6
	first, err := source.CreateMemo(ctx, &store.MemoMessage{Title: "동덕여대 카페", Meaning: "라떼", Lat: &lat})
	require.NoError(t, err)
	_, err = source.ReplaceMemoKeywords(ctx, first.ID, []string{"동덕여대", "카페"})
	require.NoError(t, err)
	_, err = source.CreateMemo(ctx, &store.MemoMessage{Category: "work", Title: "회의록"})
	require.NoError(t, err)
	removed, err := source.CreateMemo(ctx, &store.MemoMessage{Title: "지운 메모"})
	require.NoError(t, err)
	require.NoError(t, source.DeleteMemo(ctx, &store.DeleteMemoMessage{ID: removed.ID}))
	_, err = source.UpsertUserDict(ctx, &store.UserDictMessage{Keyword: "동덕여대", Pos: "NNP"})
	require.NoError(t, err)

	data, err := source.Export(ctx, "notey")
	require.NoError(t, err)
	require.Len(t, data.Memos, 1)
	require.Equal(t, "동덕여대 카페", data.Memos[0].Title)
	require.Equal(t, "A", data.Memos[0].Status)
	require.Len(t, data.UserDictionary, 1)

	data, err = source.Export(ctx, "")
	require.NoError(t, err)
	require.Len(t, data.Memos, 2)

	buf, err := json.Marshal(data)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"userDictionary"`)
	require.Contains(t, string(buf), `"regDate"`)
	require.Contains(t, string(buf), `"deleted_at"`)

	imported := &api.ExportData{}
	require.NoError(t, json.Unmarshal(buf, imported))

	target := NewTestingStore(ctx, t)
	_, err = target.UpsertUserDict(ctx, &store.UserDictMessage{Keyword: "동덕여대", Pos: "NNP"})
	require.NoError(t, err)
	imported.UserDictionary = append(imported.UserDictionary, &api.UserDict{Keyword: "회의록"})

	result, err := target.Import(ctx, imported)
	require.NoError(t, err)
	require.Equal(t, &api.ImportResult{MemosImported: 2, DictImported: 1, DictSkipped: 1}, result)

	memoList, err := target.ListMemos(ctx, &store.FindMemoMessage{})
	require.NoError(t, err)
	require.Len(t, memoList, 2)
	for _, memo := range memoList {
		require.Equal(t, store.Raw, memo.Status)
	}

	keyword := "회의록"
	userDictList, err := target.ListUserDicts(ctx, &store.FindUserDictMessage{Keyword: &keyword})
	require.NoError(t, err)
	require.Len(t, userDictList, 1)
	require.Equal(t, "NNP", userDictList[0].Pos)
}
