package teststore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esummer9/mykeyword/common"
	"github.com/esummer9/mykeyword/store"
)

func TestUserDictStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	created, err := ts.UpsertUserDict(ctx, &store.UserDictMessage{Keyword: "동덕여대", Pos: "NNP"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	_, err = ts.UpsertUserDict(ctx, &store.UserDictMessage{Keyword: "동덕여대", Pos: "NNP"})
	require.Equal(t, common.Conflict, common.ErrorCode(err))

	// The same keyword with another part of speech is a distinct entry.
	other, err := ts.UpsertUserDict(ctx, &store.UserDictMessage{Keyword: "동덕여대", Pos: "NNG"})
	require.NoError(t, err)

	updated, err := ts.UpsertUserDict(ctx, &store.UserDictMessage{ID: other.ID, Keyword: "배달앱", Pos: "NNG"})
	require.NoError(t, err)
	require.Equal(t, other.ID, updated.ID)

	found, err := ts.GetUserDict(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, "배달앱", found.Keyword)

	_, err = ts.UpsertUserDict(ctx, &store.UserDictMessage{ID: 9999, Keyword: "없음", Pos: "NNG"})
	require.Equal(t, common.NotFound, common.ErrorCode(err))

	list, err := ts.ListUserDicts(ctx, &store.FindUserDictMessage{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, other.ID, list[0].ID)

	require.NoError(t, ts.DeleteUserDict(ctx, created.ID))
	require.Equal(t, common.NotFound, common.ErrorCode(ts.DeleteUserDict(ctx, created.ID)))
}

func TestListUserDictsByChosung(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	for _, keyword := range []string{"가방", "까치", "나무", "땅콩", "사과", "쌀국수", "Go"} {
		_, err := ts.UpsertUserDict(ctx, &store.UserDictMessage{Keyword: keyword, Pos: "NNG"})
		require.NoError(t, err)
	}

	tests := []struct {
		chosung rune
		want    []string
	}{
		{chosung: 'ㄱ', want: []string{"까치", "가방"}},
		{chosung: 'ㄲ', want: []string{"까치"}},
		{chosung: 'ㄷ', want: []string{"땅콩"}},
		{chosung: 'ㅅ', want: []string{"쌀국수", "사과"}},
		{chosung: 'ㅎ', want: []string{}},
	}
	for _, test := range tests {
		chosung := test.chosung
		list, err := ts.ListUserDicts(ctx, &store.FindUserDictMessage{Chosung: &chosung})
		require.NoError(t, err)
		keywords := []string{}
		for _, userDict := range list {
			keywords = append(keywords, userDict.Keyword)
		}
		require.Equal(t, test.want, keywords, string(test.chosung))
	}
}
