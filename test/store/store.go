package teststore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esummer9/mykeyword/store"
	"github.com/esummer9/mykeyword/store/db"
	"github.com/esummer9/mykeyword/test"
)

func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	profile := test.GetTestingProfile(t)
	db := db.NewDB(profile)
	require.NoError(t, db.Open(ctx), "failed to open db")

	store := store.New(db.DBInstance, profile)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
