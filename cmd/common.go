package cmd

import (
	"context"

	"github.com/pkg/errors"

	"github.com/esummer9/mykeyword/store"
	"github.com/esummer9/mykeyword/store/db"
)

// openStore opens the database of the current profile, migrating it if needed.
func openStore(ctx context.Context) (*store.Store, error) {
	db := db.NewDB(profile)
	if err := db.Open(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to open db")
	}
	return store.New(db.DBInstance, profile), nil
}
