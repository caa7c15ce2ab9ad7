package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/esummer9/mykeyword/common"
)

// FormatError converts driver errors into application errors.
func FormatError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return &common.Error{Code: common.NotFound, Err: errors.New("not found")}
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return &common.Error{Code: common.Conflict, Err: fmt.Errorf("already exists")}
	default:
		return err
	}
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
