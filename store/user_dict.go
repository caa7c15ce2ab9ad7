package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/esummer9/mykeyword/common"
)

type UserDictMessage struct {
	ID      int
	Keyword string
	Pos     string
}

type FindUserDictMessage struct {
	ID      *int
	Keyword *string
	// Chosung keeps entries whose keyword starts with a consonant of this index letter's group.
	Chosung *rune
}

// UpsertUserDict updates the entry when ID is set, inserts it otherwise.
// An identical keyword and part of speech pair already stored is a conflict.
func (s *Store) UpsertUserDict(ctx context.Context, upsert *UserDictMessage) (*UserDictMessage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	userDict, err := upsertUserDict(ctx, tx, upsert)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}
	return userDict, nil
}

func upsertUserDict(ctx context.Context, tx *sql.Tx, upsert *UserDictMessage) (*UserDictMessage, error) {
	exists, err := userDictExists(ctx, tx, upsert.Keyword, upsert.Pos)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &common.Error{Code: common.Conflict, Err: fmt.Errorf("user dictionary entry %q (%s) already exists", upsert.Keyword, upsert.Pos)}
	}

	if upsert.ID > 0 {
		result, err := tx.ExecContext(ctx, `UPDATE user_dict SET keyword = ?, pos = ? WHERE id = ?`, upsert.Keyword, upsert.Pos, upsert.ID)
		if err != nil {
			return nil, FormatError(err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return nil, FormatError(err)
		}
		if rows == 0 {
			return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("user dictionary entry not found")}
		}
		return upsert, nil
	}

	query := `
		INSERT INTO user_dict (
			keyword,
			pos
		)
		VALUES (?, ?)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, upsert.Keyword, upsert.Pos).Scan(&upsert.ID); err != nil {
		return nil, FormatError(err)
	}
	return upsert, nil
}

func userDictExists(ctx context.Context, tx *sql.Tx, keyword, pos string) (bool, error) {
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_dict WHERE keyword = ? AND pos = ?`, keyword, pos).Scan(&count); err != nil {
		return false, FormatError(err)
	}
	return count > 0, nil
}

func (s *Store) DeleteUserDict(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_dict WHERE id = ?`, id)
	if err != nil {
		return FormatError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &common.Error{Code: common.NotFound, Err: fmt.Errorf("user dictionary entry not found")}
	}
	return nil
}

func (s *Store) ListUserDicts(ctx context.Context, find *FindUserDictMessage) ([]*UserDictMessage, error) {
	where, args := []string{"1 = 1"}, []any{}
	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Keyword; v != nil {
		where, args = append(where, "keyword = ?"), append(args, *v)
	}

	query := `
		SELECT
			id,
			keyword,
			pos
		FROM user_dict
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id DESC
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	list := make([]*UserDictMessage, 0)
	for rows.Next() {
		var userDict UserDictMessage
		if err := rows.Scan(
			&userDict.ID,
			&userDict.Keyword,
			&userDict.Pos,
		); err != nil {
			return nil, FormatError(err)
		}
		if find.Chosung != nil && !common.MatchChosung(userDict.Keyword, *find.Chosung) {
			continue
		}
		list = append(list, &userDict)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return list, nil
}

func (s *Store) GetUserDict(ctx context.Context, id int) (*UserDictMessage, error) {
	list, err := s.ListUserDicts(ctx, &FindUserDictMessage{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("user dictionary entry not found")}
	}
	return list[0], nil
}
