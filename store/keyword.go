package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/esummer9/mykeyword/common"
)

// DefaultTrendingLimit is the number of keywords returned when no limit is given.
const DefaultTrendingLimit = 10

type KeywordMessage struct {
	ID      int
	Keyword string
	MemoID  int
}

// KeywordCount is a keyword with the number of live memos that own it.
type KeywordCount struct {
	Keyword string
	Count   int
}

type FindKeywordMessage struct {
	RegTsAfter  *int64
	RegTsBefore *int64
	Limit       *int
}

// ReplaceMemoKeywords drops every keyword of the memo, stores the given set and
// marks the memo analyzed, all in one transaction.
func (s *Store) ReplaceMemoKeywords(ctx context.Context, memoID int, keywords []string) ([]*KeywordMessage, error) {
	return s.replaceKeywords(ctx, memoID, nil, keywords)
}

// ReplaceTitleKeywords is ReplaceMemoKeywords for keywords analyzed from title.
// It writes nothing and returns a Conflict error when the memo title is no
// longer title.
func (s *Store) ReplaceTitleKeywords(ctx context.Context, memoID int, title string, keywords []string) ([]*KeywordMessage, error) {
	return s.replaceKeywords(ctx, memoID, &title, keywords)
}

func (s *Store) replaceKeywords(ctx context.Context, memoID int, title *string, keywords []string) ([]*KeywordMessage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	list, err := replaceMemoKeywords(ctx, tx, memoID, title, keywords)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}
	return list, nil
}

func replaceMemoKeywords(ctx context.Context, tx *sql.Tx, memoID int, title *string, keywords []string) ([]*KeywordMessage, error) {
	where, args := []string{"id = ?", "deleted_ts = 0"}, []any{Analyzed, memoID}
	if title != nil {
		where, args = append(where, "title = ?"), append(args, *title)
	}
	result, err := tx.ExecContext(ctx, `UPDATE memo SET status = ? WHERE `+strings.Join(where, " AND "), args...)
	if err != nil {
		return nil, FormatError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, FormatError(err)
	}
	if rows == 0 {
		if title == nil {
			return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("memo not found")}
		}
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM memo WHERE id = ? AND deleted_ts = 0`, memoID).Scan(&exists); err != nil {
			return nil, FormatError(err)
		}
		if exists == 0 {
			return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("memo not found")}
		}
		return nil, &common.Error{Code: common.Conflict, Err: fmt.Errorf("memo title changed during analysis")}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM keyword WHERE memo_id = ?`, memoID); err != nil {
		return nil, FormatError(err)
	}

	list := make([]*KeywordMessage, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	stmt := `
		INSERT INTO keyword (
			keyword,
			memo_id
		)
		VALUES (?, ?)
		RETURNING id
	`
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" || seen[keyword] {
			continue
		}
		seen[keyword] = true

		keywordMessage := &KeywordMessage{Keyword: keyword, MemoID: memoID}
		if err := tx.QueryRowContext(ctx, stmt, keyword, memoID).Scan(&keywordMessage.ID); err != nil {
			return nil, FormatError(err)
		}
		list = append(list, keywordMessage)
	}

	return list, nil
}

func (s *Store) ListMemoKeywords(ctx context.Context, memoID int) ([]*KeywordMessage, error) {
	query := `
		SELECT
			id,
			keyword,
			memo_id
		FROM keyword
		WHERE memo_id = ?
		ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, memoID)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	list := make([]*KeywordMessage, 0)
	for rows.Next() {
		var keywordMessage KeywordMessage
		if err := rows.Scan(
			&keywordMessage.ID,
			&keywordMessage.Keyword,
			&keywordMessage.MemoID,
		); err != nil {
			return nil, FormatError(err)
		}
		list = append(list, &keywordMessage)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return list, nil
}

// ListKeywords counts keywords over live memos, most frequent first.
func (s *Store) ListKeywords(ctx context.Context, find *FindKeywordMessage) ([]*KeywordCount, error) {
	where, args := []string{"memo.deleted_ts = 0"}, []any{}
	if v := find.RegTsAfter; v != nil {
		where, args = append(where, "memo.reg_ts >= ?"), append(args, *v)
	}
	if v := find.RegTsBefore; v != nil {
		where, args = append(where, "memo.reg_ts <= ?"), append(args, *v)
	}

	query := `
		SELECT
			keyword.keyword,
			COUNT(*) AS count
		FROM keyword
		JOIN memo ON memo.id = keyword.memo_id
		WHERE ` + strings.Join(where, " AND ") + `
		GROUP BY keyword.keyword
		ORDER BY count DESC, keyword.keyword ASC
	`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	list := make([]*KeywordCount, 0)
	for rows.Next() {
		var keywordCount KeywordCount
		if err := rows.Scan(
			&keywordCount.Keyword,
			&keywordCount.Count,
		); err != nil {
			return nil, FormatError(err)
		}
		list = append(list, &keywordCount)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return list, nil
}

// ListTrendingKeywords returns the most used keywords of all time.
func (s *Store) ListTrendingKeywords(ctx context.Context, limit int) ([]*KeywordCount, error) {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	return s.ListKeywords(ctx, &FindKeywordMessage{Limit: &limit})
}

// DeleteKeyword removes the keyword everywhere and sends the memos that owned it
// back to raw. It returns how many memos were affected.
func (s *Store) DeleteKeyword(ctx context.Context, keyword string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, FormatError(err)
	}
	defer tx.Rollback()

	stmt := `
		UPDATE memo
		SET status = ?
		WHERE id IN (SELECT memo_id FROM keyword WHERE keyword = ?)
	`
	result, err := tx.ExecContext(ctx, stmt, Raw, keyword)
	if err != nil {
		return 0, FormatError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, FormatError(err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM keyword WHERE keyword = ?`, keyword); err != nil {
		return 0, FormatError(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, FormatError(err)
	}
	return int(affected), nil
}
