package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/esummer9/mykeyword/common"
)

// MemoStatus tells whether keywords have been extracted from a memo.
type MemoStatus string

const (
	// Raw memos are waiting for keyword extraction.
	Raw MemoStatus = "R"
	// Analyzed memos own the keywords of their current title.
	Analyzed MemoStatus = "A"
)

func (s MemoStatus) String() string {
	switch s {
	case Raw:
		return "R"
	case Analyzed:
		return "A"
	}
	return "R"
}

// DefaultCategory is used when a memo is created without one.
const DefaultCategory = "notey"

const (
	regDtLayout = "2006-01-02"
	regTmLayout = "15:04:05"
)

type MemoMessage struct {
	ID int

	// Standard fields
	CreatedTs int64
	RegTs     int64
	RegDt     string
	RegTm     string
	Status    MemoStatus
	DeletedTs int64

	// Domain specific fields
	Category     string
	Title        string
	Meaning      string
	URL          string
	Lat          *float64
	Lon          *float64
	Address      string
	Sido         string
	Sigungu      string
	Eupmyeondong string
}

type FindMemoMessage struct {
	ID *int

	// Standard fields
	Status         *MemoStatus
	RegTsAfter     *int64
	RegTsBefore    *int64
	IncludeDeleted bool

	// Domain specific fields
	Category      *string
	ContentSearch []string
	Keyword       *string

	// Pagination
	Limit     *int
	Offset    *int
	OrderByID bool
}

type UpdateMemoMessage struct {
	ID           int
	RegTs        *int64
	Status       *MemoStatus
	Category     *string
	Title        *string
	Meaning      *string
	URL          *string
	Lat          *float64
	Lon          *float64
	Address      *string
	Sido         *string
	Sigungu      *string
	Eupmyeondong *string
}

type DeleteMemoMessage struct {
	ID int
}

// regDateTime splits a millisecond timestamp into the stored date and time columns.
func (s *Store) regDateTime(regTs int64) (string, string) {
	t := time.UnixMilli(regTs).In(s.profile.Location())
	return t.Format(regDtLayout), t.Format(regTmLayout)
}

func (s *Store) CreateMemo(ctx context.Context, create *MemoMessage) (*MemoMessage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	memo, err := s.createMemo(ctx, tx, create)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}
	return memo, nil
}

func (s *Store) createMemo(ctx context.Context, tx *sql.Tx, create *MemoMessage) (*MemoMessage, error) {
	now := time.Now().UnixMilli()
	if create.CreatedTs == 0 {
		create.CreatedTs = now
	}
	if create.RegTs == 0 {
		create.RegTs = now
	}
	if create.Category == "" {
		create.Category = DefaultCategory
	}
	if create.Status == "" {
		create.Status = Raw
	}
	create.RegDt, create.RegTm = s.regDateTime(create.RegTs)

	query := `
		INSERT INTO memo (
			category,
			title,
			meaning,
			created_ts,
			reg_ts,
			reg_dt,
			reg_tm,
			url,
			lat,
			lon,
			address,
			sido,
			sigungu,
			eupmyeondong,
			status
		)
		VALUES (` + placeholders(15) + `)
		RETURNING id, deleted_ts
	`
	if err := tx.QueryRowContext(
		ctx,
		query,
		create.Category,
		create.Title,
		create.Meaning,
		create.CreatedTs,
		create.RegTs,
		create.RegDt,
		create.RegTm,
		create.URL,
		create.Lat,
		create.Lon,
		create.Address,
		create.Sido,
		create.Sigungu,
		create.Eupmyeondong,
		create.Status,
	).Scan(
		&create.ID,
		&create.DeletedTs,
	); err != nil {
		return nil, FormatError(err)
	}

	return create, nil
}

func (s *Store) ListMemos(ctx context.Context, find *FindMemoMessage) ([]*MemoMessage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	list, err := listMemos(ctx, tx, find)
	if err != nil {
		return nil, err
	}

	return list, nil
}

// ListRecentMemos returns the newest live memos by id.
func (s *Store) ListRecentMemos(ctx context.Context, limit int) ([]*MemoMessage, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.ListMemos(ctx, &FindMemoMessage{
		Limit:     &limit,
		OrderByID: true,
	})
}

func (s *Store) GetMemo(ctx context.Context, find *FindMemoMessage) (*MemoMessage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	list, err := listMemos(ctx, tx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("memo not found")}
	}

	memoMessage := list[0]
	return memoMessage, nil
}

func (s *Store) UpdateMemo(ctx context.Context, update *UpdateMemoMessage) (*MemoMessage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	set, args := []string{}, []any{}
	if v := update.RegTs; v != nil {
		regDt, regTm := s.regDateTime(*v)
		set, args = append(set, "reg_ts = ?", "reg_dt = ?", "reg_tm = ?"), append(args, *v, regDt, regTm)
	}
	if v := update.Status; v != nil {
		set, args = append(set, "status = ?"), append(args, *v)
	}
	if v := update.Category; v != nil {
		set, args = append(set, "category = ?"), append(args, *v)
	}
	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Meaning; v != nil {
		set, args = append(set, "meaning = ?"), append(args, *v)
	}
	if v := update.URL; v != nil {
		set, args = append(set, "url = ?"), append(args, *v)
	}
	if v := update.Lat; v != nil {
		set, args = append(set, "lat = ?"), append(args, *v)
	}
	if v := update.Lon; v != nil {
		set, args = append(set, "lon = ?"), append(args, *v)
	}
	if v := update.Address; v != nil {
		set, args = append(set, "address = ?"), append(args, *v)
	}
	if v := update.Sido; v != nil {
		set, args = append(set, "sido = ?"), append(args, *v)
	}
	if v := update.Sigungu; v != nil {
		set, args = append(set, "sigungu = ?"), append(args, *v)
	}
	if v := update.Eupmyeondong; v != nil {
		set, args = append(set, "eupmyeondong = ?"), append(args, *v)
	}

	if len(set) > 0 {
		args = append(args, update.ID)
		query := `
			UPDATE memo
			SET ` + strings.Join(set, ", ") + `
			WHERE id = ? AND deleted_ts = 0
		`
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, FormatError(err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return nil, FormatError(err)
		}
		if rows == 0 {
			return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("memo not found")}
		}
	}

	list, err := listMemos(ctx, tx, &FindMemoMessage{ID: &update.ID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("memo not found")}
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}
	return list[0], nil
}

// DeleteMemo soft deletes the memo and drops the keywords it owns.
func (s *Store) DeleteMemo(ctx context.Context, delete *DeleteMemoMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FormatError(err)
	}
	defer tx.Rollback()

	stmt := `UPDATE memo SET deleted_ts = ? WHERE id = ? AND deleted_ts = 0`
	result, err := tx.ExecContext(ctx, stmt, time.Now().UnixMilli(), delete.ID)
	if err != nil {
		return FormatError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &common.Error{Code: common.NotFound, Err: fmt.Errorf("memo not found")}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM keyword WHERE memo_id = ?`, delete.ID); err != nil {
		return FormatError(err)
	}

	return tx.Commit()
}

// DuplicateMemo copies a live memo into a new raw memo registered now.
func (s *Store) DuplicateMemo(ctx context.Context, id int) (*MemoMessage, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	regDt, regTm := s.regDateTime(now)
	query := `
		INSERT INTO memo (
			category, title, meaning, created_ts, reg_ts, reg_dt, reg_tm,
			url, lat, lon, address, sido, sigungu, eupmyeondong, status, deleted_ts
		)
		SELECT
			category, title || ' (copy)', meaning, ?, ?, ?, ?,
			url, lat, lon, address, sido, sigungu, eupmyeondong, ?, 0
		FROM memo
		WHERE id = ? AND deleted_ts = 0
		RETURNING id
	`
	var duplicateID int
	if err := tx.QueryRowContext(ctx, query, now, now, regDt, regTm, Raw, id).Scan(&duplicateID); err != nil {
		return nil, FormatError(err)
	}

	list, err := listMemos(ctx, tx, &FindMemoMessage{ID: &duplicateID})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &common.Error{Code: common.NotFound, Err: fmt.Errorf("memo not found")}
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}
	return list[0], nil
}

func listMemos(ctx context.Context, tx *sql.Tx, find *FindMemoMessage) ([]*MemoMessage, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "memo.id = ?"), append(args, *v)
	}
	if !find.IncludeDeleted {
		where = append(where, "memo.deleted_ts = 0")
	}
	if v := find.Status; v != nil {
		where, args = append(where, "memo.status = ?"), append(args, *v)
	}
	if v := find.Category; v != nil {
		where, args = append(where, "memo.category = ?"), append(args, *v)
	}
	if v := find.RegTsAfter; v != nil {
		where, args = append(where, "memo.reg_ts >= ?"), append(args, *v)
	}
	if v := find.RegTsBefore; v != nil {
		where, args = append(where, "memo.reg_ts <= ?"), append(args, *v)
	}
	if v := find.ContentSearch; len(v) != 0 {
		for _, s := range v {
			where, args = append(where, "(memo.title LIKE ? OR memo.meaning LIKE ?)"), append(args, "%"+s+"%", "%"+s+"%")
		}
	}
	if v := find.Keyword; v != nil {
		where, args = append(where, "memo.id IN (SELECT memo_id FROM keyword WHERE keyword = ?)"), append(args, *v)
	}

	orders := []string{}
	if find.OrderByID {
		orders = append(orders, "memo.id DESC")
	} else {
		orders = append(orders, "memo.created_ts DESC", "memo.id DESC")
	}

	query := `
	SELECT
		memo.id,
		memo.category,
		memo.title,
		memo.meaning,
		memo.created_ts,
		memo.reg_ts,
		memo.reg_dt,
		memo.reg_tm,
		memo.url,
		memo.lat,
		memo.lon,
		memo.address,
		memo.sido,
		memo.sigungu,
		memo.eupmyeondong,
		memo.status,
		memo.deleted_ts
	FROM
		memo
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY ` + strings.Join(orders, ", ") + `
	`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
		if find.Offset != nil {
			query = fmt.Sprintf("%s OFFSET %d", query, *find.Offset)
		}
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, FormatError(err)
	}
	defer rows.Close()

	memoMessageList := make([]*MemoMessage, 0)
	for rows.Next() {
		var memoMessage MemoMessage
		var lat, lon sql.NullFloat64
		if err := rows.Scan(
			&memoMessage.ID,
			&memoMessage.Category,
			&memoMessage.Title,
			&memoMessage.Meaning,
			&memoMessage.CreatedTs,
			&memoMessage.RegTs,
			&memoMessage.RegDt,
			&memoMessage.RegTm,
			&memoMessage.URL,
			&lat,
			&lon,
			&memoMessage.Address,
			&memoMessage.Sido,
			&memoMessage.Sigungu,
			&memoMessage.Eupmyeondong,
			&memoMessage.Status,
			&memoMessage.DeletedTs,
		); err != nil {
			return nil, FormatError(err)
		}
		if lat.Valid {
			memoMessage.Lat = &lat.Float64
		}
		if lon.Valid {
			memoMessage.Lon = &lon.Float64
		}
		memoMessageList = append(memoMessageList, &memoMessage)
	}

	if err := rows.Err(); err != nil {
		return nil, FormatError(err)
	}

	return memoMessageList, nil
}
