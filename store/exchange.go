package store

import (
	"context"

	"github.com/esummer9/mykeyword/api"
)

// ToAPI converts the stored memo to its JSON shape.
func (m *MemoMessage) ToAPI() *api.Memo {
	return &api.Memo{
		ID:           m.ID,
		Timestamp:    m.CreatedTs,
		RegDate:      m.RegTs,
		RegDt:        m.RegDt,
		RegTm:        m.RegTm,
		Status:       m.Status.String(),
		DeletedAt:    m.DeletedTs,
		Category:     m.Category,
		Title:        m.Title,
		Meaning:      m.Meaning,
		URL:          m.URL,
		Lat:          m.Lat,
		Lon:          m.Lon,
		Address:      m.Address,
		Sido:         m.Sido,
		Sigungu:      m.Sigungu,
		Eupmyeondong: m.Eupmyeondong,
	}
}

func (u *UserDictMessage) ToAPI() *api.UserDict {
	return &api.UserDict{
		ID:      u.ID,
		Keyword: u.Keyword,
		Pos:     u.Pos,
		PosName: api.PosDisplayName[u.Pos],
	}
}

// Export collects the live memos, optionally of one category, and the whole
// user dictionary.
func (s *Store) Export(ctx context.Context, category string) (*api.ExportData, error) {
	find := &FindMemoMessage{}
	if category != "" {
		find.Category = &category
	}
	memoList, err := s.ListMemos(ctx, find)
	if err != nil {
		return nil, err
	}
	userDictList, err := s.ListUserDicts(ctx, &FindUserDictMessage{})
	if err != nil {
		return nil, err
	}

	data := &api.ExportData{
		Memos:          make([]*api.Memo, 0, len(memoList)),
		UserDictionary: make([]*api.UserDict, 0, len(userDictList)),
	}
	for _, memo := range memoList {
		data.Memos = append(data.Memos, memo.ToAPI())
	}
	for _, userDict := range userDictList {
		data.UserDictionary = append(data.UserDictionary, userDict.ToAPI())
	}
	return data, nil
}

// Import stores the exported memos as new raw memos and adds the dictionary
// entries that are not present yet, in one transaction.
func (s *Store) Import(ctx context.Context, data *api.ExportData) (*api.ImportResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, FormatError(err)
	}
	defer tx.Rollback()

	result := &api.ImportResult{}
	for _, memo := range data.Memos {
		if memo == nil || memo.DeletedAt != 0 {
			continue
		}
		if _, err := s.createMemo(ctx, tx, &MemoMessage{
			CreatedTs:    memo.Timestamp,
			RegTs:        memo.RegDate,
			Status:       Raw,
			Category:     memo.Category,
			Title:        memo.Title,
			Meaning:      memo.Meaning,
			URL:          memo.URL,
			Lat:          memo.Lat,
			Lon:          memo.Lon,
			Address:      memo.Address,
			Sido:         memo.Sido,
			Sigungu:      memo.Sigungu,
			Eupmyeondong: memo.Eupmyeondong,
		}); err != nil {
			return nil, err
		}
		result.MemosImported++
	}

	for _, userDict := range data.UserDictionary {
		if userDict == nil || userDict.Keyword == "" {
			continue
		}
		pos := userDict.Pos
		if pos == "" {
			pos = api.PosProperNoun
		}
		exists, err := userDictExists(ctx, tx, userDict.Keyword, pos)
		if err != nil {
			return nil, err
		}
		if exists {
			result.DictSkipped++
			continue
		}
		if _, err := upsertUserDict(ctx, tx, &UserDictMessage{Keyword: userDict.Keyword, Pos: pos}); err != nil {
			return nil, err
		}
		result.DictImported++
	}

	if err := tx.Commit(); err != nil {
		return nil, FormatError(err)
	}
	return result, nil
}
