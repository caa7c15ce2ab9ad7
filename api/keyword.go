package api

import (
	"fmt"
	"time"
)

type Keyword struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

type MemoKeyword struct {
	ID      int    `json:"id"`
	MemoID  int    `json:"memoId"`
	Keyword string `json:"keyword"`
}

type DeleteKeywordResponse struct {
	Keyword      string `json:"keyword"`
	AffectedMemo int    `json:"affectedMemo"`
}

type ReprocessResponse struct {
	Processed int `json:"processed"`
}

// Period is a look-back window over registration time.
type Period string

const (
	PeriodTwoDays Period = "2d"
	PeriodWeek    Period = "1w"
	PeriodMonth   Period = "1m"
	PeriodAll     Period = "all"
)

// ParsePeriod accepts both the short codes and the Korean labels.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "", "all", "전체":
		return PeriodAll, nil
	case "2d", "2일":
		return PeriodTwoDays, nil
	case "1w", "1주":
		return PeriodWeek, nil
	case "1m", "1개월":
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("invalid period %q", s)
}

// Since returns the earliest registration time in milliseconds covered by the
// period, or nil when it is unbounded.
func (p Period) Since(now time.Time) *int64 {
	var since time.Time
	switch p {
	case PeriodTwoDays:
		since = now.AddDate(0, 0, -2)
	case PeriodWeek:
		since = now.AddDate(0, 0, -7)
	case PeriodMonth:
		since = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	ms := since.UnixMilli()
	return &ms
}

// Label returns the Korean display label.
func (p Period) Label() string {
	switch p {
	case PeriodTwoDays:
		return "2일"
	case PeriodWeek:
		return "1주"
	case PeriodMonth:
		return "1개월"
	}
	return "전체"
}
