package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatRegDate renders a registration time relative to now: "방금 전",
// "N분 전", "N시간 전", and the calendar date once a day has passed.
func FormatRegDate(regTs int64, now time.Time, loc *time.Location) string {
	if regTs == 0 {
		return ""
	}
	diff := now.Sub(time.UnixMilli(regTs))
	switch {
	case diff >= 24*time.Hour:
		return time.UnixMilli(regTs).In(loc).Format("2006-01-02")
	case diff >= time.Hour:
		return fmt.Sprintf("%d시간 전", int64(diff/time.Hour))
	case diff >= time.Minute:
		return fmt.Sprintf("%d분 전", int64(diff/time.Minute))
	}
	return "방금 전"
}

// FormatDaysAgo renders "N일 전", or "오늘" within the same 24 hours.
func FormatDaysAgo(ts int64, now time.Time) string {
	if ts == 0 {
		return ""
	}
	days := int64(now.Sub(time.UnixMilli(ts)) / (24 * time.Hour))
	if days > 0 {
		return fmt.Sprintf("%d일 전", days)
	}
	return "오늘"
}

// FormatTimeDifference renders the gap between two consecutive memos, e.g.
// "+1일 +2시간 +5분". Gaps under a minute fall back to seconds.
// A negative gap or a missing timestamp yields "".
func FormatTimeDifference(current, previous int64) string {
	if current == 0 || previous == 0 {
		return ""
	}
	diff := time.Duration(current-previous) * time.Millisecond
	if diff < 0 {
		return ""
	}

	days := int64(diff / (24 * time.Hour))
	hours := int64(diff/time.Hour) % 24
	minutes := int64(diff/time.Minute) % 60

	parts := []string{}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("+%d일", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("+%d시간", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("+%d분", minutes))
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	if seconds := int64(diff / time.Second); seconds > 0 {
		return fmt.Sprintf("+%d초", seconds)
	}
	return ""
}
