package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatRegDate(t *testing.T) {
	loc := time.FixedZone("KST", 9*60*60)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, loc)
	tests := []struct {
		regTs int64
		want  string
	}{
		{regTs: 0, want: ""},
		{regTs: now.Add(-10 * time.Second).UnixMilli(), want: "방금 전"},
		{regTs: now.Add(-5 * time.Minute).UnixMilli(), want: "5분 전"},
		{regTs: now.Add(-3*time.Hour - 10*time.Minute).UnixMilli(), want: "3시간 전"},
		{regTs: now.Add(-49 * time.Hour).UnixMilli(), want: "2024-03-08"},
	}
	for _, test := range tests {
		require.Equal(t, test.want, FormatRegDate(test.regTs, now, loc))
	}
}

func TestFormatDaysAgo(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	require.Equal(t, "", FormatDaysAgo(0, now))
	require.Equal(t, "오늘", FormatDaysAgo(now.Add(-time.Hour).UnixMilli(), now))
	require.Equal(t, "3일 전", FormatDaysAgo(now.Add(-73*time.Hour).UnixMilli(), now))
}

func TestFormatTimeDifference(t *testing.T) {
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC).UnixMilli()
	tests := []struct {
		current  int64
		previous int64
		want     string
	}{
		{current: base, previous: 0, want: ""},
		{current: base, previous: base + 1000, want: ""},
		{current: base, previous: base, want: ""},
		{current: base + 42*1000, previous: base, want: "+42초"},
		{current: base + int64((26*time.Hour+5*time.Minute)/time.Millisecond), previous: base, want: "+1일 +2시간 +5분"},
		{current: base + int64((3*time.Hour)/time.Millisecond), previous: base, want: "+3시간"},
	}
	for _, test := range tests {
		require.Equal(t, test.want, FormatTimeDifference(test.current, test.previous))
	}
}
