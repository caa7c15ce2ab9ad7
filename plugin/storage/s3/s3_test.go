package s3

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExportKey(t *testing.T) {
	client, err := NewClient(context.Background(), &Config{
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "mykeyword",
		EndPoint:  "http://127.0.0.1:9000",
		Region:    "ap-northeast-2",
		Prefix:    "backup",
	})
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	key := client.ExportKey(at)
	require.True(t, strings.HasPrefix(key, "backup/exports/mykeyword-20240301-093000-"), key)
	require.True(t, strings.HasSuffix(key, ".json"), key)
	require.NotEqual(t, key, client.ExportKey(at))
}
