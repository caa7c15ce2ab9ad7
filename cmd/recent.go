package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/esummer9/mykeyword/common"
	"github.com/esummer9/mykeyword/store"
)

var (
	recentCmdFlagCount = "count"

	recentCmd = &cobra.Command{
		Use:   "recent",
		Short: "List the most recent memos",
		Run: func(cmd *cobra.Command, args []string) {
			count, err := cmd.Flags().GetInt(recentCmdFlagCount)
			if err != nil {
				fmt.Printf("failed to get count, error: %+v\n", err)
				return
			}

			ctx := context.Background()
			storeInstance, err := openStore(ctx)
			if err != nil {
				fmt.Printf("%+v\n", err)
				return
			}
			defer storeInstance.Close()

			memoList, err := storeInstance.ListRecentMemos(ctx, count)
			if err != nil {
				fmt.Printf("failed to list memos, error: %+v\n", err)
				return
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tREGISTERED\tGAP\tCREATED\tSTATUS\tTITLE")
			for i, memo := range memoList {
				var previous *store.MemoMessage
				if i+1 < len(memoList) {
					previous = memoList[i+1]
				}
				fmt.Fprintln(w, strings.Join(recentMemoRow(memo, previous, now, profile.Location()), "\t"))
			}
			w.Flush()
		},
	}
)

// recentMemoRow renders one listing row. previous is the next older memo, if any.
func recentMemoRow(memo, previous *store.MemoMessage, now time.Time, loc *time.Location) []string {
	gap := ""
	if previous != nil {
		gap = common.FormatTimeDifference(memo.RegTs, previous.RegTs)
	}
	return []string{
		strconv.Itoa(memo.ID),
		common.FormatRegDate(memo.RegTs, now, loc),
		gap,
		common.FormatDaysAgo(memo.CreatedTs, now),
		string(memo.Status),
		common.Truncate(memo.Title, 40),
	}
}

func init() {
	recentCmd.Flags().IntP(recentCmdFlagCount, "n", 3, "number of memos")

	rootCmd.AddCommand(recentCmd)
}
