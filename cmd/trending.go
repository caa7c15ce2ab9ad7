package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/store"
)

var (
	trendingCmdFlagCount  = "count"
	trendingCmdFlagPeriod = "period"

	trendingCmd = &cobra.Command{
		Use:   "trending",
		Short: "List the most used keywords",
		Run: func(cmd *cobra.Command, args []string) {
			count, err := cmd.Flags().GetInt(trendingCmdFlagCount)
			if err != nil {
				fmt.Printf("failed to get count, error: %+v\n", err)
				return
			}
			periodFlag, err := cmd.Flags().GetString(trendingCmdFlagPeriod)
			if err != nil {
				fmt.Printf("failed to get period, error: %+v\n", err)
				return
			}
			period, err := api.ParsePeriod(periodFlag)
			if err != nil {
				fmt.Printf("%+v\n", err)
				return
			}

			ctx := context.Background()
			storeInstance, err := openStore(ctx)
			if err != nil {
				fmt.Printf("%+v\n", err)
				return
			}
			defer storeInstance.Close()

			find := &store.FindKeywordMessage{
				RegTsAfter: period.Since(time.Now()),
			}
			if count > 0 {
				find.Limit = &count
			}
			keywordList, err := storeInstance.ListKeywords(ctx, find)
			if err != nil {
				fmt.Printf("failed to list keywords, error: %+v\n", err)
				return
			}

			fmt.Printf("trending keywords (%s)\n", period.Label())
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for i, keyword := range keywordList {
				fmt.Fprintf(w, "%d\t%s\t%d\n", i+1, keyword.Keyword, keyword.Count)
			}
			w.Flush()
		},
	}
)

func init() {
	trendingCmd.Flags().IntP(trendingCmdFlagCount, "n", 15, "number of keywords")
	trendingCmd.Flags().String(trendingCmdFlagPeriod, "all", "period: 2d, 1w, 1m, all (or 2일, 1주, 1개월, 전체)")

	rootCmd.AddCommand(trendingCmd)
}
