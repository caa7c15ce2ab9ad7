package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/esummer9/mykeyword/plugin/analyzer"
	"github.com/esummer9/mykeyword/server"
)

var reprocessCmd = &cobra.Command{
	Use:   "reprocess",
	Short: "Extract keywords of every memo still waiting for analysis",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		store, err := openStore(ctx)
		if err != nil {
			fmt.Printf("%+v\n", err)
			return
		}
		defer store.Close()

		entries, err := server.UserDictEntries(ctx, store)
		if err != nil {
			fmt.Printf("failed to read user dictionary, error: %+v\n", err)
			return
		}
		if err := analyzer.WriteUserDict(profile.UserDict, entries); err != nil {
			fmt.Printf("failed to write user dictionary, error: %+v\n", err)
			return
		}

		manager := analyzer.NewManager(profile.UserDict, analyzer.NewKagome)
		if err := manager.Initialize(ctx); err != nil {
			fmt.Printf("failed to initialize analyzer, error: %+v\n", err)
			return
		}

		extractor := server.NewKeywordExtractor(store, manager, server.NewMetrics(prometheus.NewRegistry()))
		processed, err := extractor.Reprocess(ctx)
		if err != nil {
			fmt.Printf("failed to reprocess, error: %+v\n", err)
			return
		}
		fmt.Printf("extracted keywords of %d memos\n", processed)
	},
}

func init() {
	rootCmd.AddCommand(reprocessCmd)
}
