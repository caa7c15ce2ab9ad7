package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esummer9/mykeyword/plugin/analyzer"
	"github.com/esummer9/mykeyword/server"
)

var (
	dictCmd = &cobra.Command{
		Use:   "dict",
		Short: "Manage the analyzer user dictionary file",
	}

	dictWriteCmd = &cobra.Command{
		Use:   "write",
		Short: "Write the stored user dictionary to its file",
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
			fmt.Printf("wrote %d entries to %s\n", len(entries), profile.UserDict)
		},
	}
)

func init() {
	dictCmd.AddCommand(dictWriteCmd)
	rootCmd.AddCommand(dictCmd)
}
