package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/esummer9/mykeyword/api"
	"github.com/esummer9/mykeyword/plugin/analyzer"
	"github.com/esummer9/mykeyword/server"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import memos and user dictionary entries from an export file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("failed to read %s, error: %+v\n", args[0], err)
			return
		}
		data := &api.ExportData{}
		if err := json.Unmarshal(buf, data); err != nil {
			fmt.Printf("failed to parse %s, error: %+v\n", args[0], err)
			return
		}

		ctx := context.Background()
		store, err := openStore(ctx)
		if err != nil {
			fmt.Printf("%+v\n", err)
			return
		}
		defer store.Close()

		result, err := store.Import(ctx, data)
		if err != nil {
			fmt.Printf("failed to import, error: %+v\n", err)
			return
		}
		fmt.Printf("imported %d memos, %d dictionary entries (%d already present)\n", result.MemosImported, result.DictImported, result.DictSkipped)

		if result.DictImported > 0 {
			entries, err := server.UserDictEntries(ctx, store)
			if err != nil {
				fmt.Printf("failed to read user dictionary, error: %+v\n", err)
				return
			}
			if err := analyzer.WriteUserDict(profile.UserDict, entries); err != nil {
				fmt.Printf("failed to write user dictionary, error: %+v\n", err)
				return
			}
		}
		if result.MemosImported > 0 {
			fmt.Println("run `mykeyword reprocess` to extract keywords of the imported memos")
		}
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
