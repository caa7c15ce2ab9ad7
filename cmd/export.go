package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportCmdFlagOutput   = "output"
	exportCmdFlagCategory = "category"

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export memos and the user dictionary as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			output, err := cmd.Flags().GetString(exportCmdFlagOutput)
			if err != nil {
				fmt.Printf("failed to get output, error: %+v\n", err)
				return
			}
			category, err := cmd.Flags().GetString(exportCmdFlagCategory)
			if err != nil {
				fmt.Printf("failed to get category, error: %+v\n", err)
				return
			}

			ctx := context.Background()
			store, err := openStore(ctx)
			if err != nil {
				fmt.Printf("%+v\n", err)
				return
			}
			defer store.Close()

			data, err := store.Export(ctx, category)
			if err != nil {
				fmt.Printf("failed to export, error: %+v\n", err)
				return
			}
			buf, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				fmt.Printf("failed to marshal export, error: %+v\n", err)
				return
			}

			if output == "" || output == "-" {
				fmt.Println(string(buf))
				return
			}
			if err := os.WriteFile(output, buf, 0644); err != nil {
				fmt.Printf("failed to write %s, error: %+v\n", output, err)
				return
			}
			fmt.Printf("exported %d memos and %d dictionary entries to %s\n", len(data.Memos), len(data.UserDictionary), output)
		},
	}
)

func init() {
	exportCmd.Flags().StringP(exportCmdFlagOutput, "o", "", "output file, stdout when empty")
	exportCmd.Flags().String(exportCmdFlagCategory, "", "only export memos of this category")

	rootCmd.AddCommand(exportCmd)
}
