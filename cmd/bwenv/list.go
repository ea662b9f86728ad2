package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, plain, json")
}

// listCmd lists all namespace names in the configured folder
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists all namespaces in the Bitwarden folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := client.ListNamespaces(cfg.Folder)
		if err != nil {
			return fmt.Errorf("failed to list namespaces: %w", err)
		}

		switch listFormat {
		case "plain":
			for _, name := range names {
				fmt.Println(name)
			}
			return nil

		case "json":
			if names == nil {
				names = []string{}
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(names)

		case "table":
			if len(names) == 0 {
				fmt.Printf("No namespaces in folder '%s'\n", cfg.Folder)
				return nil
			}
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Namespace", "Folder"})
			for _, name := range names {
				t.AppendRow(table.Row{name, cfg.Folder})
			}
			t.Render()
			return nil

		default:
			return fmt.Errorf("invalid format: %s (use 'table', 'plain' or 'json')", listFormat)
		}
	},
}
