package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ompugao/bwenv/internal/namespace"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

// showCmd prints the dotenv content of a namespace
var showCmd = &cobra.Command{
	Use:   "show [namespace]",
	Short: "Prints the dotenv content of a namespace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := namespace.Normalize(args[0])
		if err := namespace.Validate(name); err != nil {
			return err
		}

		content, err := namespace.Content(client, name, cfg.Folder)
		if err != nil {
			if errors.Is(err, namespace.ErrNotFound) {
				return fmt.Errorf("namespace '%s' not found in folder '%s'", name, cfg.Folder)
			}
			return fmt.Errorf("failed to get namespace: %w", err)
		}

		os.Stdout.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Println()
		}
		return nil
	},
}
