package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ompugao/bwenv/internal/envfile"
	"github.com/ompugao/bwenv/internal/namespace"
)

var setFile string

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVarP(&setFile, "file", "f", "", "Read dotenv content from file instead of stdin")
}

// setCmd creates or replaces a namespace from dotenv content
var setCmd = &cobra.Command{
	Use:   "set [namespace]",
	Short: "Creates or replaces a namespace from dotenv content",
	Long: `Creates or replaces a namespace. Content is read from stdin by
default, or from a file with --file:

  bwenv set myproject < .env
  bwenv set myproject --file .env
  cat .env | bwenv set myproject

The content must be valid dotenv format. Variable names must be valid
POSIX names, and reserved names like PATH and HOME are rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := namespace.Normalize(args[0])
		if err := namespace.Validate(name); err != nil {
			return err
		}

		content, err := readContent()
		if err != nil {
			return err
		}

		vars, err := envfile.Parse(content)
		if err != nil {
			return fmt.Errorf("invalid dotenv content: %w", err)
		}
		if err := envfile.Validate(vars); err != nil {
			return err
		}

		created, err := namespace.Upsert(client, name, cfg.Folder, string(content))
		if err != nil {
			return fmt.Errorf("failed to store namespace: %w", err)
		}

		if created {
			fmt.Printf("Namespace '%s' created with %d variables\n", name, len(vars))
		} else {
			fmt.Printf("Namespace '%s' updated with %d variables\n", name, len(vars))
		}
		return nil
	},
}

// readContent reads the dotenv payload from --file or stdin.
func readContent() ([]byte, error) {
	if setFile != "" {
		content, err := os.ReadFile(setFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		return content, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Enter dotenv content (Ctrl+D to finish):")
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return content, nil
}
