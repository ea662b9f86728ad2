package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ompugao/bwenv/internal/namespace"
)

var deleteForce bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

// deleteCmd deletes a namespace
var deleteCmd = &cobra.Command{
	Use:   "delete [namespace]",
	Short: "Deletes a namespace from the Bitwarden folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := namespace.Normalize(args[0])
		if err := namespace.Validate(name); err != nil {
			return err
		}

		if !deleteForce {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return fmt.Errorf("refusing to delete without confirmation; use --force")
			}
			fmt.Printf("Delete namespace '%s' from folder '%s'?\n", name, cfg.Folder)
			fmt.Print("Are you sure? [y/N]: ")
			var response string
			if _, err := fmt.Scanln(&response); err != nil {
				// Treat read error as "no"
				fmt.Println("Aborted")
				return nil
			}
			if response != "y" && response != "Y" {
				fmt.Println("Aborted")
				return nil
			}
		}

		if err := client.DeleteItem(name, cfg.Folder); err != nil {
			return fmt.Errorf("failed to delete namespace: %w", err)
		}

		fmt.Printf("Namespace '%s' deleted\n", name)
		return nil
	},
}
