package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ompugao/bwenv/internal/config"
	"github.com/ompugao/bwenv/pkg/rbw"
)

var (
	cfg    *config.Config
	client *rbw.Client

	rootFolder string
)

var rootCmd = &cobra.Command{
	Use:   "bwenv",
	Short: "bwenv manages project env vars in your Bitwarden vault",
	Long: `bwenv stores dotenv-style environment variable sets as entries in a
Bitwarden folder, using the rbw CLI for all vault access. Each entry is
a "namespace": its name addresses the set, its notes hold the dotenv
content.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// PersistentPreRunE runs before every subcommand and wires up the
	// config and the rbw client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(config.DefaultPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cmd.Root().PersistentFlags().Changed("folder") {
			cfg.Folder = rootFolder
		}
		client = rbw.New(rbw.WithRunner(rbw.NewRunner(cfg.RBW)))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFolder, "folder", "", "Bitwarden folder holding the namespaces (default from config)")
}
