package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script for your shell",
	Long: `To load completions:

Bash:
  $ source <(bwenv completion bash)

  # To load for each session (Linux):
  $ bwenv completion bash > ~/.local/share/bash-completion/completions/bwenv

  # To load for each session (macOS with Homebrew):
  $ bwenv completion bash > $(brew --prefix)/etc/bash_completion.d/bwenv

Zsh:
  $ bwenv completion zsh > ~/.zsh/completions/_bwenv
  # (create ~/.zsh/completions if needed, add to fpath in .zshrc)

Fish:
  $ bwenv completion fish > ~/.config/fish/completions/bwenv.fish

PowerShell:
  PS> bwenv completion powershell >> $PROFILE

Dynamic completion (namespace names):
  Set BWENV_COMPLETION_ENABLED=1 to enable namespace name completion.
  Note: the rbw agent must already be unlocked for this to work.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	// Register dynamic completion functions for commands
	showCmd.ValidArgsFunction = completeNamespaces
	deleteCmd.ValidArgsFunction = completeNamespaces
	runCmd.ValidArgsFunction = completeNamespaces
}

// isDynamicCompletionEnabled checks if dynamic completion is opt-in
// enabled. It is disabled by default so tab completion never triggers an
// unlock prompt.
func isDynamicCompletionEnabled() bool {
	return os.Getenv("BWENV_COMPLETION_ENABLED") == "1"
}

// completeNamespaces provides namespace name completion (opt-in only).
// Returns an empty list when dynamic completion is disabled or the rbw
// agent is locked, so completion never blocks on a pinentry dialog.
func completeNamespaces(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if !isDynamicCompletionEnabled() {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	unlocked, err := client.Unlocked()
	if err != nil || !unlocked {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names, err := client.ListNamespaces(cfg.Folder)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var filtered []string
	lowerPrefix := strings.ToLower(toComplete)
	for _, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lowerPrefix) {
			filtered = append(filtered, name)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}
