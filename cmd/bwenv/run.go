package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ompugao/bwenv/internal/envfile"
	"github.com/ompugao/bwenv/internal/namespace"
)

// Run command flags
var (
	runTimeout   time.Duration
	runEnvPrefix string
)

// Exit codes for run failures that must be distinguishable in scripts
const (
	ExitNamespaceNotFound = 2
	ExitTimeout           = 124
	ExitCommandNotFound   = 127
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVarP(&runTimeout, "timeout", "t", 0, "Command timeout (default from config)")
	runCmd.Flags().StringVar(&runEnvPrefix, "env-prefix", "", "Prefix applied to every injected variable name")
}

// runCmd executes a command with a namespace's variables in its environment
var runCmd = &cobra.Command{
	Use:   "run [flags] namespace -- command [args...]",
	Short: "Run a command with a namespace's variables in its environment",
	Long: `Run a command with the variables of a namespace injected as
environment variables.

Examples:
  bwenv run myproject -- npm start
  bwenv run myproject --env-prefix=APP_ -- ./script.sh
  bwenv run myproject --timeout=30s -- make deploy`,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Find the command after "--"
		dashIndex := cmd.ArgsLenAtDash()
		if dashIndex == -1 {
			return fmt.Errorf("no command specified; use: bwenv run NAMESPACE -- command [args...]")
		}
		if dashIndex != 1 {
			return fmt.Errorf("expected exactly one namespace before '--'")
		}

		commandArgs := args[dashIndex:]
		if len(commandArgs) == 0 {
			return fmt.Errorf("no command specified after '--'")
		}

		return executeRun(args[0], commandArgs)
	},
}

// executeRun fetches the namespace and launches the command.
func executeRun(rawName string, commandArgs []string) error {
	name := namespace.Normalize(rawName)
	if err := namespace.Validate(name); err != nil {
		return err
	}

	content, err := namespace.Content(client, name, cfg.Folder)
	if err != nil {
		if errors.Is(err, namespace.ErrNotFound) {
			return &exitError{
				code: ExitNamespaceNotFound,
				err:  fmt.Errorf("namespace '%s' not found in folder '%s'", name, cfg.Folder),
			}
		}
		return fmt.Errorf("failed to get namespace: %w", err)
	}

	vars, err := envfile.Parse([]byte(content))
	if err != nil {
		return fmt.Errorf("namespace '%s' holds invalid dotenv content: %w", name, err)
	}
	if err := envfile.Validate(vars); err != nil {
		return fmt.Errorf("namespace '%s' holds invalid dotenv content: %w", name, err)
	}

	entries, err := envfile.ToEnviron(vars, runEnvPrefix)
	if err != nil {
		return err
	}
	env := append(os.Environ(), entries...)

	timeout := runTimeout
	if timeout == 0 {
		timeout = cfg.Timeout()
	}

	return executeCommand(commandArgs, env, timeout)
}

// executeCommand runs the command with the injected environment.
func executeCommand(args []string, env []string, timeout time.Duration) error {
	// Prevent core dumps so injected values cannot leak to disk
	if err := disableCoreDumps(); err != nil {
		return fmt.Errorf("failed to disable core dumps: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmdPath, err := exec.LookPath(args[0])
	if err != nil {
		return &exitError{code: ExitCommandNotFound, err: fmt.Errorf("command not found: %s", args[0])}
	}

	cmd := exec.CommandContext(ctx, cmdPath, args[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Graceful shutdown: SIGTERM first, SIGKILL after the wait delay
	cmd.Cancel = func() error {
		return cmd.Process.Signal(terminateSignal())
	}
	cmd.WaitDelay = 5 * time.Second

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signalsToNotify()...)
	defer signal.Stop(sigChan)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}

	// Forward signals to the child until it exits
	done := make(chan struct{})
	var sigWg sync.WaitGroup
	sigWg.Add(1)
	go func() {
		defer sigWg.Done()
		for {
			select {
			case sig := <-sigChan:
				select {
				case <-done:
					return
				default:
					if cmd.Process != nil {
						cmd.Process.Signal(sig)
					}
				}
			case <-done:
				return
			}
		}
	}()

	err = cmd.Wait()
	close(done)
	sigWg.Wait()

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &exitError{code: ExitTimeout, err: fmt.Errorf("command '%s' timed out after %v", args[0], timeout)}
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &exitError{code: exitErr.ExitCode(), err: nil}
		}

		return err
	}

	return nil
}

// exitError represents a command exit with a specific code
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) ExitCode() int {
	return e.code
}
