package rbw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Result holds the complete outcome of a capture-mode invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited zero.
func (r *Result) Success() bool { return r.ExitCode == 0 }

// Runner spawns the rbw binary. The three methods mirror the three spawn
// shapes the adapter needs: full capture, full inherit, and piped stdin.
// Tests substitute a fake implementation that records arguments and
// injects canned outputs and exit codes.
type Runner interface {
	// Output runs rbw with args and waits for completion, capturing
	// stdout, stderr and the exit status. A non-zero exit is reported in
	// the Result, not as an error; the error return is reserved for
	// spawn and wait failures.
	Output(args []string, extraEnv map[string]string) (*Result, error)

	// Run runs rbw with all three standard streams inherited, so an
	// interactive dialog (e.g. a pinentry passphrase prompt) reaches the
	// caller's terminal. A non-zero exit is returned as an *ExitError.
	Run(args []string, extraEnv map[string]string) error

	// RunWithInput runs rbw with stdin connected to a pipe that is fed
	// input and then closed, while stdout and stderr are inherited. rbw
	// detects the non-interactive stdin and reads it wholesale as the
	// edited content instead of launching an editor. A non-zero exit is
	// returned as an *ExitError.
	RunWithInput(args []string, extraEnv map[string]string, input string) error
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct {
	bin string
}

// NewRunner returns a Runner that invokes the given rbw binary.
// An empty bin defaults to "rbw" resolved via PATH.
func NewRunner(bin string) Runner {
	if bin == "" {
		bin = "rbw"
	}
	return &execRunner{bin: bin}
}

func (r *execRunner) command(args []string, extraEnv map[string]string) *exec.Cmd {
	cmd := exec.Command(r.bin, args...)
	cmd.Env = os.Environ()
	for k, v := range extraEnv {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	return cmd
}

// cmdName names an invocation for error messages: the binary plus the
// subcommand, without flags.
func (r *execRunner) cmdName(args []string) string {
	if len(args) == 0 {
		return r.bin
	}
	return r.bin + " " + args[0]
}

func (r *execRunner) Output(args []string, extraEnv map[string]string) (*Result, error) {
	cmd := r.command(args, extraEnv)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run `%s`: %w", r.cmdName(args), err)
		}
	}
	return &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}

func (r *execRunner) Run(args []string, extraEnv map[string]string) error {
	cmd := r.command(args, extraEnv)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Cmd: r.cmdName(args), ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to run `%s`: %w", r.cmdName(args), err)
	}
	return nil
}

func (r *execRunner) RunWithInput(args []string, extraEnv map[string]string, input string) error {
	cmd := r.command(args, extraEnv)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to open `%s` stdin: %w", r.cmdName(args), err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn `%s`: %w", r.cmdName(args), err)
	}

	if _, err := io.WriteString(stdin, input); err != nil {
		stdin.Close()
		_ = cmd.Wait() // reap the child before reporting the write failure
		return fmt.Errorf("failed to write to `%s` stdin: %w", r.cmdName(args), err)
	}
	if err := stdin.Close(); err != nil {
		_ = cmd.Wait()
		return fmt.Errorf("failed to close `%s` stdin: %w", r.cmdName(args), err)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Cmd: r.cmdName(args), ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to wait for `%s`: %w", r.cmdName(args), err)
	}
	return nil
}
