package rbw

import (
	"bytes"
	"fmt"
	"strings"
)

// notFoundPhrases are the stderr phrasings different rbw versions emit
// when a single-item fetch misses. All alias the same condition.
var notFoundPhrases = []string{
	"no entry found",
	"no items found",
	"Entry not found",
}

// isNotFound reports whether stderr text from a failed `rbw get`
// indicates the entry does not exist, as opposed to a genuine failure.
func isNotFound(stderr []byte) bool {
	for _, phrase := range notFoundPhrases {
		if bytes.Contains(stderr, []byte(phrase)) {
			return true
		}
	}
	return false
}

// ExitError reports an rbw invocation that exited non-zero.
type ExitError struct {
	Cmd      string // command name, e.g. "rbw get"
	ExitCode int
	Stderr   string // trimmed diagnostic text, may be empty
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("`%s` failed (exit status %d)", e.Cmd, e.ExitCode)
	}
	return fmt.Sprintf("`%s` failed (exit status %d): %s", e.Cmd, e.ExitCode, e.Stderr)
}

// newExitError builds an ExitError from a failed capture-mode result.
func newExitError(cmd string, res *Result) *ExitError {
	return &ExitError{
		Cmd:      cmd,
		ExitCode: res.ExitCode,
		Stderr:   strings.TrimSpace(string(res.Stderr)),
	}
}
