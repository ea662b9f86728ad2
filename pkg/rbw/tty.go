package rbw

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvTTY is the environment variable the rbw agent reads to learn which
// terminal pinentry should use. The agent daemon has no controlling
// terminal of its own, so it needs an absolute device path; /dev/tty
// would only resolve inside the current process tree.
const EnvTTY = "RBW_TTY"

// TTYResolver supplies the terminal device path injected as RBW_TTY.
type TTYResolver interface {
	// TTYPath returns an absolute device path for the real controlling
	// terminal, or false when none can be determined. Callers proceed
	// without a terminal hint rather than fail.
	TTYPath() (string, bool)
}

// fdTTYResolver resolves the terminal by reading the symlink targets of
// the process's own file descriptors. Probe directories and the fallback
// device are injectable so tests can mock the descriptor-link layout.
type fdTTYResolver struct {
	fdDirs []string // candidate fd-link directories, first existing wins
	devTTY string   // last-resort controlling-terminal device
}

// newTTYResolver returns the platform resolver: /proc/self/fd on Linux,
// /dev/fd on BSD-likes, with /dev/tty as the final fallback.
func newTTYResolver() *fdTTYResolver {
	return &fdTTYResolver{
		fdDirs: []string{"/proc/self/fd", "/dev/fd"},
		devTTY: "/dev/tty",
	}
}

// TTYPath probes stderr (fd 2) before stdin (fd 0): bwenv's stdout is
// commonly redirected by its caller while a real terminal is still
// attached via stderr. First device-path match wins.
func (t *fdTTYResolver) TTYPath() (string, bool) {
	dir := t.fdDir()
	if dir != "" {
		for _, fd := range []string{"2", "0"} {
			target, err := os.Readlink(filepath.Join(dir, fd))
			if err == nil && strings.HasPrefix(target, "/dev/") {
				return target, true
			}
		}
	}
	if t.devTTY != "" {
		if _, err := os.Stat(t.devTTY); err == nil {
			return t.devTTY, true
		}
	}
	return "", false
}

func (t *fdTTYResolver) fdDir() string {
	for _, dir := range t.fdDirs {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	return ""
}
