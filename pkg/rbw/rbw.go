// Package rbw wraps the rbw Bitwarden CLI for reading and writing vault
// entries. No cryptography or vault logic lives here: rbw owns all of
// that, and this package only orchestrates subprocess calls, guarantees
// the vault is unlocked first, and converts rbw's JSON and exit-status
// conventions into typed results.
//
// Write strategy: pipe content directly to rbw's stdin. When stdin is not
// a terminal, rbw reads the entire input as the edited content rather
// than launching an editor, which avoids any temp-file or EDITOR tricks.
package rbw

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Client runs rbw subcommands against a single folder-addressed vault.
// Every operation independently re-establishes unlock state and spawns a
// fresh subprocess; no entry state is cached across calls.
type Client struct {
	runner  Runner
	tty     TTYResolver
	spinner bool
}

// Option configures a Client.
type Option func(*Client)

// WithRunner substitutes the subprocess runner, e.g. a fake in tests or
// a runner bound to a non-default rbw binary.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.runner = r }
}

// WithTTYResolver substitutes the terminal resolver.
func WithTTYResolver(t TTYResolver) Option {
	return func(c *Client) { c.tty = t }
}

// WithSpinner forces the progress spinner on or off. By default it is
// shown only when stderr is a terminal.
func WithSpinner(enabled bool) Option {
	return func(c *Client) { c.spinner = enabled }
}

// New returns a Client bound to the rbw binary on PATH.
func New(opts ...Option) *Client {
	c := &Client{
		runner:  NewRunner(""),
		tty:     newTTYResolver(),
		spinner: term.IsTerminal(int(os.Stderr.Fd())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// env returns the environment overrides for a child rbw process:
// RBW_TTY when a terminal path resolved, nothing otherwise.
func (c *Client) env() map[string]string {
	if path, ok := c.tty.TTYPath(); ok {
		return map[string]string{EnvTTY: path}
	}
	return nil
}

// startSpinner shows a progress message on stderr and returns the stop
// function. The spinner never alters operation results.
func (c *Client) startSpinner(msg string) func() {
	if !c.spinner {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(os.Stderr),
		spinner.WithSuffix(" "+msg))
	s.Start()
	return s.Stop
}

// Unlocked reports whether the rbw agent currently holds the unlocked
// vault. It never prompts.
func (c *Client) Unlocked() (bool, error) {
	res, err := c.runner.Output([]string{"unlocked"}, c.env())
	if err != nil {
		return false, err
	}
	return res.Success(), nil
}

// ensureUnlocked checks `rbw unlocked` and, when the vault is locked,
// runs the interactive `rbw unlock` with the caller's streams inherited
// so the pinentry dialog is visible. Unlocking up front keeps prompts
// from colliding with piped stdin/stdout in later calls. The vault may
// lock again between operations, so every public operation starts here.
func (c *Client) ensureUnlocked() error {
	unlocked, err := c.Unlocked()
	if err != nil {
		return err
	}
	if unlocked {
		return nil
	}
	if err := c.runner.Run([]string{"unlock"}, c.env()); err != nil {
		return fmt.Errorf("failed to unlock vault: %w", err)
	}
	return nil
}

// ListNamespaces returns the names of all items filed under folder,
// regardless of item type, in the order rbw reports them. Unfiled items
// match only the empty folder.
func (c *Client) ListNamespaces(folder string) ([]string, error) {
	if err := c.ensureUnlocked(); err != nil {
		return nil, err
	}

	stop := c.startSpinner("Fetching namespaces…")
	res, err := c.runner.Output([]string{"list", "--raw"}, c.env())
	stop()
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, newExitError("rbw list", res)
	}

	var items []ListItem
	if err := json.Unmarshal(res.Stdout, &items); err != nil {
		return nil, fmt.Errorf("failed to parse `rbw list --raw` output: %w", err)
	}

	var names []string
	for _, item := range items {
		if item.Folder == folder {
			names = append(names, item.Name)
		}
	}
	return names, nil
}

// GetItem fetches a single item's detail record. It returns (nil, nil)
// when no entry with that name exists in the folder; callers must treat
// absence as a normal outcome, not an error.
func (c *Client) GetItem(name, folder string) (*Item, error) {
	if err := c.ensureUnlocked(); err != nil {
		return nil, err
	}

	stop := c.startSpinner(fmt.Sprintf("Fetching '%s'…", name))
	res, err := c.runner.Output([]string{"get", "--raw", "--folder", folder, name}, c.env())
	stop()
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		if isNotFound(res.Stderr) {
			return nil, nil
		}
		return nil, newExitError("rbw get", res)
	}

	var item Item
	if err := json.Unmarshal(res.Stdout, &item); err != nil {
		return nil, fmt.Errorf("failed to parse `rbw get --raw` output: %w", err)
	}
	return &item, nil
}

// CreateItem creates a new entry in folder with the given notes content.
// `rbw add` always creates a Login entry and, with piped stdin, reads the
// editor content directly: first line is the password (left empty here),
// the rest is notes.
func (c *Client) CreateItem(name, folder, notes string) error {
	return c.pipe([]string{"add", "--folder", folder, name}, "\n"+notes+"\n")
}

// EditItem replaces an existing entry's notes wholesale, preserving its
// type. Login entries keep the leading empty line so the password field
// stays empty; for secure notes rbw prepends that line itself before
// parsing, so the content is piped directly. The caller supplies
// secureNote to match the entry's actual stored type.
func (c *Client) EditItem(name, folder, notes string, secureNote bool) error {
	payload := "\n" + notes + "\n"
	if secureNote {
		payload = notes + "\n"
	}
	return c.pipe([]string{"edit", "--folder", folder, name}, payload)
}

// DeleteItem removes an entry by name and folder.
func (c *Client) DeleteItem(name, folder string) error {
	if err := c.ensureUnlocked(); err != nil {
		return err
	}

	stop := c.startSpinner("Deleting from Bitwarden…")
	res, err := c.runner.Output([]string{"remove", "--folder", folder, name}, c.env())
	stop()
	if err != nil {
		return err
	}
	if !res.Success() {
		return newExitError("rbw remove", res)
	}
	return nil
}

// pipe runs an rbw subcommand with payload streamed to its stdin, after
// the usual unlock check.
func (c *Client) pipe(args []string, payload string) error {
	if err := c.ensureUnlocked(); err != nil {
		return err
	}

	stop := c.startSpinner("Saving to Bitwarden…")
	err := c.runner.RunWithInput(args, c.env(), payload)
	stop()
	return err
}
