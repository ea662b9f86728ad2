// Package namespace holds the shared rules for addressing env-var
// namespaces stored as vault entries.
package namespace

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ompugao/bwenv/pkg/rbw"
)

// ErrNotFound is returned by operations that require an existing
// namespace.
var ErrNotFound = errors.New("namespace not found")

// Client is the vault surface namespace operations need. *rbw.Client
// satisfies it; tests substitute fakes.
type Client interface {
	ListNamespaces(folder string) ([]string, error)
	GetItem(name, folder string) (*rbw.Item, error)
	CreateItem(name, folder, notes string) error
	EditItem(name, folder, notes string, secureNote bool) error
	DeleteItem(name, folder string) error
}

// Normalize canonicalizes a namespace name: trimmed and NFC-normalized,
// so differently-composed Unicode spellings address the same entry.
func Normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// Validate rejects names that cannot address a vault entry.
func Validate(name string) error {
	if name == "" {
		return errors.New("namespace name cannot be empty")
	}
	if strings.ContainsRune(name, '\x00') {
		return errors.New("namespace name contains NUL byte")
	}
	return nil
}

// Upsert stores content under (name, folder), creating the entry when
// absent and editing it in place when present. The edit payload framing
// follows the entry's actual stored type, not a caller guess. Returns
// true when a new entry was created.
func Upsert(c Client, name, folder, content string) (bool, error) {
	item, err := c.GetItem(name, folder)
	if err != nil {
		return false, err
	}
	if item == nil {
		if err := c.CreateItem(name, folder, content); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := c.EditItem(name, folder, content, item.IsSecureNote()); err != nil {
		return false, err
	}
	return false, nil
}

// Content fetches the stored env content of a namespace. ErrNotFound
// wraps the name when the entry is absent.
func Content(c Client, name, folder string) (string, error) {
	item, err := c.GetItem(name, folder)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return item.Notes, nil
}
