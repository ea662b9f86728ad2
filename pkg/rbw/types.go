package rbw

import "strings"

// ListItem is one catalog entry from `rbw list --raw`. It identifies an
// item without exposing its secret content. Folder decodes JSON null to
// "" for unfiled items.
type ListItem struct {
	Name   string `json:"name"`
	Folder string `json:"folder"`
	Type   string `json:"type"`
}

// Item is the detail record from `rbw get --raw` for a single entry.
type Item struct {
	// Type is the entry type reported by rbw: "Login", "SecureNote", etc.
	Type  string `json:"type"`
	Notes string `json:"notes"`
}

// IsSecureNote reports whether the entry is a secure note rather than a
// login. The distinction matters for edit payload framing: rbw prepends
// the empty password line itself when parsing secure-note payloads.
func (i *Item) IsSecureNote() bool {
	t := strings.ReplaceAll(i.Type, " ", "")
	return strings.EqualFold(t, "SecureNote") || strings.EqualFold(t, "Note")
}
