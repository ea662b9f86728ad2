// Package envfile handles the dotenv-format content bwenv stores in
// vault entry notes: parsing, variable-name validation, and rendering
// into process-environment entries.
package envfile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// ErrReservedVar is returned when a namespace would overwrite a critical
// system variable.
var ErrReservedVar = errors.New("cannot overwrite reserved environment variable")

// reservedVars are critical system variables that must not be overwritten
// by namespace content.
var reservedVars = map[string]bool{
	"PATH": true, "HOME": true, "USER": true, "SHELL": true,
	"PWD": true, "OLDPWD": true, "TERM": true, "LANG": true,
	"IFS": true, "PS1": true, "PS2": true,
	// LC_ALL and LC_CTYPE can enable localization attacks
	"LC_ALL": true, "LC_CTYPE": true,
}

// Parse decodes dotenv-format content into a variable map. Comments and
// blank lines are ignored; quoting follows dotenv conventions.
func Parse(content []byte) (map[string]string, error) {
	vars, err := godotenv.UnmarshalBytes(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env content: %w", err)
	}
	return vars, nil
}

// Validate checks that every variable in vars has a POSIX-safe name, no
// NUL bytes, and does not shadow a reserved system variable.
func Validate(vars map[string]string) error {
	for name, value := range vars {
		if err := validateName(name); err != nil {
			return fmt.Errorf("invalid variable name %q: %w", name, err)
		}
		if strings.ContainsRune(value, '\x00') {
			return fmt.Errorf("NUL byte in value for %q", name)
		}
		if err := checkReserved(name); err != nil {
			return err
		}
	}
	return nil
}

// ToEnviron renders vars as KEY=value entries with the optional prefix
// applied to every name. Entries are sorted by name so output is
// deterministic. Prefixed names are re-validated: a prefix can turn a
// valid name invalid (or un-shadow a reserved one).
func ToEnviron(vars map[string]string, prefix string) ([]string, error) {
	entries := make([]string, 0, len(vars))
	for name, value := range vars {
		envName := prefix + name
		if err := validateName(envName); err != nil {
			return nil, fmt.Errorf("invalid environment variable name %q: %w", envName, err)
		}
		if err := checkReserved(envName); err != nil {
			return nil, err
		}
		entries = append(entries, envName+"="+value)
	}
	sort.Strings(entries)
	return entries, nil
}

// validateName validates a POSIX environment variable name:
// ^[A-Za-z_][A-Za-z0-9_]*$
func validateName(name string) error {
	if len(name) == 0 {
		return errors.New("name cannot be empty")
	}

	first := name[0]
	if !((first >= 'A' && first <= 'Z') ||
		(first >= 'a' && first <= 'z') || first == '_') {
		return errors.New("must start with a letter or underscore")
	}

	for i := 1; i < len(name); i++ {
		c := name[i]
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') || c == '_') {
			return fmt.Errorf("contains invalid character %q", c)
		}
	}
	return nil
}

// checkReserved returns an error when name is a reserved variable.
func checkReserved(name string) error {
	if reservedVars[name] {
		return fmt.Errorf("%w: %s", ErrReservedVar, name)
	}
	return nil
}
