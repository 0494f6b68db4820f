package explorer

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern is the only accepted shape for caller-supplied table
// and column names. Deliberately stricter than SQLite itself: quoted
// exotic names exist in the wild, but refusing them keeps generated SQL
// fragments trivially safe.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// ValidateIdentifier checks a candidate table or column name.
//
// Returns ErrInvalidIdentifier for empty input or anything not matching
// ^[A-Za-z_$][A-Za-z0-9_$]*$.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidIdentifier)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// QuoteIdentifier validates an identifier and returns it double-quoted for
// embedding in a generated SQL fragment, with embedded quotes doubled.
//
// This is the sole sanctioned path for turning caller-supplied names into
// SQL text; no other code may concatenate raw names into a statement.
func QuoteIdentifier(name string) (string, error) {
	if err := ValidateIdentifier(name); err != nil {
		return "", err
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`, nil
}
