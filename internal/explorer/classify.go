package explorer

import (
	"fmt"
	"regexp"
	"strings"
)

// Lexical patterns for the read-only gate. This is a conservative filter,
// not a SQL parser: a forbidden keyword anywhere in the statement rejects
// it, even inside what looks like a subquery or a string literal. It
// over-rejects by design; it must never under-reject.
var (
	selectPrefix     = regexp.MustCompile(`(?i)^SELECT\s`)
	forbiddenKeyword = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|TRUNCATE|REPLACE|PRAGMA)\b`)
)

// ValidateReadOnlyQuery checks that a raw query string is a pure read-only
// SELECT statement.
//
// Whitespace is normalised, the statement must begin with SELECT followed
// by whitespace, and no forbidden write/DDL/pragma keyword may appear as a
// whole word anywhere. Empty input is ErrInvalidQuery; anything failing
// the read-only checks is ErrWriteQueryRejected.
//
// This gate covers both direct execution and query-plan inspection.
func ValidateReadOnlyQuery(query string) error {
	normalized := strings.Join(strings.Fields(query), " ")
	if normalized == "" {
		return fmt.Errorf("%w: empty query", ErrInvalidQuery)
	}

	if !selectPrefix.MatchString(normalized) {
		return fmt.Errorf("%w: query must begin with SELECT", ErrWriteQueryRejected)
	}

	if kw := forbiddenKeyword.FindString(normalized); kw != "" {
		return fmt.Errorf("%w: forbidden keyword %s", ErrWriteQueryRejected, strings.ToUpper(kw))
	}

	return nil
}
