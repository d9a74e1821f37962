package parser

import (
	"errors"
	"fmt"

	"github.com/maigus-labs/maigus/pkg/token"
)

// CardTextError is the single error kind of the parser. The message always
// embeds the words of the clause that could not be parsed.
type CardTextError struct {
	Message string
}

func (e *CardTextError) Error() string {
	return "parse error: " + e.Message
}

// parseErrorf creates a CardTextError.
func parseErrorf(format string, args ...any) error {
	return &CardTextError{Message: fmt.Sprintf(format, args...)}
}

// unsupportedf reports a recognized but unsupported construct in a clause.
func unsupportedf(toks []token.Token, format string, args ...any) error {
	return parseErrorf("%s (clause: '%s')", fmt.Sprintf(format, args...), token.Join(toks))
}

// IsParseError reports whether err is (or wraps) a CardTextError.
func IsParseError(err error) bool {
	var cte *CardTextError
	return errors.As(err, &cte)
}

// Common error messages
const (
	ErrEmptyClause          = "empty clause"
	ErrUnknownVerb          = "no recognized verb"
	ErrUnsupportedTarget    = "unsupported target phrase"
	ErrUnsupportedFilter    = "unsupported object filter"
	ErrUnsupportedPredicate = "unsupported predicate"
	ErrUnsupportedTrigger   = "unsupported trigger"
	ErrUnsupportedCost      = "unsupported cost"
	ErrUnsupportedValue     = "unsupported amount"
	ErrUnsupportedStatic    = "unsupported static ability"
	ErrUnsupportedLine      = "unsupported line"
	ErrArithmeticCompare    = "arithmetic or disjunctive comparison is not supported"
)
