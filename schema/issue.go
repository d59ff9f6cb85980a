package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// IssueCode classifies a validation failure.
type IssueCode string

const (
	TooSmall         IssueCode = "too_small"
	TooBig           IssueCode = "too_big"
	InvalidType      IssueCode = "invalid_type"
	InvalidEnumValue IssueCode = "invalid_enum_value"
	InvalidLiteral   IssueCode = "invalid_literal"
	InvalidUnion     IssueCode = "invalid_union"
	InvalidDate      IssueCode = "invalid_date"
	InvalidString    IssueCode = "invalid_string"
	UnrecognizedKeys IssueCode = "unrecognized_keys"
	Custom           IssueCode = "custom"
)

// Issue describes a single validation failure. Which of the optional fields are
// populated depends on Code.
type Issue struct {
	Code    IssueCode
	Path    []any // string keys and int indexes from the root value
	Message string

	// invalid_type, invalid_enum_value, invalid_literal
	Expected string
	Received string

	// invalid_enum_value
	Options []string

	// unrecognized_keys
	Keys []string

	// too_small, too_big
	Minimum   float64
	Maximum   float64
	Inclusive bool
	Type      string // "string", "number" or "array"

	// custom
	Params map[string]any
	// Cause is the error a refinement returned.
	Cause error

	// invalid_union: the issues of every rejected option
	UnionIssues [][]Issue
}

// PathString renders the issue path as a dotted string ("server.ports.0").
func (i Issue) PathString() string {
	parts := make([]string, 0, len(i.Path))
	for _, p := range i.Path {
		switch v := p.(type) {
		case string:
			parts = append(parts, v)
		case int:
			parts = append(parts, strconv.Itoa(v))
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}

	return strings.Join(parts, ".")
}

// Error is returned by Parse when the value does not satisfy the schema. It
// carries every issue found; validation never stops at the first one.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}

	first := e.Issues[0]
	msg := first.Message
	if p := first.PathString(); p != "" {
		msg = p + ": " + msg
	}
	if len(e.Issues) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e.Issues)-1)
	}

	return msg
}

// Unwrap exposes the errors returned by refinements, so errors.Is and
// errors.As see through an *Error.
func (e *Error) Unwrap() []error {
	var causes []error
	for _, issue := range e.Issues {
		if issue.Cause != nil {
			causes = append(causes, issue.Cause)
		}
	}

	return causes
}

// First returns the first issue, if any.
func (e *Error) First() (Issue, bool) {
	if len(e.Issues) == 0 {
		return Issue{}, false
	}

	return e.Issues[0], true
}

// interruptError aborts validation and is surfaced from Parse unchanged.
type interruptError struct {
	err error
}

func (e *interruptError) Error() string {
	return e.err.Error()
}

func (e *interruptError) Unwrap() error {
	return e.err
}

// Interrupt wraps err so that, when returned from a refinement, validation
// stops immediately and Parse returns err itself instead of an *Error.
func Interrupt(err error) error {
	return &interruptError{err: err}
}

// CustomIssue is an error a refinement can return to attach params to the
// resulting custom issue.
type CustomIssue struct {
	Message string
	Params  map[string]any
}

func (c *CustomIssue) Error() string {
	return c.Message
}

// Issuef builds a CustomIssue with a formatted message.
func Issuef(params map[string]any, format string, args ...any) error {
	return &CustomIssue{Message: fmt.Sprintf(format, args...), Params: params}
}

func issueFromError(err error, path []any) Issue {
	issue := Issue{Code: Custom, Path: path, Message: err.Error(), Cause: err}
	var ci *CustomIssue
	if errors.As(err, &ci) {
		issue.Params = ci.Params
	}

	return issue
}

func invalidTypeMessage(expected, received string) string {
	if received == "undefined" {
		return "Required"
	}

	return fmt.Sprintf("Expected %s, received %s", expected, received)
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}

	return strings.Join(quoted, " | ")
}

func plural(n float64, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}

func tooSmallMessage(typ string, min float64) string {
	switch typ {
	case "array":
		return fmt.Sprintf("Array must contain at least %g %s", min, plural(min, "element", "elements"))
	case "string":
		return fmt.Sprintf("String must contain at least %g %s", min, plural(min, "character", "characters"))
	}

	return fmt.Sprintf("Number must be greater than or equal to %g", min)
}

func tooBigMessage(typ string, max float64) string {
	switch typ {
	case "array":
		return fmt.Sprintf("Array must contain at most %g %s", max, plural(max, "element", "elements"))
	case "string":
		return fmt.Sprintf("String must contain at most %g %s", max, plural(max, "character", "characters"))
	}

	return fmt.Sprintf("Number must be less than or equal to %g", max)
}
