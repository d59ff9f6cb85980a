package gocli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iancoleman/strcase"
)

var (
	// ErrHelpRequested is raised by the help flag to stop validation and print help.
	ErrHelpRequested = errors.New("help requested")
	// ErrVersionRequested is raised by the version flag.
	ErrVersionRequested = errors.New("version requested")
	// ErrFlagConflict reports a flag name or alias declared more than once.
	ErrFlagConflict = errors.New("flag conflict")
	// ErrDuplicateCommand reports sibling commands sharing a name or alias.
	ErrDuplicateCommand = errors.New("duplicate command")
	// ErrVariadicNotLast reports a variadic argument that is not the last one.
	ErrVariadicNotLast = errors.New("variadic argument must be the last argument")
	// ErrUnknownHelpTopic reports a help topic naming no command.
	ErrUnknownHelpTopic = errors.New("unknown help topic")
)

// ExitError is returned by Execute after the command signalled an exit code
// through its Output. Err is the failure that caused a non-zero exit.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
	}

	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code carried by err: 0 for nil, the code of an
// *ExitError, 1 for any other error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}

// Action is a lifecycle callback of a Command.
type Action func(ctx context.Context, in *Input) error

// Text is a lazily computed description.
type Text func() string

// String returns the text, or "" for a nil Text.
func (t Text) String() string {
	if t == nil {
		return ""
	}

	return t()
}

// StaticText wraps a fixed string.
func StaticText(s string) Text {
	if s == "" {
		return nil
	}

	return func() string { return s }
}

// Context is shared by every command of one invocation. Path accumulates
// the names of the commands walked so far.
type Context struct {
	Bin    string
	Path   []string
	Value  any
	Out    Output
	Logger *slog.Logger
}

// CommandPath joins Path with spaces ("tool build").
func (c *Context) CommandPath() string {
	return strings.Join(c.Path, " ")
}

func (c *Context) child(name string) *Context {
	cc := *c
	cc.Path = append(append(make([]string, 0, len(c.Path)+1), c.Path...), name)

	return &cc
}

// NameConversionFunc converts a declared flag name to an alternative spelling
type NameConversionFunc func(string) string

// Built-in conversion strategies
var (
	// ToKebabCase converts a string to kebab case "my-flag-name"
	ToKebabCase = func(s string) string {
		return strcase.ToKebab(s)
	}

	// ToSnakeCase converts a string to snake case "my_flag_name"
	ToSnakeCase = func(s string) string {
		return strcase.ToSnake(s)
	}

	// ToLowerCamel converts a string to lower camel case "myFlagName"
	ToLowerCamel = func(s string) string {
		return strcase.ToLowerCamel(s)
	}

	// ToLowerCase converts a string to lower case "myflagname"
	ToLowerCase = func(s string) string {
		return strings.ToLower(s)
	}
)
