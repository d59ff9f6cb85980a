package env

import (
	"context"
	"errors"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/napalu/gocli/i18n"
	"github.com/napalu/gocli/schema"
	"golang.org/x/text/language"
)

// Var declares one environment variable. Key names the entry in the loaded
// values; the variable name is derived from it unless Name is set.
type Var struct {
	Key    string
	Name   string
	Schema *schema.Schema
}

// V declares a variable keyed by key and validated by s.
func V(key string, s *schema.Schema) Var {
	return Var{Key: key, Schema: s}
}

// Named overrides the derived variable name.
func (v Var) Named(name string) Var {
	v.Name = name
	return v
}

// Problem is a single variable that failed to load.
type Problem struct {
	Name    string
	Missing bool
	Issue   schema.Issue
}

// Error reports every variable that failed to load. Its message is already
// formatted for display, one problem per line.
type Error struct {
	Problems []Problem
	message  string
}

func (e *Error) Error() string {
	return e.message
}

// Loader reads and validates environment variables.
type Loader struct {
	resolver Resolver
	prefix   string
	lang     language.Tag
	bundle   *i18n.Bundle
}

// Option configures a Loader.
type Option func(*Loader)

// WithResolver reads variables from r instead of the process environment.
func WithResolver(r Resolver) Option {
	return func(l *Loader) {
		l.resolver = r
	}
}

// WithPrefix prepends prefix to every derived variable name.
func WithPrefix(prefix string) Option {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// WithLanguage selects the language of error messages.
func WithLanguage(lang language.Tag) Option {
	return func(l *Loader) {
		l.lang = lang
	}
}

// NewLoader creates a Loader reading the process environment.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		resolver: &DefaultEnvResolver{},
		lang:     language.English,
		bundle:   i18n.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load validates vars against the process environment.
func Load(ctx context.Context, vars ...Var) (map[string]any, error) {
	return NewLoader().Load(ctx, vars...)
}

// VarName derives the variable name for key: "databaseUrl" with prefix "app"
// becomes "APP_DATABASE_URL".
func (l *Loader) VarName(key string) string {
	name := strcase.ToScreamingSnake(key)
	if l.prefix != "" {
		name = strcase.ToScreamingSnake(l.prefix) + "_" + name
	}

	return name
}

// Load resolves and validates every variable. All variables are checked
// before an *Error listing every problem is returned.
func (l *Loader) Load(ctx context.Context, vars ...Var) (map[string]any, error) {
	values := make(map[string]any, len(vars))
	var problems []Problem

	for _, v := range vars {
		name := v.Name
		if name == "" {
			name = l.VarName(v.Key)
		}

		raw, present := l.resolver.Lookup(name)
		var input any
		if present {
			input = coerce(v.Schema, raw)
		}

		parsed, err := v.Schema.ParseContext(ctx, input)
		if err != nil {
			var verr *schema.Error
			if !errors.As(err, &verr) {
				return nil, err
			}
			issue, _ := verr.First()
			problems = append(problems, Problem{Name: name, Missing: !present, Issue: issue})
			continue
		}
		if parsed != nil {
			values[v.Key] = parsed
		}
	}

	if len(problems) > 0 {
		return nil, l.newError(problems)
	}

	return values, nil
}

func (l *Loader) newError(problems []Problem) *Error {
	p := l.bundle.Printer(l.lang)

	var b strings.Builder
	b.WriteString(p.Sprintf(i18n.KeyEnvFailed, len(problems)))
	for _, pr := range problems {
		b.WriteString("\n  ")
		if pr.Missing {
			b.WriteString(p.Sprintf(i18n.KeyEnvMissing, pr.Name))
		} else {
			b.WriteString(p.Sprintf(i18n.KeyEnvInvalid, pr.Name, pr.Issue.Message))
		}
	}

	return &Error{Problems: problems, message: b.String()}
}

// coerce converts the raw string to the shape s expects. Array variables are
// comma separated.
func coerce(s *schema.Schema, raw string) any {
	base := schema.Unwrap(s)
	if base == nil || base.Kind() != schema.KindArray {
		return schema.CoerceString(s, raw)
	}

	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, schema.CoerceString(base.Inner(), part))
	}

	return out
}
