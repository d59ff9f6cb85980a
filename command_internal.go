package gocli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/napalu/gocli/env"
	"github.com/napalu/gocli/i18n"
	"github.com/napalu/gocli/internal/util"
	"github.com/napalu/gocli/parse"
	"github.com/napalu/gocli/schema"
)

func (c *Command) execute(ctx context.Context, argv []string, rc *Context) error {
	if len(argv) > 0 {
		if child, ok := c.Lookup(argv[0]); ok {
			rc.Logger.Debug("routing to subcommand", "path", rc.CommandPath(), "command", child.Name)
			return child.execute(ctx, argv[1:], rc.child(child.Name))
		}
	}

	merged := c.mergedFlags()
	pc := newParserConfig(merged, c.app.flagConverter)
	res := parse.Parse(argv, pc.options)
	rc.Logger.Debug("tokenized arguments", "path", rc.CommandPath(),
		"flags", res.Values, "positional", res.Positional, "doubleDash", res.DoubleDash)

	parsed, err := merged.Schema().ParseContext(ctx, res.Values)
	if err != nil {
		return c.flagFailure(rc, err, pc.known)
	}
	flags, _ := parsed.(map[string]any)
	if flags == nil {
		flags = make(map[string]any)
	}

	args, named, err := c.parseArgs(ctx, res.Positional)
	if err != nil {
		return c.argFailure(rc, err)
	}
	rc.Logger.Debug("validated command line", "path", rc.CommandPath())

	in := &Input{
		Flags:      Values(flags),
		Args:       args,
		Named:      named,
		DoubleDash: res.DoubleDash,
		Ctx:        rc,
	}

	return c.runActions(ctx, in)
}

// parserConfig is the tokenizer configuration derived from a merged flag
// set, plus every spelling a flag can be given by.
type parserConfig struct {
	options parse.Options
	known   []string
}

// newParserConfig classifies the flags of fs. Canonical names are claimed in
// a first walk so aliases never shadow them; an alias claimed by two flags
// goes to the one visited first, which is the later declared one.
func newParserConfig(fs *FlagSet, convert NameConversionFunc) *parserConfig {
	pc := &parserConfig{options: parse.Options{
		Bools:      make(map[string]bool),
		Numbers:    make(map[string]bool),
		Strings:    make(map[string]bool),
		Collect:    make(map[string]bool),
		Negatable:  make(map[string]bool),
		Aliases:    make(map[string][]string),
		AliasMode:  parse.AliasCanonical,
		DoubleDash: true,
	}}

	canonical := make(map[string]bool)
	WalkFlags(fs, func(_ *Flag, path string) {
		canonical[path] = true
	})

	claimed := make(map[string]bool)
	WalkFlags(fs, func(f *Flag, path string) {
		pc.known = append(pc.known, path)

		s := schema.Unwrap(f.schema)
		if s != nil && s.Kind() == schema.KindArray {
			pc.options.Collect[path] = true
			s = s.Inner()
		}
		switch classify(s) {
		case valueBool:
			pc.options.Bools[path] = true
		case valueNumber:
			pc.options.Numbers[path] = true
		case valueString:
			pc.options.Strings[path] = true
		}
		if f.negatable {
			pc.options.Negatable[path] = true
			pc.known = append(pc.known, "no-"+path)
		}

		aliases := f.aliases
		if convert != nil {
			if alt := convertPath(path, convert); alt != path {
				aliases = append(slices.Clone(aliases), alt)
			}
		}
		for _, alias := range aliases {
			if canonical[alias] || claimed[alias] {
				continue
			}
			claimed[alias] = true
			pc.options.Aliases[path] = append(pc.options.Aliases[path], alias)
			pc.known = append(pc.known, alias)
		}
	})

	return pc
}

// convertPath converts each segment of a dotted flag path.
func convertPath(path string, convert NameConversionFunc) string {
	parts := strings.Split(path, ".")
	for i, part := range parts {
		parts[i] = convert(part)
	}

	return strings.Join(parts, ".")
}

type valueKind int

const (
	valueUntyped valueKind = iota
	valueBool
	valueNumber
	valueString
)

// classify tells the tokenizer how a flag validated by s takes its value.
func classify(s *schema.Schema) valueKind {
	s = schema.Unwrap(s)
	if s == nil {
		return valueUntyped
	}

	switch s.Kind() {
	case schema.KindBoolean:
		return valueBool
	case schema.KindNumber:
		return valueNumber
	case schema.KindString, schema.KindEnum, schema.KindDate:
		return valueString
	case schema.KindLiteral:
		switch s.LiteralValue().(type) {
		case bool:
			return valueBool
		case float64:
			return valueNumber
		case string:
			return valueString
		}
	case schema.KindUnion:
		var bools, numbers, strs int
		items := s.Items()
		for _, option := range items {
			switch classify(option) {
			case valueBool:
				bools++
			case valueNumber:
				numbers++
			case valueString:
				strs++
			}
		}
		switch {
		case bools == len(items):
			return valueBool
		case bools > 0:
			return valueUntyped
		case numbers > 0:
			return valueNumber
		case strs > 0:
			return valueString
		}
	}

	return valueUntyped
}

func (c *Command) parseArgs(ctx context.Context, positional []string) ([]any, Values, error) {
	if c.args == nil {
		out := make([]any, len(positional))
		for i, s := range positional {
			out[i] = s
		}
		return out, Values{}, nil
	}

	var input any
	if len(positional) > 0 || (!c.args.optional && c.args.defaultFn == nil) {
		input = c.args.coerce(positional)
	}
	parsed, err := c.args.Schema().ParseContext(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	list, _ := parsed.([]any)

	return list, c.args.named(list), nil
}

func (c *Command) flagFailure(rc *Context, err error, known []string) error {
	switch {
	case errors.Is(err, ErrHelpRequested):
		return c.showHelp(rc)
	case errors.Is(err, ErrVersionRequested):
		if werr := rc.Out.WriteLine(Stdout, fmt.Sprintf("%s %s", c.app.bin, c.app.version)); werr != nil {
			return werr
		}
		return c.exit(rc, 0, nil)
	}
	if envErr, ok := asEnvError(err); ok {
		return c.envFailure(rc, envErr)
	}

	var verr *schema.Error
	if !errors.As(err, &verr) {
		return err
	}
	issue, _ := verr.First()
	rc.Logger.Debug("flag validation failed", "path", rc.CommandPath(), "issues", len(verr.Issues), "code", issue.Code)

	return c.fail(rc, c.flagIssueMessage(issue, known), err)
}

func (c *Command) flagIssueMessage(issue schema.Issue, known []string) string {
	p := c.app.printer()
	name := flagPath(issue.Path)

	switch issue.Code {
	case schema.UnrecognizedKeys:
		key := issue.Keys[0]
		if name != "" {
			key = name + "." + key
		}
		msg := p.Sprintf(i18n.KeyUnknownFlag, flagDisplay(key))
		if suggestion, ok := util.Closest(key, known); ok {
			msg += " " + p.Sprintf(i18n.KeyDidYouMean, flagDisplay(suggestion))
		}
		return msg
	case schema.InvalidType, schema.InvalidUnion:
		return p.Sprintf(i18n.KeyInvalidFlagType, name, issue.Expected, issue.Received)
	case schema.InvalidEnumValue, schema.InvalidLiteral:
		return p.Sprintf(i18n.KeyInvalidFlagValue, name, issue.Expected, issue.Received)
	}

	return p.Sprintf(i18n.KeyInvalidFlag, name, issue.Message)
}

// flagPath names the flag an issue path points into; list indexes of
// collected values are dropped.
func flagPath(path []any) string {
	parts := make([]string, 0, len(path))
	for _, elem := range path {
		if s, ok := elem.(string); ok {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, ".")
}

// flagDisplay renders a flag name the way it is typed.
func flagDisplay(name string) string {
	if len([]rune(name)) == 1 {
		return "-" + name
	}

	return "--" + name
}

func (c *Command) argFailure(rc *Context, err error) error {
	if envErr, ok := asEnvError(err); ok {
		return c.envFailure(rc, envErr)
	}

	var verr *schema.Error
	if !errors.As(err, &verr) {
		return err
	}
	issue, _ := verr.First()
	rc.Logger.Debug("argument validation failed", "path", rc.CommandPath(), "issues", len(verr.Issues), "code", issue.Code)

	return c.fail(rc, c.argIssueMessage(issue), err)
}

func (c *Command) argIssueMessage(issue schema.Issue) string {
	p := c.app.printer()
	if len(issue.Path) == 0 {
		switch issue.Code {
		case schema.TooSmall:
			return p.Sprintf(i18n.KeyArgsTooFew, int(issue.Minimum))
		case schema.TooBig:
			return p.Sprintf(i18n.KeyArgsTooMany, int(issue.Maximum))
		}
	}

	name := c.argName(issue.Path)
	switch issue.Code {
	case schema.InvalidType, schema.InvalidUnion:
		return p.Sprintf(i18n.KeyInvalidArgType, name, issue.Expected, issue.Received)
	case schema.InvalidEnumValue, schema.InvalidLiteral:
		return p.Sprintf(i18n.KeyInvalidArgValue, name, issue.Expected, issue.Received)
	}

	return p.Sprintf(i18n.KeyInvalidArg, name, issue.Message)
}

// argName replaces the leading index of an issue path with the name of the
// argument at that position.
func (c *Command) argName(path []any) string {
	if len(path) == 0 {
		return ""
	}
	index, ok := path[0].(int)
	if !ok {
		return schema.Issue{Path: path}.PathString()
	}
	name := fmt.Sprint(index)
	if arg, found := c.args.at(index); found {
		name = arg.name
	}
	if len(path) > 1 {
		name += "." + schema.Issue{Path: path[1:]}.PathString()
	}

	return name
}

// fail writes msg and the help hint to stderr in one write and exits with 1.
func (c *Command) fail(rc *Context, msg string, cause error) error {
	hint := c.app.printer().Sprintf(i18n.KeySeeHelp, rc.CommandPath())
	if err := rc.Out.WriteLine(Stderr, msg+"\n"+hint); err != nil {
		return err
	}

	return c.exit(rc, 1, cause)
}

func (c *Command) exit(rc *Context, code int, cause error) error {
	rc.Out.Exit(code)
	return &ExitError{Code: code, Err: cause}
}

func (c *Command) showHelp(rc *Context) error {
	text := newRenderer(c.app).Help(c, rc.CommandPath())
	if err := rc.Out.WriteLine(Stdout, text); err != nil {
		return err
	}

	return c.exit(rc, 0, nil)
}

func (c *Command) runActions(ctx context.Context, in *Input) error {
	for _, action := range []Action{c.preRun, c.run, c.postRun} {
		if action == nil {
			continue
		}
		if err := action(ctx, in); err != nil {
			if envErr, ok := asEnvError(err); ok {
				return c.envFailure(in.Ctx, envErr)
			}
			return err
		}
	}

	return nil
}

func asEnvError(err error) (*env.Error, bool) {
	var envErr *env.Error
	ok := errors.As(err, &envErr)

	return envErr, ok
}

// envFailure writes the already formatted environment report, without the
// help hint, and exits with 1.
func (c *Command) envFailure(rc *Context, envErr *env.Error) error {
	if err := rc.Out.WriteLine(Stderr, envErr.Error()); err != nil {
		return err
	}

	return c.exit(rc, 1, envErr)
}
