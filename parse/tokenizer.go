package parse

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// AliasMode controls how values set through an alias are recorded.
type AliasMode int

const (
	// AliasSync writes every value under the used name and all of its aliases.
	AliasSync AliasMode = iota
	// AliasCanonical writes values only under the canonical (declared) name.
	AliasCanonical
)

// Options classify flag names for the tokenizer. A name is classified as a
// kind when the name itself or any of its aliases is in the kind's set.
type Options struct {
	Bools     map[string]bool
	Numbers   map[string]bool
	Strings   map[string]bool
	Collect   map[string]bool
	Negatable map[string]bool
	// Aliases maps a canonical name to its alternative names.
	Aliases   map[string][]string
	AliasMode AliasMode
	// DoubleDash stores arguments after "--" in Result.DoubleDash instead of
	// appending them to the positionals.
	DoubleDash bool
}

// Result is the outcome of tokenizing an argument list.
type Result struct {
	Positional []string
	DoubleDash []string
	// Values holds flag values keyed by name. Dotted names nest into maps.
	Values map[string]any
}

// Lookup finds a value by its dotted path.
func (r *Result) Lookup(path string) (any, bool) {
	var cur any = r.Values
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}

	return cur, true
}

var (
	shortNumberTail = regexp.MustCompile(`^-?\d+(\.\d*)?(e-?\d+)?$`)
	decimalNumber   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

type tokenizer struct {
	opts      Options
	related   map[string][]string
	canonical map[string]string
	values    map[string]any
}

func newTokenizer(opts Options) *tokenizer {
	t := &tokenizer{
		opts:      opts,
		related:   make(map[string][]string),
		canonical: make(map[string]string),
		values:    make(map[string]any),
	}
	for name, aliases := range opts.Aliases {
		t.related[name] = append(t.related[name], aliases...)
		for _, alias := range aliases {
			t.canonical[alias] = name
			others := []string{name}
			for _, other := range aliases {
				if other != alias {
					others = append(others, other)
				}
			}
			t.related[alias] = append(t.related[alias], others...)
		}
	}

	return t
}

// Parse tokenizes argv into flag values and positionals. It never fails:
// unknown flags are recorded like any other and left for validation.
func Parse(argv []string, opts Options) *Result {
	t := newTokenizer(opts)
	res := &Result{
		Positional: []string{},
		DoubleDash: []string{},
		Values:     t.values,
	}

	args := argv
	var afterDash []string
	if i := slices.Index(argv, "--"); i >= 0 {
		args = argv[:i]
		afterDash = slices.Clone(argv[i+1:])
	}

	state := NewState(args)
	for state.Advance() {
		arg := state.CurrentArg()
		switch {
		case strings.HasPrefix(arg, "--") && strings.IndexByte(arg[2:], '=') > 0:
			key, value, _ := strings.Cut(arg[2:], "=")
			if t.is(t.opts.Bools, key) {
				t.set(key, value != "false", true)
			} else {
				t.set(key, value, true)
			}
		case strings.HasPrefix(arg, "--no-") && len(arg) > 5 && t.is(t.opts.Negatable, arg[5:]):
			t.set(arg[5:], false, false)
		case strings.HasPrefix(arg, "--") && len(arg) > 2:
			t.longValue(state, arg[2:])
		case strings.HasPrefix(arg, "-") && len(arg) > 1 && arg[1] != '-':
			t.shortBundle(state, []rune(arg[1:]))
		default:
			res.Positional = append(res.Positional, arg)
		}
	}

	t.defaultCollected()

	if opts.DoubleDash {
		if afterDash != nil {
			res.DoubleDash = afterDash
		}
	} else {
		res.Positional = append(res.Positional, afterDash...)
	}

	return res
}

func (t *tokenizer) longValue(state State, key string) {
	if state.HasNext() {
		next := state.Peek()
		if !looksLikeFlag(next) && !t.is(t.opts.Bools, key) {
			t.set(key, next, true)
			state.Skip()
			return
		}
		if next == "true" || next == "false" {
			t.set(key, next == "true", true)
			state.Skip()
			return
		}
	}

	t.set(key, t.noValue(key), true)
}

func (t *tokenizer) shortBundle(state State, letters []rune) {
	last := len(letters) - 1
	for j := 0; j < last; j++ {
		letter := string(letters[j])
		tail := string(letters[j+1:])

		if tail == "-" {
			t.set(letter, tail, true)
			continue
		}
		if unicode.IsLetter(letters[j]) && strings.HasPrefix(tail, "=") {
			t.set(letter, tail[1:], true)
			return
		}
		if unicode.IsLetter(letters[j]) && shortNumberTail.MatchString(tail) {
			t.set(letter, tail, true)
			return
		}
		if !isWordRune(letters[j+1]) {
			t.set(letter, tail, true)
			return
		}

		t.set(letter, t.noValue(letter), true)
	}

	key := string(letters[last])
	if key == "-" {
		return
	}
	if state.HasNext() {
		next := state.Peek()
		if !looksLikeFlag(next) && !t.is(t.opts.Bools, key) {
			t.set(key, next, true)
			state.Skip()
			return
		}
		if next == "true" || next == "false" {
			t.set(key, next == "true", true)
			state.Skip()
			return
		}
	}

	t.set(key, t.noValue(key), true)
}

// noValue is recorded for a flag given without a value: value flags get an
// empty string so validation can report them, everything else is switched on.
func (t *tokenizer) noValue(key string) any {
	if t.is(t.opts.Strings, key) || t.is(t.opts.Numbers, key) {
		return ""
	}

	return true
}

func (t *tokenizer) is(set map[string]bool, key string) bool {
	if set[key] {
		return true
	}
	for _, alias := range t.related[key] {
		if set[alias] {
			return true
		}
	}

	return false
}

func (t *tokenizer) set(key string, value any, collect bool) {
	if s, ok := value.(string); ok && t.is(t.opts.Numbers, key) && decimalNumber.MatchString(s) {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			value = n
		}
	}

	if t.opts.AliasMode == AliasCanonical {
		if name, ok := t.canonical[key]; ok {
			key = name
		}
		t.setKey(key, value, collect)
		return
	}

	t.setKey(key, value, collect)
	for _, alias := range t.related[key] {
		t.setKey(alias, value, collect)
	}
}

func (t *tokenizer) setKey(name string, value any, collect bool) {
	keys := strings.Split(name, ".")
	m := t.values
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[k] = next
		}
		m = next
	}

	key := keys[len(keys)-1]
	if !collect || !t.is(t.opts.Collect, name) {
		m[key] = value
		return
	}

	switch existing := m[key].(type) {
	case nil:
		m[key] = []any{value}
	case []any:
		m[key] = append(existing, value)
	default:
		m[key] = []any{existing, value}
	}
}

func (t *tokenizer) defaultCollected() {
	names := make([]string, 0, len(t.opts.Collect))
	for name := range t.opts.Collect {
		names = append(names, name)
	}
	slices.Sort(names)

	res := &Result{Values: t.values}
	for _, name := range names {
		targets := []string{name}
		if t.opts.AliasMode == AliasCanonical {
			if canonical, ok := t.canonical[name]; ok {
				targets = []string{canonical}
			}
		} else {
			targets = append(targets, t.related[name]...)
		}
		for _, target := range targets {
			if _, found := res.Lookup(target); !found {
				t.setKey(target, []any{}, false)
			}
		}
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// looksLikeFlag matches "-x" and "--x" but not "-", "--" or "---x".
func looksLikeFlag(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	if s[1] != '-' {
		return true
	}

	return len(s) > 2 && s[2] != '-'
}
