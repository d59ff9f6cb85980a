package gocli

import (
	"fmt"

	"github.com/napalu/gocli/schema"
)

// Arg describes one positional argument.
type Arg struct {
	name        string
	schema      *schema.Schema
	description string
	variadic    bool
}

// NewArg creates a positional argument validated by s.
func NewArg(name string, s *schema.Schema) Arg {
	return Arg{name: name, schema: s}
}

// Describe sets the help text of the argument.
func (a Arg) Describe(text string) Arg {
	a.description = text
	return a
}

// Variadic makes the argument absorb every remaining positional value. Only
// the last argument may be variadic.
func (a Arg) Variadic() Arg {
	a.variadic = true
	return a
}

func (a Arg) Name() string { return a.name }

func (a Arg) Schema() *schema.Schema { return a.schema }

func (a Arg) Description() string {
	if a.description != "" {
		return a.description
	}

	return a.schema.Description()
}

func (a Arg) IsVariadic() bool { return a.variadic }

// Arguments is the positional argument list of a command: either a tuple of
// arguments, optionally ending in a variadic one, or a single variadic
// argument taking every positional value.
type Arguments struct {
	items     []Arg
	array     bool
	optional  bool
	defaultFn func() []any
}

// NewArgs builds a tuple of arguments. It fails with ErrVariadicNotLast when a
// variadic argument is followed by another argument.
func NewArgs(items ...Arg) (*Arguments, error) {
	for i, item := range items {
		if item.variadic && i != len(items)-1 {
			return nil, fmt.Errorf("%w: %q", ErrVariadicNotLast, item.name)
		}
	}

	return &Arguments{items: items}, nil
}

// Args is NewArgs for static declarations: it panics on an invalid list.
func Args(items ...Arg) *Arguments {
	a, err := NewArgs(items...)
	if err != nil {
		panic(err)
	}

	return a
}

// VariadicArgs accepts any number of positional values, each validated by item.
func VariadicArgs(item Arg) *Arguments {
	item.variadic = true
	return &Arguments{items: []Arg{item}, array: true}
}

func (a *Arguments) clone() *Arguments {
	c := *a
	return &c
}

// Optional accepts a command line without positional values.
func (a *Arguments) Optional() *Arguments {
	c := a.clone()
	c.optional = true

	return c
}

// Default supplies the positional values used when none are given.
func (a *Arguments) Default(fn func() []any) *Arguments {
	c := a.clone()
	c.defaultFn = fn

	return c
}

// Items returns the declared arguments.
func (a *Arguments) Items() []Arg {
	return append([]Arg(nil), a.items...)
}

func (a *Arguments) variadicItem() (Arg, bool) {
	if len(a.items) == 0 {
		return Arg{}, false
	}
	last := a.items[len(a.items)-1]

	return last, last.variadic
}

// Schema builds the schema validating the positional value list.
func (a *Arguments) Schema() *schema.Schema {
	var s *schema.Schema
	if a.array {
		s = schema.Array(a.items[0].schema)
	} else {
		fixed := a.items
		rest, hasRest := a.variadicItem()
		if hasRest {
			fixed = a.items[:len(a.items)-1]
		}
		schemas := make([]*schema.Schema, len(fixed))
		for i, item := range fixed {
			schemas[i] = item.schema
		}
		s = schema.Tuple(schemas...)
		if hasRest {
			s = s.Rest(rest.schema)
		}
	}

	if a.optional {
		s = s.Optional()
	}
	if a.defaultFn != nil {
		fn := a.defaultFn
		s = s.DefaultFunc(func() any { return fn() })
	}

	return s
}

// at returns the argument receiving the positional value at index i.
func (a *Arguments) at(i int) (Arg, bool) {
	if a.array {
		return a.items[0], true
	}
	rest, hasRest := a.variadicItem()
	fixed := len(a.items)
	if hasRest {
		fixed--
	}
	if i < fixed {
		return a.items[i], true
	}
	if hasRest {
		return rest, true
	}

	return Arg{}, false
}

// coerce converts raw positional strings to the types their arguments expect.
func (a *Arguments) coerce(raw []string) []any {
	out := make([]any, len(raw))
	for i, s := range raw {
		if arg, ok := a.at(i); ok {
			out[i] = schema.CoerceString(arg.schema, s)
		} else {
			out[i] = s
		}
	}

	return out
}

// named keys parsed values by argument name; a variadic argument collects
// its values into a slice.
func (a *Arguments) named(values []any) Values {
	out := make(Values)
	for i, v := range values {
		arg, ok := a.at(i)
		if !ok {
			continue
		}
		if arg.variadic {
			list, _ := out[arg.name].([]any)
			out[arg.name] = append(list, v)
			continue
		}
		if v != nil {
			out[arg.name] = v
		}
	}
	if arg, ok := a.variadicItem(); ok {
		if _, set := out[arg.name]; !set {
			out[arg.name] = []any{}
		}
	}

	return out
}
