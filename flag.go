package gocli

import (
	"slices"

	"github.com/napalu/gocli/schema"
)

// Flag pairs a value schema with the command-line metadata of one flag. Its
// name comes from the key it is registered under in a FlagSet. A Flag is
// immutable: every builder method returns a modified copy.
type Flag struct {
	schema    *schema.Schema
	aliases   []string
	negatable bool
	hidden    bool
	global    bool
	short     Text
	long      Text
}

// NewFlag creates a flag validated by s.
func NewFlag(s *schema.Schema) *Flag {
	return &Flag{schema: s}
}

// String creates a string flag.
func String() *Flag { return NewFlag(schema.String()) }

// Number creates a number flag.
func Number() *Flag { return NewFlag(schema.Number()) }

// Boolean creates a boolean flag.
func Boolean() *Flag { return NewFlag(schema.Boolean()) }

// Date creates a date flag; values are parsed with dateparse.
func Date() *Flag { return NewFlag(schema.Date()) }

// Enum creates a flag accepting one of values.
func Enum(values ...string) *Flag { return NewFlag(schema.Enum(values...)) }

func (f *Flag) clone() *Flag {
	c := *f
	c.aliases = slices.Clone(f.aliases)

	return &c
}

func (f *Flag) withSchema(s *schema.Schema) *Flag {
	c := f.clone()
	c.schema = s

	return c
}

// Alias adds alternative names. Single-letter aliases are used as short flags.
func (f *Flag) Alias(names ...string) *Flag {
	c := f.clone()
	c.aliases = append(c.aliases, names...)

	return c
}

// Negatable accepts --no-<name> to set the flag to false.
func (f *Flag) Negatable() *Flag {
	c := f.clone()
	c.negatable = true

	return c
}

// Hidden omits the flag from help output.
func (f *Flag) Hidden() *Flag {
	c := f.clone()
	c.hidden = true

	return c
}

// Global marks the flag as inherited by every command.
func (f *Flag) Global() *Flag {
	c := f.clone()
	c.global = true

	return c
}

// Describe sets the short description.
func (f *Flag) Describe(text string) *Flag {
	return f.DescribeFunc(StaticText(text))
}

// DescribeFunc sets a short description computed when help is rendered.
func (f *Flag) DescribeFunc(text Text) *Flag {
	c := f.clone()
	c.short = text

	return c
}

// Long sets the long description.
func (f *Flag) Long(text string) *Flag {
	c := f.clone()
	c.long = StaticText(text)

	return c
}

func (f *Flag) Optional() *Flag { return f.withSchema(f.schema.Optional()) }

func (f *Flag) Default(v any) *Flag { return f.withSchema(f.schema.Default(v)) }

// Array accepts the flag repeatedly, collecting every value.
func (f *Flag) Array() *Flag { return f.withSchema(f.schema.Array()) }

// Refine adds a validation step, see schema.Schema.Refine.
func (f *Flag) Refine(fn schema.RefineFunc) *Flag { return f.withSchema(f.schema.Refine(fn)) }

func (f *Flag) Schema() *schema.Schema { return f.schema }

func (f *Flag) Aliases() []string { return slices.Clone(f.aliases) }

func (f *Flag) IsNegatable() bool { return f.negatable }

func (f *Flag) IsHidden() bool { return f.hidden }

func (f *Flag) IsGlobal() bool { return f.global }

// Description returns the short description, falling back to the schema's.
func (f *Flag) Description() string {
	if s := f.short.String(); s != "" {
		return s
	}

	return f.schema.Description()
}

func (f *Flag) LongDescription() string { return f.long.String() }

// InnerType strips optional, default and array wrappers from the flag's schema.
func InnerType(f *Flag) *schema.Schema {
	return schema.Inner(f.schema)
}

// TypeString renders the type the flag accepts ("string", "number[]", ...).
func TypeString(f *Flag) string {
	return schema.TypeString(f.schema)
}

// DefaultValue returns the flag's default, if it has one.
func DefaultValue(f *Flag) (any, bool) {
	return schema.DefaultOf(f.schema)
}
