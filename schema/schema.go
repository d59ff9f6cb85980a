// Package schema is the value-schema abstraction gocli validates flags,
// positional arguments and environment variables with.
//
// A Schema is an immutable tagged variant (see Kind). Builder methods never
// modify the receiver; they return a new Schema:
//
//	port := schema.Number().Int().Min(1).Max(65535).Default(8080)
//	mode := schema.Enum("fast", "safe").Optional()
//	opts := schema.Object(
//		schema.Field{Name: "port", Schema: port},
//		schema.Field{Name: "mode", Schema: mode},
//	).Strict()
package schema

import (
	"context"
	"regexp"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RefineFunc performs additional validation after a value satisfied the base
// schema. Returning an error records a custom issue; returning the result of
// Interrupt aborts validation altogether.
type RefineFunc func(ctx context.Context, value any) error

// Field is a named member of an object schema.
type Field struct {
	Name   string
	Schema *Schema
}

type checkKind int

const (
	checkMin checkKind = iota
	checkMax
	checkInt
	checkRegex
)

type check struct {
	kind    checkKind
	value   float64
	pattern *regexp.Regexp
}

// Schema describes the accepted shape of a value.
type Schema struct {
	kind        Kind
	inner       *Schema // optional, default, nullable: wrapped schema; array: element; record: value
	items       []*Schema
	rest        *Schema
	shape       *orderedmap.OrderedMap[string, *Schema]
	unknownKeys UnknownKeys
	catchall    *Schema
	values      []string
	literal     any
	defaultFn   func() any
	checks      []check
	refinements []RefineFunc
	description string
}

func newSchema(kind Kind) *Schema {
	return &Schema{kind: kind}
}

func (s *Schema) clone() *Schema {
	c := *s
	c.checks = slices.Clone(s.checks)
	c.refinements = slices.Clone(s.refinements)
	c.items = slices.Clone(s.items)
	c.values = slices.Clone(s.values)
	if s.shape != nil {
		c.shape = copyShape(s.shape)
	}

	return &c
}

func copyShape(src *orderedmap.OrderedMap[string, *Schema]) *orderedmap.OrderedMap[string, *Schema] {
	dst := orderedmap.New[string, *Schema]()
	for p := src.Oldest(); p != nil; p = p.Next() {
		dst.Set(p.Key, p.Value)
	}

	return dst
}

// String accepts string values.
func String() *Schema { return newSchema(KindString) }

// Number accepts numeric values; results are always float64.
func Number() *Schema { return newSchema(KindNumber) }

// Boolean accepts bool values.
func Boolean() *Schema { return newSchema(KindBoolean) }

// Date accepts time.Time values and strings in any layout dateparse understands.
func Date() *Schema { return newSchema(KindDate) }

// Any accepts every value, including nil.
func Any() *Schema { return newSchema(KindAny) }

// Literal accepts exactly v. Integer literals are compared as float64.
func Literal(v any) *Schema {
	s := newSchema(KindLiteral)
	s.literal = normalizeNumber(v)

	return s
}

// Enum accepts one of the given strings.
func Enum(values ...string) *Schema {
	s := newSchema(KindEnum)
	s.values = slices.Clone(values)

	return s
}

// Array accepts a list whose elements all satisfy elem.
func Array(elem *Schema) *Schema {
	s := newSchema(KindArray)
	s.inner = elem

	return s
}

// Tuple accepts a fixed-length list; element i must satisfy items[i].
func Tuple(items ...*Schema) *Schema {
	s := newSchema(KindTuple)
	s.items = slices.Clone(items)

	return s
}

// Union accepts a value satisfying any option; the first matching option wins.
func Union(options ...*Schema) *Schema {
	s := newSchema(KindUnion)
	s.items = slices.Clone(options)

	return s
}

// Intersection accepts a value satisfying both a and b.
func Intersection(a, b *Schema) *Schema {
	s := newSchema(KindIntersection)
	s.items = []*Schema{a, b}

	return s
}

// Object accepts a map[string]any with the given fields. Unknown keys are
// rejected unless the policy is changed with Strip or Passthrough.
func Object(fields ...Field) *Schema {
	s := newSchema(KindObject)
	s.shape = orderedmap.New[string, *Schema]()
	for _, f := range fields {
		s.shape.Set(f.Name, f.Schema)
	}

	return s
}

// Record accepts a map[string]any whose values all satisfy value.
func Record(value *Schema) *Schema {
	s := newSchema(KindRecord)
	s.inner = value

	return s
}

// Optional allows the value to be absent (nil).
func (s *Schema) Optional() *Schema {
	o := newSchema(KindOptional)
	o.inner = s
	o.description = s.description

	return o
}

// Nullable allows nil in addition to s.
func (s *Schema) Nullable() *Schema {
	o := newSchema(KindNullable)
	o.inner = s
	o.description = s.description

	return o
}

// Default substitutes v when the value is absent.
func (s *Schema) Default(v any) *Schema {
	return s.DefaultFunc(func() any { return v })
}

// DefaultFunc substitutes the result of fn when the value is absent.
func (s *Schema) DefaultFunc(fn func() any) *Schema {
	o := newSchema(KindDefault)
	o.inner = s
	o.defaultFn = fn
	o.description = s.description

	return o
}

// Array wraps s in an array schema.
func (s *Schema) Array() *Schema {
	return Array(s)
}

// Rest sets the schema of the variadic tail of a tuple.
func (s *Schema) Rest(rest *Schema) *Schema {
	c := s.clone()
	c.rest = rest

	return c
}

// Min sets a lower bound: the value for numbers, the length for strings and arrays.
func (s *Schema) Min(n float64) *Schema {
	c := s.clone()
	c.checks = append(c.checks, check{kind: checkMin, value: n})

	return c
}

// Max sets an upper bound: the value for numbers, the length for strings and arrays.
func (s *Schema) Max(n float64) *Schema {
	c := s.clone()
	c.checks = append(c.checks, check{kind: checkMax, value: n})

	return c
}

// Int requires a number to be integral.
func (s *Schema) Int() *Schema {
	c := s.clone()
	c.checks = append(c.checks, check{kind: checkInt})

	return c
}

// Regex requires a string to match re.
func (s *Schema) Regex(re *regexp.Regexp) *Schema {
	c := s.clone()
	c.checks = append(c.checks, check{kind: checkRegex, pattern: re})

	return c
}

// Refine appends a refinement run after the base schema accepted the value.
func (s *Schema) Refine(fn RefineFunc) *Schema {
	c := s.clone()
	c.refinements = append(c.refinements, fn)

	return c
}

// Describe attaches a human readable description.
func (s *Schema) Describe(text string) *Schema {
	c := s.clone()
	c.description = text

	return c
}

// Strict rejects keys not declared in the object shape.
func (s *Schema) Strict() *Schema { return s.withUnknownKeys(Strict) }

// Strip drops keys not declared in the object shape.
func (s *Schema) Strip() *Schema { return s.withUnknownKeys(Strip) }

// Passthrough keeps keys not declared in the object shape.
func (s *Schema) Passthrough() *Schema { return s.withUnknownKeys(Passthrough) }

func (s *Schema) withUnknownKeys(u UnknownKeys) *Schema {
	c := s.clone()
	c.unknownKeys = u

	return c
}

// Catchall validates undeclared object keys with rest instead of applying the
// unknown-key policy.
func (s *Schema) Catchall(rest *Schema) *Schema {
	c := s.clone()
	c.catchall = rest

	return c
}

// Kind returns the variant of the schema.
func (s *Schema) Kind() Kind { return s.kind }

// Inner returns the wrapped schema of optional, default and nullable schemas,
// the element of array schemas and the value schema of records.
func (s *Schema) Inner() *Schema { return s.inner }

// Items returns tuple items, union options or intersection sides.
func (s *Schema) Items() []*Schema { return slices.Clone(s.items) }

// RestItem returns the variadic tail of a tuple, or nil.
func (s *Schema) RestItem() *Schema { return s.rest }

// Values returns the accepted values of an enum.
func (s *Schema) Values() []string { return slices.Clone(s.values) }

// LiteralValue returns the value accepted by a literal schema.
func (s *Schema) LiteralValue() any { return s.literal }

// Description returns the description attached with Describe.
func (s *Schema) Description() string { return s.description }

// UnknownKeys returns the unknown-key policy of an object schema.
func (s *Schema) UnknownKeys() UnknownKeys { return s.unknownKeys }

// CatchallSchema returns the catchall schema of an object, or nil.
func (s *Schema) CatchallSchema() *Schema { return s.catchall }

// Fields returns the fields of an object schema in declaration order.
func (s *Schema) Fields() []Field {
	if s.shape == nil {
		return nil
	}
	fields := make([]Field, 0, s.shape.Len())
	for p := s.shape.Oldest(); p != nil; p = p.Next() {
		fields = append(fields, Field{Name: p.Key, Schema: p.Value})
	}

	return fields
}

// Field returns the named field of an object schema.
func (s *Schema) Field(name string) (*Schema, bool) {
	if s.shape == nil {
		return nil, false
	}

	return s.shape.Get(name)
}

// Bounds returns the Min and Max checks attached to the schema.
func (s *Schema) Bounds() (min, max float64, hasMin, hasMax bool) {
	for _, c := range s.checks {
		switch c.kind {
		case checkMin:
			min, hasMin = c.value, true
		case checkMax:
			max, hasMax = c.value, true
		}
	}

	return
}

// Merge returns an object schema with the fields of both objects; fields of
// other replace same-named fields of s, and the unknown-key policy and
// catchall are taken from other.
func (s *Schema) Merge(other *Schema) *Schema {
	c := s.clone()
	if c.shape == nil {
		c.shape = orderedmap.New[string, *Schema]()
	}
	if other.shape != nil {
		for p := other.shape.Oldest(); p != nil; p = p.Next() {
			c.shape.Set(p.Key, p.Value)
		}
	}
	c.unknownKeys = other.unknownKeys
	c.catchall = other.catchall

	return c
}
