package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TypeString renders the type a schema accepts: "string", "number[]",
// "\"a\" | \"b\"", "[string, number]" and so on. It is deterministic and has no
// side effects.
func TypeString(s *Schema) string {
	if s == nil {
		return "unknown"
	}

	switch s.kind {
	case KindString, KindNumber, KindBoolean, KindDate, KindAny:
		return s.kind.String()
	case KindLiteral:
		return formatLiteral(s.literal)
	case KindEnum:
		return quoteAll(s.values)
	case KindArray:
		elem := TypeString(s.inner)
		if needsParens(s.inner) {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	case KindTuple:
		parts := make([]string, 0, len(s.items)+1)
		for _, item := range s.items {
			parts = append(parts, TypeString(item))
		}
		if s.rest != nil {
			rest := TypeString(s.rest)
			if needsParens(s.rest) {
				rest = "(" + rest + ")"
			}
			parts = append(parts, "..."+rest+"[]")
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindUnion:
		return joinTypes(s.items, " | ")
	case KindIntersection:
		return joinTypes(s.items, " & ")
	case KindObject:
		return "object"
	case KindRecord:
		return "Record<string, " + TypeString(s.inner) + ">"
	case KindOptional, KindDefault:
		return TypeString(s.inner)
	case KindNullable:
		return TypeString(s.inner) + " | null"
	}

	return "unknown"
}

func joinTypes(items []*Schema, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = TypeString(item)
	}

	return strings.Join(parts, sep)
}

func needsParens(s *Schema) bool {
	for ; s != nil && s.kind.IsWrapper(); s = s.inner {
		if s.kind == KindNullable {
			return true
		}
	}
	if s == nil {
		return false
	}
	switch s.kind {
	case KindUnion, KindIntersection:
		return true
	case KindEnum:
		return len(s.values) > 1
	}

	return false
}

// Unwrap strips optional, default and nullable wrappers.
func Unwrap(s *Schema) *Schema {
	for s != nil && s.kind.IsWrapper() {
		s = s.inner
	}

	return s
}

// Inner strips optional, default, nullable and array wrappers down to the
// base schema.
func Inner(s *Schema) *Schema {
	for s != nil && (s.kind.IsWrapper() || s.kind == KindArray) {
		s = s.inner
	}

	return s
}

// AcceptsNil reports whether an absent value satisfies s.
func AcceptsNil(s *Schema) bool {
	if s == nil {
		return true
	}
	switch s.kind {
	case KindOptional, KindNullable, KindDefault, KindAny:
		return true
	}

	return false
}

// DefaultOf returns the value a default wrapper (possibly under optional or
// nullable wrappers) would substitute for an absent value.
func DefaultOf(s *Schema) (any, bool) {
	for s != nil && s.kind.IsWrapper() {
		if s.kind == KindDefault {
			return s.defaultFn(), true
		}
		s = s.inner
	}

	return nil, false
}

// HasDefault reports whether DefaultOf would find a default.
func HasDefault(s *Schema) bool {
	for s != nil && s.kind.IsWrapper() {
		if s.kind == KindDefault {
			return true
		}
		s = s.inner
	}

	return false
}

// CoerceString converts a raw command-line or environment string to the
// representation s expects (float64 for numbers, bool for booleans). Values
// that do not convert are returned unchanged so validation can report them.
func CoerceString(s *Schema, raw string) any {
	base := Unwrap(s)
	if base == nil {
		return raw
	}

	switch base.kind {
	case KindNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	case KindBoolean:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	case KindLiteral:
		switch base.literal.(type) {
		case float64:
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				return n
			}
		case bool:
			if b, err := strconv.ParseBool(raw); err == nil {
				return b
			}
		}
	case KindUnion:
		for _, option := range base.items {
			if v := CoerceString(option, raw); v != raw {
				if _, err := option.Parse(v); err == nil {
					return v
				}
			}
		}
	}

	return raw
}

// TypeOf names the runtime type of a value the way issues report it.
func TypeOf(v any) string {
	switch t := v.(type) {
	case nil:
		return "undefined"
	case string:
		return "string"
	case bool:
		return "boolean"
	case time.Time:
		return "date"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	case float64:
		if math.IsNaN(t) {
			return "nan"
		}
		return "number"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}

	return fmt.Sprintf("%T", v)
}

func formatLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return "undefined"
	}

	return fmt.Sprint(v)
}
