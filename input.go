package gocli

import (
	"strings"
	"time"
)

// Values holds parsed flag or argument values. Nested groups are maps, so
// lookups accept dotted paths ("debug.level").
type Values map[string]any

// Get returns the value at path.
func (v Values) Get(path string) (any, bool) {
	var cur any = map[string]any(v)
	for _, key := range strings.Split(path, ".") {
		var m map[string]any
		switch t := cur.(type) {
		case map[string]any:
			m = t
		case Values:
			m = t
		default:
			return nil, false
		}
		var ok bool
		if cur, ok = m[key]; !ok {
			return nil, false
		}
	}

	return cur, true
}

// Has reports whether a value is set at path.
func (v Values) Has(path string) bool {
	_, ok := v.Get(path)
	return ok
}

// String returns the string at path, or "".
func (v Values) String(path string) string {
	val, _ := v.Get(path)
	s, _ := val.(string)

	return s
}

// Bool returns the boolean at path, or false.
func (v Values) Bool(path string) bool {
	val, _ := v.Get(path)
	b, _ := val.(bool)

	return b
}

// Float returns the number at path, or 0.
func (v Values) Float(path string) float64 {
	val, _ := v.Get(path)
	f, _ := val.(float64)

	return f
}

// Int returns the number at path truncated to an int, or 0.
func (v Values) Int(path string) int {
	return int(v.Float(path))
}

// Time returns the date at path, or the zero time.
func (v Values) Time(path string) time.Time {
	val, _ := v.Get(path)
	t, _ := val.(time.Time)

	return t
}

// Strings returns the string elements of the list at path.
func (v Values) Strings(path string) []string {
	val, _ := v.Get(path)
	list, _ := val.([]any)
	out := make([]string, 0, len(list))
	for _, elem := range list {
		if s, ok := elem.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// Input is what a command's actions receive.
type Input struct {
	// Flags are the validated flag values, global flags included.
	Flags Values
	// Args are the validated positional values in order.
	Args []any
	// Named are the positional values keyed by argument name.
	Named Values
	// DoubleDash holds every argument following "--".
	DoubleDash []string
	Ctx        *Context
}
