package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		schema *Schema
		want   string
	}{
		{String(), "string"},
		{Number().Optional(), "number"},
		{Boolean().Default(false), "boolean"},
		{Date(), "date"},
		{Array(String()), "string[]"},
		{Array(Union(String(), Number())), "(string | number)[]"},
		{Enum("json", "yaml"), `"json" | "yaml"`},
		{Array(Enum("a", "b")), `("a" | "b")[]`},
		{Array(Enum("a")), `"a"[]`},
		{Literal("on"), `"on"`},
		{Literal(3), "3"},
		{Tuple(String(), Number()), "[string, number]"},
		{Tuple(String()).Rest(Number()), "[string, ...number[]]"},
		{Intersection(String(), Number()), "string & number"},
		{String().Nullable(), "string | null"},
		{Array(String().Nullable()), "(string | null)[]"},
		{Record(Number()), "Record<string, number>"},
		{Object(), "object"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeString(tt.schema))
		})
	}
}

func TestInnerAndUnwrap(t *testing.T) {
	s := Array(Number().Int()).Optional().Default([]any{})

	assert.Equal(t, KindArray, Unwrap(s).Kind())
	assert.Equal(t, KindNumber, Inner(s).Kind())
	assert.Equal(t, KindString, Inner(String()).Kind())
}

func TestDefaultOf(t *testing.T) {
	v, ok := DefaultOf(Number().Default(3).Optional())
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = DefaultOf(Number().Optional())
	assert.False(t, ok)
	assert.True(t, HasDefault(String().Default("x")))
	assert.False(t, HasDefault(String()))
}

func TestAcceptsNil(t *testing.T) {
	assert.True(t, AcceptsNil(String().Optional()))
	assert.True(t, AcceptsNil(String().Default("a")))
	assert.True(t, AcceptsNil(Any()))
	assert.False(t, AcceptsNil(String()))
	assert.False(t, AcceptsNil(Array(String())))
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, 8080.0, CoerceString(Number().Optional(), "8080"))
	assert.Equal(t, "80a", CoerceString(Number(), "80a"))
	assert.Equal(t, true, CoerceString(Boolean(), "true"))
	assert.Equal(t, "yes", CoerceString(Boolean(), "yes"))
	assert.Equal(t, 2.0, CoerceString(Literal(2), "2"))
	assert.Equal(t, 5.0, CoerceString(Union(Enum("auto"), Number()), "5"))
	assert.Equal(t, "auto", CoerceString(Union(Enum("auto"), Number()), "auto"))
	assert.Equal(t, "2024-01-01", CoerceString(Date(), "2024-01-01"))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "undefined", TypeOf(nil))
	assert.Equal(t, "number", TypeOf(3))
	assert.Equal(t, "number", TypeOf(3.5))
	assert.Equal(t, "array", TypeOf([]any{}))
	assert.Equal(t, "object", TypeOf(map[string]any{}))
	assert.Equal(t, "boolean", TypeOf(false))
}
