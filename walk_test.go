package gocli

import (
	"testing"

	"github.com/napalu/gocli/schema"
	"github.com/stretchr/testify/assert"
)

func TestWalkFlags(t *testing.T) {
	fs := Flags(
		F("a", Boolean()),
		Group("g", Flags(
			F("x", String()),
			Group("h", Flags(F("deep", Number()))),
			F("y", String()),
		)),
		F("b", Boolean()),
	)

	var paths []string
	WalkFlags(fs, func(_ *Flag, path string) {
		paths = append(paths, path)
	})

	assert.Equal(t, []string{"b", "g.y", "g.h.deep", "g.x", "a"}, paths)
}

func TestWalkFlags_Empty(t *testing.T) {
	called := false
	WalkFlags(Flags(), func(*Flag, string) { called = true })
	assert.False(t, called)
}

type visitedArg struct {
	kind schema.Kind
	pos  ArgPosition
}

func TestWalkArgs(t *testing.T) {
	tuple := Args(
		NewArg("src", schema.String()),
		NewArg("count", schema.Number()),
		NewArg("rest", schema.Boolean()).Variadic(),
	)
	tupleVisits := []visitedArg{
		{schema.KindString, ArgPosition{Index: 0, Name: "src"}},
		{schema.KindNumber, ArgPosition{Index: 1, Name: "count"}},
		{schema.KindBoolean, ArgPosition{Index: 2, Variadic: true, Name: "rest"}},
	}

	tests := []struct {
		name string
		args *Arguments
		want []visitedArg
	}{
		{"tuple", tuple, tupleVisits},
		{"optional tuple", tuple.Optional(), tupleVisits},
		{"defaulted tuple", tuple.Default(func() []any { return []any{"a", 1.0} }), tupleVisits},
		{
			"array",
			VariadicArgs(NewArg("files", schema.String())),
			[]visitedArg{{schema.KindString, ArgPosition{Index: 0, Variadic: true, Name: "files"}}},
		},
		{
			"optional array",
			VariadicArgs(NewArg("files", schema.Date())).Optional(),
			[]visitedArg{{schema.KindDate, ArgPosition{Index: 0, Variadic: true, Name: "files"}}},
		},
		{"none", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []visitedArg
			WalkArgs(tt.args, func(s *schema.Schema, pos ArgPosition) {
				got = append(got, visitedArg{kind: s.Kind(), pos: pos})
			})
			assert.Equal(t, tt.want, got)
		})
	}
}
