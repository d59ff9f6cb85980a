package gocli

import (
	"testing"

	"github.com/napalu/gocli/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag_BuildersCopy(t *testing.T) {
	base := String()
	aliased := base.Alias("o").Describe("Output directory").Hidden()

	assert.Empty(t, base.Aliases())
	assert.False(t, base.IsHidden())
	assert.Equal(t, "", base.Description())

	assert.Equal(t, []string{"o"}, aliased.Aliases())
	assert.True(t, aliased.IsHidden())
	assert.Equal(t, "Output directory", aliased.Description())
}

func TestFlag_Description(t *testing.T) {
	f := NewFlag(schema.String().Describe("from schema"))
	assert.Equal(t, "from schema", f.Description())

	calls := 0
	lazy := f.DescribeFunc(func() string {
		calls++
		return "computed"
	})
	assert.Equal(t, 0, calls)
	assert.Equal(t, "computed", lazy.Description())
	assert.Equal(t, 1, calls)

	assert.Equal(t, "details", f.Long("details").LongDescription())
}

func TestFlag_Introspection(t *testing.T) {
	tests := []struct {
		name     string
		flag     *Flag
		kind     schema.Kind
		typ      string
		def      any
		hasValue bool
	}{
		{"string", String(), schema.KindString, "string", nil, false},
		{"optional number", Number().Optional(), schema.KindNumber, "number", nil, false},
		{"defaulted string", String().Default("dist"), schema.KindString, "string", "dist", true},
		{"array", String().Array(), schema.KindString, "string[]", nil, false},
		{"enum", Enum("a", "b"), schema.KindEnum, `"a" | "b"`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, InnerType(tt.flag).Kind())
			assert.Equal(t, tt.typ, TypeString(tt.flag))
			def, ok := DefaultValue(tt.flag)
			assert.Equal(t, tt.hasValue, ok)
			assert.Equal(t, tt.def, def)
		})
	}
}

func TestFlagSet_Merge(t *testing.T) {
	global := Flags(
		F("verbose", Boolean().Optional()),
		F("out", String().Describe("global")),
	).Passthrough()
	local := Flags(
		F("out", String().Describe("local")),
		F("force", Boolean().Optional()),
	)

	merged := global.Merge(local)

	var names []string
	for _, e := range merged.Entries() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"verbose", "out", "force"}, names)

	out, ok := merged.Lookup("out")
	require.True(t, ok)
	assert.Equal(t, "local", out.Flag().Description())
	assert.Equal(t, schema.Strict, merged.Schema().Inner().UnknownKeys())

	assert.Equal(t, 2, global.Len(), "receiver is unchanged")
	assert.Equal(t, 3, (*FlagSet)(nil).Merge(merged).Len())
	assert.Equal(t, 2, global.Merge(nil).Len())

	empty := (*FlagSet)(nil).Merge(nil)
	require.NotNil(t, empty)
	assert.Equal(t, 0, empty.Len())
}

func TestFlagSet_Schema(t *testing.T) {
	fs := Flags(
		F("name", String()),
		Group("debug", Flags(F("level", Number().Default(1.0)))),
	)

	out, err := fs.Schema().Parse(map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "x", "debug": map[string]any{"level": 1.0}}, out)

	_, err = fs.Schema().Parse(map[string]any{"name": "x", "extra": true})
	var verr *schema.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, schema.UnrecognizedKeys, verr.Issues[0].Code)

	out, err = fs.Strip().Schema().Parse(map[string]any{"name": "x", "extra": true})
	require.NoError(t, err)
	assert.NotContains(t, out, "extra")

	out, err = fs.Catchall(schema.Boolean()).Schema().Parse(map[string]any{"name": "x", "extra": true})
	require.NoError(t, err)
	assert.Equal(t, true, out.(map[string]any)["extra"])
}

func TestFlagSet_OptionalGroup(t *testing.T) {
	fs := Flags(Group("tls", Flags(F("cert", String())).Optional()))

	out, err := fs.Schema().Parse(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, out)

	_, err = Flags(Group("tls", Flags(F("cert", String())))).Schema().Parse(map[string]any{})
	assert.Error(t, err, "a required group flag is reported even when the group is absent")
}

func TestGlobalFlags(t *testing.T) {
	fs := GlobalFlags(
		F("verbose", Boolean()),
		Group("log", Flags(F("level", String()))),
	)

	WalkFlags(fs, func(f *Flag, path string) {
		assert.True(t, f.IsGlobal(), path)
	})
}

func TestArgs_VariadicNotLast(t *testing.T) {
	_, err := NewArgs(
		NewArg("files", schema.String()).Variadic(),
		NewArg("target", schema.String()),
	)
	assert.ErrorIs(t, err, ErrVariadicNotLast)

	assert.Panics(t, func() {
		Args(NewArg("files", schema.String()).Variadic(), NewArg("target", schema.String()))
	})
}

func TestValues(t *testing.T) {
	v := Values{
		"name":  "x",
		"debug": map[string]any{"level": 3.0, "on": true},
		"tags":  []any{"a", 1.0, "b"},
	}

	got, ok := v.Get("debug.level")
	assert.True(t, ok)
	assert.Equal(t, 3.0, got)
	assert.Equal(t, 3, v.Int("debug.level"))
	assert.True(t, v.Bool("debug.on"))
	assert.Equal(t, "x", v.String("name"))
	assert.Equal(t, []string{"a", "b"}, v.Strings("tags"))

	assert.False(t, v.Has("debug.missing"))
	assert.False(t, v.Has("name.inner"))
	assert.Equal(t, "", v.String("missing"))
	assert.True(t, v.Time("missing").IsZero())
}
