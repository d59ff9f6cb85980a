package parse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		argv           []string
		opts           Options
		wantValues     map[string]any
		wantPositional []string
		wantDoubleDash []string
	}{
		{
			name: "mixed flags and bundles",
			argv: []string{"build", "--bundle", "-rf", "--a", "value", "--b=value", "--c", "1"},
			opts: Options{
				Bools:     set("debug", "r"),
				Numbers:   set("port"),
				Collect:   set("port"),
				Negatable: set("debug"),
				Aliases:   map[string][]string{"debug": {"d"}},
			},
			wantValues: map[string]any{
				"bundle": true,
				"r":      true,
				"f":      true,
				"a":      "value",
				"b":      "value",
				"c":      "1",
				"port":   []any{},
			},
			wantPositional: []string{"build"},
		},
		{
			name: "dotted keys nest",
			argv: []string{"--debug.foo", "123", "--debug.bar", "123"},
			opts: Options{Numbers: set("debug.foo")},
			wantValues: map[string]any{
				"debug": map[string]any{"foo": 123.0, "bar": "123"},
			},
		},
		{
			name:           "boolean does not consume a value",
			argv:           []string{"--verbose", "file.txt"},
			opts:           Options{Bools: set("verbose")},
			wantValues:     map[string]any{"verbose": true},
			wantPositional: []string{"file.txt"},
		},
		{
			name:       "boolean takes literal true or false",
			argv:       []string{"--verbose", "false", "-q", "true"},
			opts:       Options{Bools: set("verbose", "q")},
			wantValues: map[string]any{"verbose": false, "q": true},
		},
		{
			name:       "boolean assignment",
			argv:       []string{"--verbose=false", "--color=yes"},
			opts:       Options{Bools: set("verbose", "color")},
			wantValues: map[string]any{"verbose": false, "color": true},
		},
		{
			name:       "value flag without value",
			argv:       []string{"--name", "--port"},
			opts:       Options{Strings: set("name"), Numbers: set("port")},
			wantValues: map[string]any{"name": "", "port": ""},
		},
		{
			name:       "number assignment",
			argv:       []string{"--port=8080", "--ratio=abc"},
			opts:       Options{Numbers: set("port", "ratio")},
			wantValues: map[string]any{"port": 8080.0, "ratio": "abc"},
		},
		{
			name:       "negation",
			argv:       []string{"--no-color"},
			opts:       Options{Bools: set("color"), Negatable: set("color")},
			wantValues: map[string]any{"color": false},
		},
		{
			name:       "negation overrides earlier occurrences",
			argv:       []string{"--color", "-c", "--no-color"},
			opts:       Options{Bools: set("color"), Negatable: set("color"), Aliases: map[string][]string{"color": {"c"}}, AliasMode: AliasCanonical},
			wantValues: map[string]any{"color": false},
		},
		{
			name:       "negation overrides earlier value",
			argv:       []string{"--color=true", "--no-color"},
			opts:       Options{Bools: set("color"), Negatable: set("color")},
			wantValues: map[string]any{"color": false},
		},
		{
			name:       "negation requires negatable",
			argv:       []string{"--no-color"},
			opts:       Options{Bools: set("color")},
			wantValues: map[string]any{"no-color": true},
		},
		{
			name:       "negation is not collected",
			argv:       []string{"--no-tag"},
			opts:       Options{Collect: set("tag"), Negatable: set("tag")},
			wantValues: map[string]any{"tag": false},
		},
		{
			name:       "collect",
			argv:       []string{"--tag", "a", "-t", "b", "--tag=c"},
			opts:       Options{Collect: set("tag"), Aliases: map[string][]string{"tag": {"t"}}, AliasMode: AliasCanonical},
			wantValues: map[string]any{"tag": []any{"a", "b", "c"}},
		},
		{
			name:       "collect numbers",
			argv:       []string{"--n", "1", "--n", "2"},
			opts:       Options{Collect: set("n"), Numbers: set("n")},
			wantValues: map[string]any{"n": []any{1.0, 2.0}},
		},
		{
			name:       "short value attached with equals",
			argv:       []string{"-o=out.txt"},
			opts:       Options{Strings: set("o")},
			wantValues: map[string]any{"o": "out.txt"},
		},
		{
			name:       "short numeric tail",
			argv:       []string{"-n5", "-x-3.5"},
			wantValues: map[string]any{"n": "5", "x": "-3.5"},
		},
		{
			name:       "short non word tail",
			argv:       []string{"-p/tmp/x"},
			wantValues: map[string]any{"p": "/tmp/x"},
		},
		{
			name:       "short dash tail",
			argv:       []string{"-f-"},
			wantValues: map[string]any{"f": "-"},
		},
		{
			name:       "short consumes next",
			argv:       []string{"-o", "out.txt", "-v", "-"},
			wantValues: map[string]any{"o": "out.txt", "v": "-"},
		},
		{
			name:       "long and short consume a lone dash alike",
			argv:       []string{"--name", "-", "-n", "-"},
			wantValues: map[string]any{"name": "-", "n": "-"},
		},
		{
			name:       "long and short consume an empty value alike",
			argv:       []string{"--name", "", "-n", ""},
			opts:       Options{Strings: set("name", "n")},
			wantValues: map[string]any{"name": "", "n": ""},
		},
		{
			name:           "long and short stop at the next flag alike",
			argv:           []string{"--name", "-x", "-n", "--y", "rest"},
			wantValues:     map[string]any{"name": true, "x": true, "n": true, "y": "rest"},
			wantPositional: []string{},
		},
		{
			name:       "short bundle declared value letters",
			argv:       []string{"-ab"},
			opts:       Options{Strings: set("a")},
			wantValues: map[string]any{"a": "", "b": true},
		},
		{
			name:           "double dash stops parsing",
			argv:           []string{"run", "--", "--raw", "-x"},
			opts:           Options{DoubleDash: true},
			wantValues:     map[string]any{},
			wantPositional: []string{"run"},
			wantDoubleDash: []string{"--raw", "-x"},
		},
		{
			name:           "double dash appended to positionals",
			argv:           []string{"run", "--", "--raw"},
			wantValues:     map[string]any{},
			wantPositional: []string{"run", "--raw"},
		},
		{
			name:           "single dash is positional",
			argv:           []string{"-"},
			wantValues:     map[string]any{},
			wantPositional: []string{"-"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.argv, tt.opts)

			if diff := cmp.Diff(tt.wantValues, res.Values); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			wantPositional := tt.wantPositional
			if wantPositional == nil {
				wantPositional = []string{}
			}
			assert.Equal(t, wantPositional, res.Positional)
			wantDoubleDash := tt.wantDoubleDash
			if wantDoubleDash == nil {
				wantDoubleDash = []string{}
			}
			assert.Equal(t, wantDoubleDash, res.DoubleDash)
		})
	}
}

func TestParse_AliasSync(t *testing.T) {
	opts := Options{
		Bools:   set("debug"),
		Aliases: map[string][]string{"debug": {"d", "dbg"}},
	}

	for _, argv := range [][]string{{"--debug"}, {"-d"}, {"--dbg"}} {
		res := Parse(argv, opts)
		assert.Equal(t, map[string]any{"debug": true, "d": true, "dbg": true}, res.Values, "argv %v", argv)
	}
}

func TestParse_AliasCanonical(t *testing.T) {
	opts := Options{
		Strings:   set("output"),
		Aliases:   map[string][]string{"output": {"o"}},
		AliasMode: AliasCanonical,
	}

	res := Parse([]string{"-o", "dist"}, opts)
	assert.Equal(t, map[string]any{"output": "dist"}, res.Values)
}

func TestParse_AliasSymmetry(t *testing.T) {
	for _, mode := range []AliasMode{AliasSync, AliasCanonical} {
		opts := Options{
			Strings:   set("output"),
			Collect:   set("tag"),
			Aliases:   map[string][]string{"output": {"o"}, "tag": {"t"}},
			AliasMode: mode,
		}

		long := Parse([]string{"--output", "dist", "--tag", "a"}, opts)
		short := Parse([]string{"-o", "dist", "-t", "a"}, opts)
		mixed := Parse([]string{"--o", "dist", "--t=a"}, opts)

		if diff := cmp.Diff(long.Values, short.Values); diff != "" {
			t.Errorf("mode %d: short form differs (-long +short):\n%s", mode, diff)
		}
		if diff := cmp.Diff(long.Values, mixed.Values); diff != "" {
			t.Errorf("mode %d: long alias differs (-long +alias):\n%s", mode, diff)
		}
		assert.Equal(t, "dist", long.Values["output"])
	}
}

func TestParse_AliasClassification(t *testing.T) {
	// the boolean classification reaches the alias
	opts := Options{
		Bools:   set("verbose"),
		Aliases: map[string][]string{"verbose": {"v"}},
	}

	res := Parse([]string{"-v", "file"}, opts)
	assert.Equal(t, true, res.Values["verbose"])
	assert.Equal(t, []string{"file"}, res.Positional)
}

func TestResult_Lookup(t *testing.T) {
	res := Parse([]string{"--a.b.c", "x"}, Options{})

	v, ok := res.Lookup("a.b.c")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = res.Lookup("a.x")
	assert.False(t, ok)
	_, ok = res.Lookup("a.b.c.d")
	assert.False(t, ok)
}

func TestState(t *testing.T) {
	s := NewState([]string{"a", ""})

	assert.Equal(t, -1, s.Pos())
	assert.Equal(t, "", s.CurrentArg())
	assert.True(t, s.Advance())
	assert.Equal(t, "a", s.CurrentArg())
	assert.True(t, s.HasNext())
	assert.Equal(t, []string{""}, s.Rest())
	assert.Equal(t, "", s.Peek())
	s.Skip()
	assert.False(t, s.HasNext())
	assert.False(t, s.Advance())
	assert.Empty(t, s.Rest())
	assert.Equal(t, 2, s.Len())
}
