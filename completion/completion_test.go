package completion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() Command {
	return Command{
		Path: "tool",
		Name: "tool",
		Flags: []Flag{
			{Names: []string{"--verbose", "-v"}, Description: "Verbose output"},
		},
		Children: []Command{
			{
				Path:        "tool build",
				Name:        "build",
				Aliases:     []string{"b"},
				Description: "Build the project",
				Flags: []Flag{
					{Names: []string{"--mode"}, Description: "Build mode", TakesValue: true, Values: []string{"fast", "slow"}},
					{Names: []string{"--out", "-o"}, TakesValue: true},
				},
			},
			{Path: "tool deploy", Name: "deploy", Description: "Deploy it's done"},
		},
	}
}

func TestShells(t *testing.T) {
	assert.Equal(t, []string{"bash", "fish", "powershell", "zsh"}, Shells())
}

func TestGenerate_UnsupportedShell(t *testing.T) {
	_, err := Generate("tcsh", "tool", testTree())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedShell))
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{
			"_tool_completion() {",
			"'tool b') path='tool build' ;;",
			"'tool build:--mode') COMPREPLY=( $(compgen -W 'fast slow' -- \"$cur\") ); return ;;",
			"'tool build:-o') COMPREPLY=(); return ;;",
			"'tool') words='build b deploy --verbose -v' ;;",
			"complete -F _tool_completion tool",
		}},
		{"zsh", []string{
			"#compdef tool",
			"'tool build:--mode') compadd -- 'fast' 'slow'; return ;;",
			"'build:Build the project'",
			"'deploy:Deploy it'\\''s done'",
			"compdef _tool tool",
		}},
		{"fish", []string{
			"function __tool_path",
			"complete -c tool -f",
			"complete -c tool -n 'test (__tool_path) = \\'tool\\'' -a 'build' -d 'Build the project'",
			"-l mode -r -a 'fast slow' -d 'Build mode'",
			"-l verbose -s v -d 'Verbose output'",
		}},
		{"powershell", []string{
			"Register-ArgumentCompleter -Native -CommandName 'tool' -ScriptBlock {",
			"'tool b' { $path = 'tool build' }",
			"'tool build:--mode' { @('fast', 'slow') }",
			",@('deploy', 'Deploy it''s done')",
			",@('-o', '-o')",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			script, err := Generate(tt.shell, "tool", testTree())
			require.NoError(t, err)
			for _, fragment := range tt.want {
				assert.Contains(t, script, fragment)
			}
		})
	}
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "my_tool_2", funcName("my-tool.2"))
}
