package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "simple command", input: "build -l", want: []string{"build", "-l"}},
		{name: "quoted arguments", input: `deploy --message "hello world"`, want: []string{"deploy", "--message", "hello world"}},
		{name: "mixed quotes", input: `tag "first quote" 'second quote'`, want: []string{"tag", "first quote", "second quote"}},
		{name: "escaped quotes", input: `echo \"hello\"`, want: []string{"echo", `"hello"`}},
		{name: "multiple spaces", input: "run   a1    a2", want: []string{"run", "a1", "a2"}},
		{name: "empty string", input: "", want: []string{}},
		{name: "only spaces", input: "   ", want: []string{}},
		{name: "double dash kept", input: "run -- --raw", want: []string{"run", "--", "--raw"}},
		{name: "unterminated quote", input: `run "oops`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
