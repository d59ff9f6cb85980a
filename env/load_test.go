package env

import (
	"context"
	"errors"
	"testing"

	"github.com/napalu/gocli/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoader_Load(t *testing.T) {
	resolver := MapResolver{
		"APP_DATABASE_URL": "postgres://db",
		"APP_PORT":         "8080",
		"APP_TAGS":         "a, b,",
	}
	loader := NewLoader(WithResolver(resolver), WithPrefix("app"))

	got, err := loader.Load(context.Background(),
		V("databaseUrl", schema.String()),
		V("port", schema.Number().Int()),
		V("tags", schema.Array(schema.String())),
		V("debug", schema.Boolean().Default(false)),
		V("region", schema.String().Optional()),
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"databaseUrl": "postgres://db",
		"port":        8080.0,
		"tags":        []any{"a", "b"},
		"debug":       false,
	}, got)
}

func TestLoader_VarName(t *testing.T) {
	assert.Equal(t, "DATABASE_URL", NewLoader().VarName("databaseUrl"))
	assert.Equal(t, "MY_APP_LOG_LEVEL", NewLoader(WithPrefix("myApp")).VarName("log-level"))
}

func TestLoader_Named(t *testing.T) {
	loader := NewLoader(WithResolver(MapResolver{"HOME_DIR": "/home/x"}), WithPrefix("app"))

	got, err := loader.Load(context.Background(), V("home", schema.String()).Named("HOME_DIR"))
	require.NoError(t, err)
	assert.Equal(t, "/home/x", got["home"])
}

func TestLoader_Error(t *testing.T) {
	loader := NewLoader(WithResolver(MapResolver{"PORT": "abc"}))

	_, err := loader.Load(context.Background(),
		V("databaseUrl", schema.String()),
		V("port", schema.Number()),
	)

	var envErr *Error
	require.True(t, errors.As(err, &envErr))
	require.Len(t, envErr.Problems, 2)
	assert.True(t, envErr.Problems[0].Missing)
	assert.False(t, envErr.Problems[1].Missing)
	assert.Equal(t, schema.InvalidType, envErr.Problems[1].Issue.Code)
	assert.Equal(t,
		"Environment validation failed with 2 problems:\n"+
			"  DATABASE_URL is required but not set\n"+
			"  PORT is invalid: Expected number, received string",
		err.Error())
}

func TestLoader_ErrorLocalized(t *testing.T) {
	loader := NewLoader(WithResolver(MapResolver{}), WithLanguage(language.German))

	_, err := loader.Load(context.Background(), V("token", schema.String()))
	require.Error(t, err)
	assert.Equal(t,
		"Prüfung der Umgebung mit 1 Problem fehlgeschlagen:\n  TOKEN ist erforderlich, aber nicht gesetzt",
		err.Error())
}

func TestLoader_RefinementInterruptPropagates(t *testing.T) {
	errStop := errors.New("stop")
	s := schema.String().Refine(func(context.Context, any) error {
		return schema.Interrupt(errStop)
	})

	_, err := NewLoader(WithResolver(MapResolver{"X": "1"})).Load(context.Background(), V("x", s))
	assert.ErrorIs(t, err, errStop)
	var envErr *Error
	assert.False(t, errors.As(err, &envErr))
}

func TestDefaultEnvResolver(t *testing.T) {
	t.Setenv("GOCLI_TEST_VALUE", "42")

	r := &DefaultEnvResolver{}
	v, ok := r.Lookup("GOCLI_TEST_VALUE")
	assert.True(t, ok)
	assert.Equal(t, "42", v)
	assert.Equal(t, "42", r.Get("GOCLI_TEST_VALUE"))
	assert.Contains(t, r.Environ(), "GOCLI_TEST_VALUE=42")

	got, err := Load(context.Background(), V("gocliTestValue", schema.Number()))
	require.NoError(t, err)
	assert.Equal(t, 42.0, got["gocliTestValue"])
}

func TestMapResolver(t *testing.T) {
	m := MapResolver{}
	require.NoError(t, m.Set("A", "1"))
	assert.Equal(t, "1", m.Get("A"))
	assert.Equal(t, []string{"A=1"}, m.Environ())
	_, ok := m.Lookup("B")
	assert.False(t, ok)
}
