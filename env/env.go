package env

import "os"

// Resolver defines an interface for environment resolution.
type Resolver interface {
	// Get returns the value of the environment variable named by the key.
	// It returns an empty string if the variable is not present.
	Get(key string) string

	// Lookup returns the value of the environment variable named by the key
	// and whether it is present, like os.LookupEnv.
	Lookup(key string) (string, bool)

	// Set sets the value of the environment variable named by the key.
	// It returns an error, if any.
	Set(key, value string) error

	// Environ returns a slice of strings in the form "key=value" representing the environment,
	// similar to os.Environ.
	Environ() []string
}

// DefaultEnvResolver is the default implementation of the Resolver interface
// that encapsulates environment resolution using the os package.
type DefaultEnvResolver struct{}

// Get returns the value of the environment variable associated with the given key.
func (r *DefaultEnvResolver) Get(key string) string {
	return os.Getenv(key)
}

// Lookup returns the value of the environment variable and whether it is set.
func (r *DefaultEnvResolver) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set sets the value of the environment variable identified by key.
func (r *DefaultEnvResolver) Set(key, value string) error {
	return os.Setenv(key, value)
}

// Environ returns a copy of strings representing the environment, as "key=value" pairs.
func (r *DefaultEnvResolver) Environ() []string {
	return os.Environ()
}

// MapResolver resolves variables from an in-memory map.
type MapResolver map[string]string

func (m MapResolver) Get(key string) string {
	return m[key]
}

func (m MapResolver) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapResolver) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m MapResolver) Environ() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	return out
}
