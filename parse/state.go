package parse

// State is a cursor over the argument list being tokenized
type State interface {
	Pos() int           // Get the current position
	Skip()              // Skip the next argument (it was consumed as a value)
	Args() []string     // Get the entire argument list
	CurrentArg() string // Get the current argument
	Peek() string       // Peek at the next argument
	HasNext() bool      // Report whether a next argument exists
	Advance() bool      // Advance to the next argument
	Len() int           // Gets the length of the argument list
	Rest() []string     // Get the arguments after the current one
}

// DefaultState is the default implementation of the State interface
type DefaultState struct {
	pos  int
	args []string
}

// NewState creates a new State instance positioned before the first argument
func NewState(args []string) State {
	return &DefaultState{
		pos:  -1,
		args: args,
	}
}

// Pos returns the current position in the argument list
func (s *DefaultState) Pos() int {
	return s.pos
}

// Skip advances the current position past the next argument
func (s *DefaultState) Skip() {
	s.pos++
}

// Args returns the entire argument list
func (s *DefaultState) Args() []string {
	return s.args
}

// CurrentArg returns the current argument
func (s *DefaultState) CurrentArg() string {
	if s.pos < 0 || s.pos >= len(s.args) {
		return ""
	}
	return s.args[s.pos]
}

// Advance advances to the next argument, returning true if successful
func (s *DefaultState) Advance() bool {
	if s.pos+1 < len(s.args) {
		s.pos++
		return true
	}
	return false
}

// Peek returns the next argument without advancing the current position
func (s *DefaultState) Peek() string {
	if s.HasNext() {
		return s.args[s.pos+1]
	}

	return ""
}

// HasNext reports whether an argument follows the current one. It
// distinguishes a trailing empty-string argument from the end of the list.
func (s *DefaultState) HasNext() bool {
	return s.pos+1 < len(s.args)
}

// Len returns the length of the argument list
func (s *DefaultState) Len() int {
	return len(s.args)
}

// Rest returns the arguments following the current one
func (s *DefaultState) Rest() []string {
	if s.pos+1 >= len(s.args) {
		return []string{}
	}

	return s.args[s.pos+1:]
}
