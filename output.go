package gocli

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Stream selects standard output or standard error.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}

	return "stdout"
}

// Output is where commands write lines and signal their exit code.
type Output interface {
	WriteLine(stream Stream, line string) error
	Exit(code int)
}

// StdOutput writes to the process streams and exits the process. Writes are
// serialised so lines from concurrent writers never interleave.
type StdOutput struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	exit   func(int)
}

// NewStdOutput creates an Output bound to os.Stdout, os.Stderr and os.Exit.
func NewStdOutput() *StdOutput {
	return &StdOutput{stdout: os.Stdout, stderr: os.Stderr, exit: os.Exit}
}

// NewWriterOutput creates an Output writing to the given writers. exit may be
// nil, in which case Exit does nothing and Execute's *ExitError carries the code.
func NewWriterOutput(stdout, stderr io.Writer, exit func(int)) *StdOutput {
	return &StdOutput{stdout: stdout, stderr: stderr, exit: exit}
}

func (o *StdOutput) WriteLine(stream Stream, line string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	w := o.stdout
	if stream == Stderr {
		w = o.stderr
	}
	_, err := fmt.Fprintln(w, line)

	return err
}

func (o *StdOutput) Exit(code int) {
	if o.exit != nil {
		o.exit(code)
	}
}

// stdoutFile returns the standard output writer when it is a file.
func (o *StdOutput) stdoutFile() *os.File {
	f, _ := o.stdout.(*os.File)
	return f
}
