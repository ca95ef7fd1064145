// Package runnertest provides a recording runner.CommandRunner for tests.
package runnertest

import (
	"context"
	"io"
	"strings"

	"github.com/agentx-labs/agentboot/internal/runner"
)

// Call records one invocation made through the fake.
type Call struct {
	Name  string
	Args  []string
	Dir   string
	Stdin string
}

// Argv returns the full command vector (name followed by args).
func (c Call) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// Fake implements runner.CommandRunner. Unmatched commands succeed with an
// empty result so tests only have to stub the calls they care about.
type Fake struct {
	responses map[string]response
	handlers  []handler

	// Calls holds every invocation in order.
	Calls []Call
}

type response struct {
	result runner.CmdResult
	err    error
}

type handler struct {
	name string
	sub  string
	fn   func(Call) (runner.CmdResult, error)
}

// New creates an empty Fake.
func New() *Fake {
	return &Fake{responses: make(map[string]response)}
}

// On stubs the exact (name, args, dir) invocation.
func (f *Fake) On(name string, args []string, dir string, result runner.CmdResult) {
	f.responses[key(name, args, dir)] = response{result: result}
}

// OnError makes the exact (name, args, dir) invocation fail to start.
func (f *Fake) OnError(name string, args []string, dir string, err error) {
	f.responses[key(name, args, dir)] = response{err: err}
}

// Handle registers fn for every invocation of name whose first argument is
// sub (any first argument when sub is empty). Exact stubs registered with On
// take precedence.
func (f *Fake) Handle(name, sub string, fn func(Call) (runner.CmdResult, error)) {
	f.handlers = append(f.handlers, handler{name: name, sub: sub, fn: fn})
}

// Run records the call and returns the stubbed result.
func (f *Fake) Run(_ context.Context, name string, args []string, opts runner.RunOpts) (runner.CmdResult, error) {
	call := Call{Name: name, Args: append([]string(nil), args...), Dir: opts.Dir}
	if opts.Stdin != nil {
		data, _ := io.ReadAll(opts.Stdin)
		call.Stdin = string(data)
	}
	f.Calls = append(f.Calls, call)

	result, err := f.lookup(call)
	if opts.Stdout != nil && result.Stdout != "" {
		_, _ = io.WriteString(opts.Stdout, result.Stdout)
	}
	if opts.Stderr != nil && result.Stderr != "" {
		_, _ = io.WriteString(opts.Stderr, result.Stderr)
	}
	return result, err
}

// Argvs returns the command vectors of every recorded call.
func (f *Fake) Argvs() [][]string {
	out := make([][]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Argv()
	}
	return out
}

// Find returns the first recorded call of name with first argument sub.
func (f *Fake) Find(name, sub string) (Call, bool) {
	for _, c := range f.Calls {
		if c.Name == name && len(c.Args) > 0 && c.Args[0] == sub {
			return c, true
		}
	}
	return Call{}, false
}

func (f *Fake) lookup(call Call) (runner.CmdResult, error) {
	if r, ok := f.responses[key(call.Name, call.Args, call.Dir)]; ok {
		return r.result, r.err
	}
	for _, h := range f.handlers {
		if h.name != call.Name {
			continue
		}
		if h.sub != "" && (len(call.Args) == 0 || call.Args[0] != h.sub) {
			continue
		}
		return h.fn(call)
	}
	return runner.CmdResult{}, nil
}

func key(name string, args []string, dir string) string {
	return name + "|" + strings.Join(args, ",") + "|" + dir
}
