package testutil

import (
	"context"
	"strings"
	"sync"
)

// Call is one recorded invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the command line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Handler simulates a program's side effects.
type Handler func(dir string, args []string) error

// Runner is a recording runner.Runner. Commands whose rendered line starts
// with a registered prefix invoke the handler; everything else succeeds.
type Runner struct {
	mu       sync.Mutex
	calls    []Call
	prefixes []string
	handlers []Handler
}

// NewRunner creates an empty recording runner.
func NewRunner() *Runner {
	return &Runner{}
}

// On registers h for commands starting with prefix. Earlier registrations win.
func (r *Runner) On(prefix string, h Handler) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefix)
	r.handlers = append(r.handlers, h)
	return r
}

// Run implements runner.Runner.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	var h Handler
	line := call.String()
	for i, p := range r.prefixes {
		if strings.HasPrefix(line, p) {
			h = r.handlers[i]
			break
		}
	}
	r.mu.Unlock()

	if h != nil {
		return h(dir, args)
	}
	return nil
}

// Calls returns every recorded invocation.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Commands returns every recorded command line.
func (r *Runner) Commands() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}
