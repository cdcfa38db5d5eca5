// Package shelltest provides a scripted shell.Runner for tests.
package shelltest

import (
	"strings"
	"sync"

	"github.com/conn-castle/lethe-installer/internal/shell"
)

type response struct {
	result shell.Result
	err    error
	fn     func(shell.Command) (shell.Result, error)
}

type rule struct {
	pattern   string
	responses []response
	served    int
}

// Runner answers commands from registered rules and records every call.
// A rule matches when the command line contains its pattern. The most recently
// registered matching rule wins. Unmatched commands succeed with empty output.
type Runner struct {
	mu    sync.Mutex
	rules []*rule
	calls []shell.Command
}

// New returns an empty Runner.
func New() *Runner {
	return &Runner{}
}

// On answers commands containing pattern with results in order, repeating the last.
func (r *Runner) On(pattern string, results ...shell.Result) *Runner {
	responses := make([]response, 0, len(results))
	for _, result := range results {
		responses = append(responses, response{result: result})
	}
	if len(responses) == 0 {
		responses = append(responses, response{})
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, &rule{pattern: pattern, responses: responses})
	return r
}

// OnError fails commands containing pattern with err.
func (r *Runner) OnError(pattern string, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, &rule{pattern: pattern, responses: []response{{err: err}}})
	return r
}

// Do answers commands containing pattern by calling fn, which may touch the
// filesystem the way the real command would.
func (r *Runner) Do(pattern string, fn func(cmd shell.Command) (shell.Result, error)) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, &rule{pattern: pattern, responses: []response{{fn: fn}}})
	return r
}

// Run implements shell.Runner.
func (r *Runner) Run(cmd shell.Command) (shell.Result, error) {
	resp := r.match(cmd)
	if resp.fn != nil {
		return resp.fn(cmd)
	}
	return resp.result, resp.err
}

// match records cmd and picks the response of the newest matching rule.
func (r *Runner) match(cmd shell.Command) response {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)
	line := cmd.String()
	for i := len(r.rules) - 1; i >= 0; i-- {
		rl := r.rules[i]
		if !strings.Contains(line, rl.pattern) {
			continue
		}
		idx := rl.served
		if idx >= len(rl.responses) {
			idx = len(rl.responses) - 1
		}
		rl.served++
		return rl.responses[idx]
	}
	return response{}
}

// Calls returns every command run so far.
func (r *Runner) Calls() []shell.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shell.Command(nil), r.calls...)
}

// Lines returns the command line of every call.
func (r *Runner) Lines() []string {
	calls := r.Calls()
	lines := make([]string, 0, len(calls))
	for _, call := range calls {
		lines = append(lines, call.String())
	}
	return lines
}

// Count returns how many calls contained pattern.
func (r *Runner) Count(pattern string) int {
	n := 0
	for _, line := range r.Lines() {
		if strings.Contains(line, pattern) {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps rules.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Exit returns a result with the given exit code and stderr.
func Exit(code int, stderr string) shell.Result {
	return shell.Result{ExitCode: code, Stderr: stderr}
}

// Stdout returns a successful result with stdout.
func Stdout(out string) shell.Result {
	return shell.Result{Stdout: out}
}
