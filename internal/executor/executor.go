// Package executor runs approved commands on the host. Commands are
// executed directly via argv, never through a shell; safety checks run
// again here so nothing can bypass them by reaching the runner directly.
package executor

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/vocapp/vocapp/internal/safety"
)

const DefaultTimeout = 2 * time.Minute

// Runner executes commands inside the configured access scope.
type Runner struct {
	// Timeout bounds each execution; <=0 uses DefaultTimeout.
	Timeout time.Duration
	// Scope resolves the access configuration per execution, so config
	// changes apply without restarting the runner.
	Scope func() safety.Scope
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

func (r *Runner) scope() safety.Scope {
	if r.Scope != nil {
		return r.Scope()
	}
	return safety.Scope{Mode: safety.ModeWorkdir, Workdir: "."}
}

// Execute validates and runs a single command, returning a structured
// result. Validation and policy failures never reach the host.
func (r *Runner) Execute(ctx context.Context, command string) Result {
	scope := r.scope()
	res := Result{Command: command, Cwd: scope.EffectiveRoot()}

	tokens := safety.Tokenize(command)
	if len(tokens) == 0 {
		res.Error = "Empty command"
		return res
	}

	if safety.HasShellOperators(command) {
		suggestion := "Usa comandos simples como ls, ps, cp."
		if runtime.GOOS == "windows" {
			suggestion = "Usa comandos simples como dir, tasklist, copy."
		}
		res.Stderr = "Shell operators not supported. Use simple commands only."
		res.Error = "shell_operator_not_supported: " + suggestion
		return res
	}

	// Re-check the joined tokens: quoting must not hide a blocked pattern.
	if safety.IsBlocked(command) || safety.IsBlocked(strings.Join(tokens, " ")) {
		res.Error = fmt.Sprintf("Bloqueé ese comando por seguridad: %s", command)
		return res
	}

	tokens = scope.ExpandHome(tokens)
	if err := scope.CheckTokens(tokens); err != nil {
		res.Error = err.Error()
		return res
	}

	if scope.Mode == safety.ModeFree {
		log.Printf("WARNING: ejecutando sin restriccion de rutas: %s", command)
	}

	out := runHost(ctx, res.Cwd, tokens[0], tokens[1:], r.timeout())
	res.Stdout = out.stdout
	res.Stderr = out.stderr
	switch {
	case out.notFound:
		res.Error = "Command not found: " + tokens[0]
	case out.timedOut:
		res.Error = fmt.Sprintf("Timeout tras %s: %s", r.timeout(), command)
	case out.err != nil:
		res.Error = out.err.Error()
	default:
		res.OK = true
	}
	return res
}

// hostOutput is the raw outcome of one process run.
type hostOutput struct {
	stdout   string
	stderr   string
	err      error
	notFound bool
	timedOut bool
}
