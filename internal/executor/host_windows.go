//go:build windows
// +build windows

package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

func runHost(ctx context.Context, dir, name string, args []string, timeout time.Duration) hostOutput {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, name, args...)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	out := hostOutput{
		stdout: stdoutBuf.String(),
		stderr: stderrBuf.String(),
		err:    err,
	}
	if err != nil && errors.Is(err, exec.ErrNotFound) {
		out.notFound = true
	}
	if errors.Is(cctx.Err(), context.DeadlineExceeded) || errors.Is(cctx.Err(), context.Canceled) {
		out.timedOut = true
	}
	return out
}
