//go:build !windows
// +build !windows

package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"
)

// runHost spawns the process in its own process group so a timeout kills
// the whole tree, not just the direct child.
func runHost(ctx context.Context, dir, name string, args []string, timeout time.Duration) hostOutput {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		return hostOutput{
			err:      err,
			notFound: errors.Is(err, exec.ErrNotFound),
		}
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-cctx.Done():
			// Kill the entire process group (negative PID).
			if cmd.Process != nil {
				syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
			}
		case <-done:
		}
	}()

	waitErr := cmd.Wait()
	close(done)

	out := hostOutput{
		stdout: stdoutBuf.String(),
		stderr: stderrBuf.String(),
		err:    waitErr,
	}
	if errors.Is(cctx.Err(), context.DeadlineExceeded) || errors.Is(cctx.Err(), context.Canceled) {
		out.timedOut = true
	}
	return out
}
