// Package process queries and terminates OS processes by pid.
package process

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// IsRunning reports whether pid names a live process the current user
// may signal. It delivers a null-signal probe; any delivery error,
// "no such process" included, reads as not running.
func IsRunning(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// Terminate requests graceful termination of pid with SIGTERM. A
// process that has already exited is not an error; alreadyStopped
// tells the caller which confirmation to print. There is no
// second-stage forced kill: SSH is trusted to exit promptly on the
// default signal.
func Terminate(pid int) (alreadyStopped bool, err error) {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false, fmt.Errorf("failed to look up process %d: %w", pid, err)
	}

	err = proc.Signal(syscall.SIGTERM)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, syscall.ESRCH):
		return true, nil
	default:
		return false, fmt.Errorf("failed to terminate process %d: %w", pid, err)
	}
}
