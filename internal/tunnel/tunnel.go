// Package tunnel spawns the detached SSH children that implement
// local port forwards.
//
// A Tunnel owns its child from spawn until the caller either releases
// it (the child outlives the tool and is only ever stopped by a later
// delete or cleanup invocation) or aborts it (the child is terminated
// because registration failed). Exactly one of Release or Abort must
// be called after a successful Start.
package tunnel

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"pfm/pkg/logging"
)

// startupGracePeriod is how long a freshly spawned ssh gets to fail
// fast (DNS errors, auth rejection, bind races) before the tunnel
// counts as started. Prompts that stall past it leave the forward in a
// "started but authenticating" state, which the next list reflects.
const startupGracePeriod = 500 * time.Millisecond

// For mocking in tests
var sshCommand = func(host string, localPort, remotePort int) *exec.Cmd {
	cmd := exec.Command("ssh", "-N", "-L", fmt.Sprintf("%d:localhost:%d", localPort, remotePort), host)
	// Inherit stdio so password and host-key prompts reach the user's
	// terminal.
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// Tunnel is the scoped owner of a spawned SSH child.
type Tunnel struct {
	cmd      *exec.Cmd
	waitErr  chan error
	released bool
}

// Start launches ssh forwarding localPort on loopback to remotePort on
// host, then waits the startup grace period for immediate failures. If
// the child exits within the grace period the returned error carries
// its exit status and there is nothing to clean up.
func Start(host string, localPort, remotePort int) (*Tunnel, error) {
	cmd := sshCommand(host, localPort, remotePort)
	fmt.Printf("Starting SSH tunnel: %s\n", strings.Join(cmd.Args, " "))
	logging.Debug("tunnel", "spawning %v", cmd.Args)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ssh process: %w", err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()

	select {
	case err := <-waitErr:
		if err != nil {
			return nil, fmt.Errorf("ssh process exited immediately: %w", err)
		}
		return nil, fmt.Errorf("ssh process exited immediately (%s)", cmd.ProcessState)
	case <-time.After(startupGracePeriod):
	}

	return &Tunnel{cmd: cmd, waitErr: waitErr}, nil
}

// Pid returns the OS pid of the SSH child.
func (t *Tunnel) Pid() int {
	return t.cmd.Process.Pid
}

// Release hands the child over to the OS. The tool will not signal or
// wait on it again, so the tunnel survives the tool's exit.
func (t *Tunnel) Release() {
	logging.Debug("tunnel", "released ssh child %d", t.Pid())
	t.released = true
}

// Abort terminates the child. It is the failure-path counterpart of
// Release: anything that goes wrong between spawn and registration
// must not leave an unregistered orphan behind. Abort after Release is
// a no-op.
func (t *Tunnel) Abort() {
	if t.released || t.cmd.Process == nil {
		return
	}
	if err := t.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		t.cmd.Process.Kill()
	}
	// Consume the error from cmd.Wait so the child is reaped.
	<-t.waitErr
	logging.Debug("tunnel", "aborted ssh child %d", t.cmd.Process.Pid)
}
