package tunnel

import (
	"io"
	"os"
	"os/exec"
	"syscall"
	"testing"

	"pfm/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.InitForCLI(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}

// mockSSH substitutes an arbitrary command for the real ssh client.
func mockSSH(t *testing.T, name string, args ...string) {
	t.Helper()
	original := sshCommand
	t.Cleanup(func() { sshCommand = original })
	sshCommand = func(host string, localPort, remotePort int) *exec.Cmd {
		return exec.Command(name, args...)
	}
}

func TestStart_FailingChildIsReported(t *testing.T) {
	mockSSH(t, "false")

	_, err := Start("h.example", 8080, 80)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited immediately")
}

func TestStart_CleanImmediateExitStillFails(t *testing.T) {
	mockSSH(t, "true")

	_, err := Start("h.example", 8080, 80)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited immediately")
}

func TestStart_SurvivingChildReportsPid(t *testing.T) {
	mockSSH(t, "sleep", "30")

	tun, err := Start("h.example", 8080, 80)
	require.NoError(t, err)
	defer tun.Abort()

	assert.Greater(t, tun.Pid(), 0)
}

func TestAbort_TerminatesChild(t *testing.T) {
	mockSSH(t, "sleep", "30")

	tun, err := Start("h.example", 8080, 80)
	require.NoError(t, err)
	pid := tun.Pid()

	tun.Abort()

	// Abort reaps the child, so a null-signal probe must fail now.
	assert.Error(t, syscall.Kill(pid, syscall.Signal(0)))
}

func TestAbort_AfterReleaseIsNoOp(t *testing.T) {
	mockSSH(t, "sleep", "30")

	tun, err := Start("h.example", 8080, 80)
	require.NoError(t, err)
	pid := tun.Pid()

	tun.Release()
	tun.Abort()

	assert.NoError(t, syscall.Kill(pid, syscall.Signal(0)))

	// The test owns the detached child; stop it.
	syscall.Kill(pid, syscall.SIGTERM)
}
