package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"pfm/internal/color"
	"pfm/internal/config"
	"pfm/internal/port"
	"pfm/internal/tunnel"
	"pfm/pkg/logging"

	"github.com/spf13/cobra"
)

// addCmdDef defines the add command structure
var addCmdDef = &cobra.Command{
	Use:   "add <host> <ports>",
	Short: "Add a new SSH port forward",
	Long: `Adds a port forward and starts its SSH tunnel as a detached background
process. The tunnel keeps running after pfm exits; stop it later with
'pfm delete'.

The ports argument is LOCAL:REMOTE, or a single PORT used for both
ends. If the requested local port is already in use, the next free
port above it is bound instead and the remap is reported.

Examples:
  pfm add user@server.com 8080:80
  pfm add server.com 3000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runAdd(cfg, args[0], args[1])
	},
}

func newAddCmd() *cobra.Command {
	return addCmdDef
}

// sshTunnel is the subset of tunnel.Tunnel the add pipeline uses.
type sshTunnel interface {
	Pid() int
	Release()
	Abort()
}

// For mocking in tests
var tunnelStart = func(host string, localPort, remotePort int) (sshTunnel, error) {
	return tunnel.Start(host, localPort, remotePort)
}

var configSave = func(cfg *config.Config) error {
	return cfg.Save()
}

// parsePorts parses a LOCAL:REMOTE pair, or a single PORT meaning
// PORT:PORT. Ports must fall in [1, 65535].
func parsePorts(spec string) (local, remote int, err error) {
	if strings.Contains(spec, ":") {
		parts := strings.Split(spec, ":")
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("invalid format %q: use LOCAL:REMOTE or just PORT", spec)
		}
		local, err = parsePort(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid local port: %w", err)
		}
		remote, err = parsePort(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid remote port: %w", err)
		}
		return local, remote, nil
	}

	p, err := parsePort(spec)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid port number: %w", err)
	}
	return p, p, nil
}

func parsePort(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("port must be between 1 and 65535")
	}
	return int(n), nil
}

func runAdd(cfg *config.Config, host, ports string) error {
	local, remote, err := parsePorts(ports)
	if err != nil {
		return err
	}

	requested := local
	if !port.IsAvailable(local) {
		fmt.Println(color.Warning.Render(fmt.Sprintf("Port %d is already in use", local)))

		next, ok := port.FindAvailable(local + 1)
		if !ok {
			return fmt.Errorf("no available ports found")
		}
		local = next
		fmt.Println(color.Success.Render(fmt.Sprintf("Using port %d instead", local)))
	}

	tun, err := tunnelStart(host, local, remote)
	if err != nil {
		return err
	}
	pid := tun.Pid()

	id := config.ForwardID(host, local, remote)
	cfg.AddForward(config.PortForward{
		ID:         id,
		Host:       host,
		LocalPort:  local,
		RemotePort: remote,
		PID:        &pid,
	})
	if err := configSave(cfg); err != nil {
		// The registry never learned about the child, so kill it rather
		// than leave an unregistered orphan behind.
		tun.Abort()
		return err
	}
	tun.Release()
	logging.Debug("add", "registered forward %s (pid %d)", id, pid)

	fmt.Println()
	fmt.Println(color.Success.Bold(true).Render("✓ Port forward created!"))
	fmt.Println(color.Accent.Render(fmt.Sprintf("  ID: %s", id)))
	fmt.Printf("  %s:%s → %s:%s\n",
		color.Dim.Render("localhost"),
		color.Accent.Render(strconv.Itoa(local)),
		color.Accent.Render(host),
		color.Accent.Render(strconv.Itoa(remote)))
	fmt.Printf("  %s: %d\n", color.Accent.Render("PID"), pid)

	if requested != local {
		fmt.Println(color.Warning.Render(fmt.Sprintf("\n⚠ Port remapped from %d to %d", requested, local)))
	}
	return nil
}
