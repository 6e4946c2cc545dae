package config

import (
	"fmt"
	"sort"
	"strings"
)

// PortForward describes one registered forward: a loopback TCP port
// relayed over a detached SSH child to a port on the remote host.
type PortForward struct {
	ID         string `json:"id"`
	Host       string `json:"host"`
	LocalPort  int    `json:"local_port"`
	RemotePort int    `json:"remote_port"`
	// PID names the SSH child recorded at creation time. It is nil for
	// records the tool did not create in a known-good state, and it may
	// refer to a process that has since exited.
	PID *int `json:"pid"`
}

// validate checks a record against the registry's data model: ports in
// [1, 65535] and a non-negative pid when one is present. Records
// outside it only arise from hand-edited or corrupted config files; a
// negative pid in particular must never reach signal delivery, where
// it would address a whole process group.
func (f PortForward) validate() error {
	if f.LocalPort < 1 || f.LocalPort > 65535 {
		return fmt.Errorf("local_port %d out of range [1, 65535]", f.LocalPort)
	}
	if f.RemotePort < 1 || f.RemotePort > 65535 {
		return fmt.Errorf("remote_port %d out of range [1, 65535]", f.RemotePort)
	}
	if f.PID != nil && *f.PID < 0 {
		return fmt.Errorf("pid %d must be non-negative", *f.PID)
	}
	return nil
}

// Config is the durable registry of forwards, keyed by forward id.
type Config struct {
	Forwards map[string]PortForward `json:"forwards"`
}

// New returns an empty registry.
func New() *Config {
	return &Config{Forwards: make(map[string]PortForward)}
}

// ForwardID derives the registry key for a forward. The id is fully
// determined by (host, localPort, remotePort); '@' is rewritten so the
// id stays shell- and filesystem-safe.
func ForwardID(host string, localPort, remotePort int) string {
	return fmt.Sprintf("%s_%d_%d", strings.ReplaceAll(host, "@", "_at_"), localPort, remotePort)
}

// AddForward upserts a forward by id; the last write wins.
func (c *Config) AddForward(f PortForward) {
	if c.Forwards == nil {
		c.Forwards = make(map[string]PortForward)
	}
	c.Forwards[f.ID] = f
}

// RemoveForward deletes the forward with the given id and returns it,
// or nil if no such forward exists. Removing an absent id leaves the
// registry unchanged.
func (c *Config) RemoveForward(id string) *PortForward {
	f, ok := c.Forwards[id]
	if !ok {
		return nil
	}
	delete(c.Forwards, id)
	return &f
}

// SortedForwards returns the registry ordered by id ascending. This is
// the only ordering user-visible indices are derived from; indices are
// never persisted.
func (c *Config) SortedForwards() []PortForward {
	forwards := make([]PortForward, 0, len(c.Forwards))
	for _, f := range c.Forwards {
		forwards = append(forwards, f)
	}
	sort.Slice(forwards, func(i, j int) bool { return forwards[i].ID < forwards[j].ID })
	return forwards
}

// ForwardByIndex returns element i of the sorted view, or nil when the
// index is out of range.
func (c *Config) ForwardByIndex(i int) *PortForward {
	sorted := c.SortedForwards()
	if i < 0 || i >= len(sorted) {
		return nil
	}
	return &sorted[i]
}
