// Package port probes local TCP port availability on the loopback
// interface.
package port

import (
	"fmt"
	"net"
)

const maxPort = 65535

// IsAvailable reports whether a TCP bind on 127.0.0.1:port currently
// succeeds. The probe binds and immediately releases the port, which
// observes the same local-address conflict SSH would hit. Any bind
// failure counts as unavailable, permission errors included.
//
// The check covers loopback only. SSH binds loopback by default, so
// this is sufficient, but another binder can still win the port
// between the probe and the SSH spawn.
func IsAvailable(port int) bool {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}

// FindAvailable scans upward from start (inclusive) through 65534 and
// returns the first free port. The second return value is false when
// the scan is exhausted.
func FindAvailable(start int) (int, bool) {
	for p := start; p < maxPort; p++ {
		if IsAvailable(p) {
			return p, true
		}
	}
	return 0, false
}
