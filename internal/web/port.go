package web

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

const (
	// DefaultPort is where the UI historically lives.
	DefaultPort = 5050

	portProbeSpan = 20
)

// DefaultCandidates returns the ports tried in order when none is pinned.
func DefaultCandidates() []int {
	out := make([]int, portProbeSpan)
	for i := range out {
		out[i] = DefaultPort + i
	}
	return out
}

// FindFreePort probes the candidates in order and returns the first one that
// accepts a listener on host. When every candidate is taken, the kernel
// picks any free port.
func FindFreePort(host string, candidates []int) (int, error) {
	for _, port := range candidates {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
		if err != nil {
			continue
		}
		_ = ln.Close()
		return port, nil
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(host, "0"))
	if err != nil {
		return 0, fmt.Errorf("probe free port: %w", err)
	}
	defer ln.Close()

	addr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		return 0, errors.New("unexpected listener address type")
	}
	return addr.Port, nil
}
