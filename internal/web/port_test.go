package web

import (
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCandidates(t *testing.T) {
	t.Parallel()

	candidates := DefaultCandidates()
	require.Len(t, candidates, portProbeSpan)
	require.Equal(t, DefaultPort, candidates[0])
	require.Equal(t, DefaultPort+portProbeSpan-1, candidates[len(candidates)-1])
}

func TestFindFreePortPicksFirstFree(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	free := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	port, err := FindFreePort("127.0.0.1", []int{free})
	require.NoError(t, err)
	require.Equal(t, free, port)
}

func TestFindFreePortSkipsOccupied(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	occupied := ln.Addr().(*net.TCPAddr).Port

	port, err := FindFreePort("127.0.0.1", []int{occupied})
	require.NoError(t, err)
	require.NotEqual(t, occupied, port)
	require.Positive(t, port)

	probe, err := net.Listen("tcp", "127.0.0.1:"+strconv.Itoa(port))
	require.NoError(t, err)
	require.NoError(t, probe.Close())
}

func TestFindFreePortNoCandidates(t *testing.T) {
	t.Parallel()

	port, err := FindFreePort("127.0.0.1", nil)
	require.NoError(t, err)
	require.Positive(t, port)
}
