package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampRequestsAboveMaximumUsesMaximum(t *testing.T) {
	l := DefaultLimits()

	for _, n := range []int{101, 150, 1000, 1 << 20} {
		assert.Equal(t, 100, l.ClampRequests(n), "requested %d", n)
	}
}

func TestClampRequestsWithinMaximumIsKept(t *testing.T) {
	l := DefaultLimits()

	for _, n := range []int{0, 1, 50, 99, 100} {
		assert.Equal(t, n, l.ClampRequests(n), "requested %d", n)
	}
	assert.Equal(t, 0, l.ClampRequests(-3))
}

func TestClampThreads(t *testing.T) {
	l := DefaultLimits()

	assert.Equal(t, 10, l.ClampThreads(11))
	assert.Equal(t, 10, l.ClampThreads(10))
	assert.Equal(t, 2, l.ClampThreads(2))
	assert.Equal(t, 1, l.ClampThreads(0))
}

func TestClampDelayBelowMinimumUsesMinimum(t *testing.T) {
	l := DefaultLimits()

	for _, d := range []time.Duration{0, time.Millisecond, 99 * time.Millisecond} {
		assert.Equal(t, 100*time.Millisecond, l.ClampDelay(d), "requested %s", d)
	}
	assert.Equal(t, 2*time.Second, l.ClampDelay(2*time.Second))
}

func TestResolveUsesLimitsPassedIn(t *testing.T) {
	l := Limits{MaxRequests: 3, MaxThreads: 2, MinDelay: time.Second}

	res := l.Resolve(Options{Requests: 10, Threads: 5, Delay: 10 * time.Millisecond, Protocol: "ICMP"})

	assert.Equal(t, 3, res.Requests)
	assert.Equal(t, 2, res.Threads)
	assert.Equal(t, time.Second, res.Delay)
	assert.Equal(t, ProtocolTCPConnect, res.Protocol)
	require.Len(t, res.Clamped, 3)
	assert.Equal(t, Clamp{Field: "requests", Requested: "10", Effective: "3"}, res.Clamped[0])
}

func TestResolveKeepsValuesWithinBounds(t *testing.T) {
	res := SimulatorLimits().Resolve(Options{Requests: 5, Threads: 1, Delay: 2 * time.Second})

	assert.Empty(t, res.Clamped)
	assert.Equal(t, 5, res.Requests)
	assert.Equal(t, ProtocolHTTP, res.Protocol)
}

func TestProtocolValid(t *testing.T) {
	assert.True(t, ProtocolHTTPS.Valid())
	assert.True(t, NormalizeProtocol("WSS").Valid())
	assert.True(t, NormalizeProtocol("tcp").Valid())
	assert.False(t, Protocol("gopher").Valid())
	assert.False(t, ProtocolICMP.Valid())
}
