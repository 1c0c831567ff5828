package config

import (
	"fmt"
	"strings"
	"time"
)

func DefaultLimits() Limits {
	return Limits{
		MaxRequests: 100,
		MaxThreads:  10,
		MinDelay:    100 * time.Millisecond,
		Allow:       []string{"127.0.0.1", "localhost"},
	}
}

// SimulatorLimits are the tighter bounds of the sequential protocol simulator.
func SimulatorLimits() Limits {
	return Limits{
		MaxRequests: 20,
		MaxThreads:  1,
		MinDelay:    1 * time.Second,
		Allow:       []string{"127.0.0.1", "localhost"},
	}
}

func (l Limits) ClampRequests(n int) int {
	if n < 0 {
		return 0
	}
	if n > l.MaxRequests {
		return l.MaxRequests
	}
	return n
}

func (l Limits) ClampThreads(n int) int {
	if n > l.MaxThreads {
		n = l.MaxThreads
	}
	if n < 1 {
		return 1
	}
	return n
}

func (l Limits) ClampDelay(d time.Duration) time.Duration {
	if d < l.MinDelay {
		return l.MinDelay
	}
	return d
}

// Resolve applies all bounds to opts. Clamping never fails; every changed value
// is listed in Resolved.Clamped so the caller can report it.
func (l Limits) Resolve(opts Options) Resolved {
	res := Resolved{Options: opts}

	if n := l.ClampRequests(opts.Requests); n != opts.Requests {
		res.Requests = n
		res.Clamped = append(res.Clamped, Clamp{"requests", fmt.Sprint(opts.Requests), fmt.Sprint(n)})
	}

	if n := l.ClampThreads(opts.Threads); n != opts.Threads {
		res.Threads = n
		res.Clamped = append(res.Clamped, Clamp{"threads", fmt.Sprint(opts.Threads), fmt.Sprint(n)})
	}

	if d := l.ClampDelay(opts.Delay); d != opts.Delay {
		res.Delay = d
		res.Clamped = append(res.Clamped, Clamp{"delay", opts.Delay.String(), d.String()})
	}

	res.Protocol = NormalizeProtocol(opts.Protocol)
	return res
}

// AllowListString returns the allow-list joined for display.
func (l Limits) AllowListString() string {
	return strings.Join(l.Allow, ", ")
}

func NormalizeProtocol(p Protocol) Protocol {
	p = Protocol(strings.ToLower(strings.TrimSpace(string(p))))
	switch p {
	case "":
		return ProtocolHTTP
	case ProtocolICMP, "tcp":
		return ProtocolTCPConnect
	}
	return p
}

func (p Protocol) Valid() bool {
	switch p {
	case ProtocolHTTP, ProtocolHTTPS, ProtocolTCPConnect, ProtocolWebSocket, ProtocolWebSocketS,
		ProtocolRedis, ProtocolMySQL, ProtocolMongoDB, ProtocolAmqp, ProtocolSMTP:
		return true
	}
	return false
}
