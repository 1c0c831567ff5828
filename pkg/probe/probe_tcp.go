package probe

import (
	"context"
	"net"
	"time"

	log "github.com/sirupsen/logrus"
)

// tcpConnectProbe opens and immediately closes a TCP connection. It stands in
// for a ping without requiring raw socket privileges.
type tcpConnectProbe struct {
	addr    string
	timeout time.Duration
}

func NewTCPConnectProbe(addr string, timeout time.Duration) *tcpConnectProbe {
	return &tcpConnectProbe{addr: addr, timeout: timeout}
}

func (p *tcpConnectProbe) Exec(ctx context.Context, seq int) Outcome {
	start := time.Now()

	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return failed(seq, start, err)
	}
	_ = conn.Close()

	log.WithFields(log.Fields{"kind": "probe", "name": "tcp-connect", "seq": seq, "status": "open", "host": p.addr}).Debug()
	return connected(seq, start)
}
