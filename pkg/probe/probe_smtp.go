package probe

import (
	"context"
	"net"
	"net/smtp"
	"time"

	log "github.com/sirupsen/logrus"
)

type smtpProbe struct {
	addr    string
	timeout time.Duration
}

func NewSmtpProbe(addr string, timeout time.Duration) *smtpProbe {
	return &smtpProbe{
		addr:    addr,
		timeout: timeout,
	}
}

func (s *smtpProbe) Exec(ctx context.Context, seq int) Outcome {
	start := time.Now()

	d := net.Dialer{Timeout: s.timeout}
	conn, err := d.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return failed(seq, start, err)
	}
	_ = conn.SetDeadline(time.Now().Add(s.timeout))

	host, _, _ := net.SplitHostPort(s.addr)
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return failed(seq, start, err)
	}
	defer client.Close()

	if err := client.Noop(); err != nil {
		return failed(seq, start, err)
	}

	if err := client.Quit(); err != nil {
		return failed(seq, start, err)
	}

	log.WithFields(log.Fields{"kind": "probe", "name": "smtp", "seq": seq, "status": "alive", "host": s.addr}).Debug()
	return connected(seq, start)
}
