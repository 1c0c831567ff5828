package probe

import (
	"context"
	"net"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const (
	defaultVirtualHost = "/"
)

type amqpProbe struct {
	url     string
	addr    string
	timeout time.Duration
}

func NewAmqpProbe(addr, user, password, virtualHost string, timeout time.Duration) *amqpProbe {
	if virtualHost == "" {
		virtualHost = defaultVirtualHost
	}

	u := url.URL{
		Scheme: "amqp",
		Host:   addr,
		Path:   virtualHost,
	}

	if user != "" && password != "" {
		u.User = url.UserPassword(user, password)
	}

	return &amqpProbe{
		url:     u.String(),
		addr:    addr,
		timeout: timeout,
	}
}

func (a *amqpProbe) Exec(ctx context.Context, seq int) Outcome {
	start := time.Now()

	cfg := amqp.Config{
		Dial: func(network, addr string) (net.Conn, error) {
			d := net.Dialer{Timeout: a.timeout}
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			// cleared by the library once the handshake completes
			if err := conn.SetDeadline(time.Now().Add(a.timeout)); err != nil {
				_ = conn.Close()
				return nil, err
			}
			return conn, nil
		},
	}

	conn, err := amqp.DialConfig(a.url, cfg)
	if err != nil {
		return failed(seq, start, err)
	}
	_ = conn.Close()

	log.WithFields(log.Fields{"kind": "probe", "name": "amqp", "seq": seq, "status": "alive", "host": a.addr}).Debug()
	return connected(seq, start)
}
