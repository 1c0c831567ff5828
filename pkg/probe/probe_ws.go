package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

type webSocketProbe struct {
	dialer  *websocket.Dialer
	scheme  string
	host    string
	path    *PathTemplate
	header  http.Header
	timeout time.Duration
	runID   string
}

type WebSocketConfig struct {
	// Scheme is ws or wss.
	Scheme   string
	Address  string
	Path     *PathTemplate
	Headers  map[string]string
	Timeout  time.Duration
	Insecure bool
	Meta     Meta
}

func NewWebSocketProbe(cfg WebSocketConfig) *webSocketProbe {
	header := http.Header{}
	header.Set("X-Testing-Purpose", "Educational")
	if cfg.Meta.UserAgent != "" {
		header.Set("User-Agent", cfg.Meta.UserAgent)
	}
	if cfg.Meta.RunID != "" {
		header.Set("X-Load-Run-Id", cfg.Meta.RunID)
	}
	for k, v := range cfg.Headers {
		header.Set(k, v)
	}

	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "ws"
	}

	return &webSocketProbe{
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.Timeout,
			TLSClientConfig:  &tls.Config{InsecureSkipVerify: cfg.Insecure},
		},
		scheme:  scheme,
		host:    cfg.Address,
		path:    cfg.Path,
		header:  header,
		timeout: cfg.Timeout,
		runID:   cfg.Meta.RunID,
	}
}

func (w *webSocketProbe) URL(seq int) (string, error) {
	path, err := w.path.Render(seq, w.runID)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(fmt.Sprintf("%s://%s%s", w.scheme, w.host, path))
	if err != nil {
		return "", err
	}

	return u.String(), nil
}

func (w *webSocketProbe) Exec(ctx context.Context, seq int) Outcome {
	start := time.Now()

	urlStr, err := w.URL(seq)
	if err != nil {
		return failed(seq, start, err)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	conn, res, err := w.dialer.DialContext(ctx, urlStr, w.header)
	if err != nil {
		if res != nil {
			return Outcome{
				Seq:        seq,
				Start:      start,
				StatusCode: res.StatusCode,
				Err:        fmt.Sprintf("handshake rejected with status %d", res.StatusCode),
				Latency:    time.Since(start),
				Sent:       w.header,
			}
		}
		o := failed(seq, start, err)
		o.Sent = w.header
		return o
	}

	var tlsVersion string
	if tc, ok := conn.UnderlyingConn().(*tls.Conn); ok {
		tlsVersion = tls.VersionName(tc.ConnectionState().Version)
	}

	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	_ = conn.Close()

	log.WithFields(log.Fields{"kind": "probe", "name": "ws", "seq": seq, "status": "alive", "host": urlStr}).Debug()

	o := connected(seq, start)
	o.StatusCode = res.StatusCode
	o.Headers = res.Header
	o.Sent = w.header
	o.TLSVersion = tlsVersion
	return o
}
