package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
)

const maxResponseBodySize = 1 << 20

type httpProbe struct {
	client  *http.Client
	scheme  string
	host    string
	path    *PathTemplate
	headers map[string]string
	timeout time.Duration
	runID   string
}

type HTTPConfig struct {
	Scheme      string
	Host        string
	Port        string
	Path        *PathTemplate
	Headers     map[string]string
	Timeout     time.Duration
	Insecure    bool
	Connections int
	Meta        Meta
}

func NewHttpProbe(cfg HTTPConfig) *httpProbe {
	host := cfg.Host
	if cfg.Port != "" {
		host = net.JoinHostPort(cfg.Host, cfg.Port)
	}

	headers := map[string]string{
		"X-Testing-Purpose": "Educational",
	}
	if cfg.Meta.UserAgent != "" {
		headers["User-Agent"] = cfg.Meta.UserAgent
	}
	if cfg.Meta.RunID != "" {
		headers["X-Load-Run-Id"] = cfg.Meta.RunID
	}
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	connections := cfg.Connections
	if connections < 1 {
		connections = 1
	}

	return &httpProbe{
		// no client timeout, every request carries its own deadline
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: connections,
				MaxConnsPerHost:     connections,
				IdleConnTimeout:     30 * time.Second,
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: cfg.Insecure},
			},
		},
		scheme:  cfg.Scheme,
		host:    host,
		path:    cfg.Path,
		headers: headers,
		timeout: cfg.Timeout,
		runID:   cfg.Meta.RunID,
	}
}

func (h *httpProbe) URL(seq int) (string, error) {
	path, err := h.path.Render(seq, h.runID)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(fmt.Sprintf("%s://%s%s", h.scheme, h.host, path))
	if err != nil {
		return "", err
	}

	return u.String(), nil
}

func (h *httpProbe) Exec(ctx context.Context, seq int) Outcome {
	start := time.Now()

	urlStr, err := h.URL(seq)
	if err != nil {
		return failed(seq, start, err)
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return failed(seq, start, err)
	}

	for k, v := range h.headers {
		req.Header.Set(k, v)
	}

	res, err := h.client.Do(req)
	if err != nil {
		o := failed(seq, start, err)
		o.Sent = req.Header
		return o
	}
	defer res.Body.Close()

	n, err := io.Copy(ioutil.Discard, io.LimitReader(res.Body, maxResponseBodySize))
	if err != nil {
		o := failed(seq, start, err)
		o.Sent = req.Header
		return o
	}

	o := Outcome{
		Seq:        seq,
		Start:      start,
		Sent:       req.Header,
		StatusCode: res.StatusCode,
		Latency:    time.Since(start),
		Bytes:      n,
		Headers:    res.Header,
	}
	if res.TLS != nil {
		o.TLSVersion = tls.VersionName(res.TLS.Version)
	}

	log.WithFields(log.Fields{"kind": "probe", "name": "http", "seq": seq, "status": res.StatusCode, "host": urlStr}).Debug()
	return o
}

func (h *httpProbe) Close() {
	if t, ok := h.client.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
}
