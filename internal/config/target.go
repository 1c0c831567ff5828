package config

import (
	"net"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Target is the parsed form of a --url value.
type Target struct {
	Scheme string
	Host   string
	Port   string
	Path   string
}

// ParseTarget splits raw into its parts. Input without a scheme is treated as
// an http URL, so "localhost:8080" and "http://localhost:8080" are equivalent.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, errors.New("target must not be empty")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, errors.Wrapf(err, "invalid target %q", raw)
	}

	if u.Hostname() == "" {
		return Target{}, errors.Errorf("target %q has no host", raw)
	}

	t := Target{
		Scheme: strings.ToLower(u.Scheme),
		Host:   strings.ToLower(u.Hostname()),
		Port:   u.Port(),
		Path:   u.EscapedPath(),
	}
	if u.RawQuery != "" {
		t.Path += "?" + u.RawQuery
	}

	return t, nil
}

// Address returns host:port for dialing.
func (o Options) Address() string {
	return net.JoinHostPort(o.Target, o.Port)
}
