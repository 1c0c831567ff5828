package probe

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Probe performs one outbound call. Exec never fails: transport errors and
// timeouts are captured in the returned Outcome.
type Probe interface {
	Exec(ctx context.Context, seq int) Outcome
}

// Outcome is the result of a single probe attempt. It carries either a status
// code, a successful connection, or an error description.
type Outcome struct {
	Seq        int
	Start      time.Time
	StatusCode int
	Connected  bool
	Err        string
	Latency    time.Duration
	Bytes      int64

	// Sent holds the request headers, Headers the response headers.
	Sent       http.Header
	Headers    http.Header
	TLSVersion string
}

const LabelConnected = "connected"

func (o Outcome) Label() string {
	if o.Err != "" {
		return o.Err
	}
	if o.Connected {
		return LabelConnected
	}
	return strconv.Itoa(o.StatusCode)
}

func (o Outcome) Success() bool {
	if o.Err != "" {
		return false
	}
	if o.Connected {
		return true
	}
	return o.StatusCode >= 200 && o.StatusCode < 400
}

// Meta identifies a run towards the target.
type Meta struct {
	RunID     string
	UserAgent string
}

func connected(seq int, start time.Time) Outcome {
	return Outcome{Seq: seq, Start: start, Connected: true, Latency: time.Since(start)}
}

// failed labels an outcome with err. The request URL of a *url.Error is
// dropped so that the same failure on different paths shares one label.
func failed(seq int, start time.Time, err error) Outcome {
	if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
		err = urlErr.Err
	}
	return Outcome{Seq: seq, Start: start, Err: err.Error(), Latency: time.Since(start)}
}
