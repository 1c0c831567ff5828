package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mittwald/mittload/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wsRequest struct {
	path  string
	query string
	extra string
}

// newWebSocketHandler upgrades only /ws and reports every request it sees.
func newWebSocketHandler(seen chan<- wsRequest) http.Handler {
	upgrader := websocket.Upgrader{}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- wsRequest{path: r.URL.Path, query: r.URL.RawQuery, extra: r.Header.Get("X-Extra")}
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.Close()
	})
}

func newTestWebSocket(t *testing.T, srv *httptest.Server, protocol config.Protocol, path string, insecure bool) Probe {
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	p, err := New(config.Options{
		Target:   u.Hostname(),
		Port:     u.Port(),
		Protocol: protocol,
		Path:     path,
		Timeout:  time.Second,
		Insecure: insecure,
		Headers:  map[string]string{"X-Extra": "1"},
	}, Meta{RunID: "run-1", UserAgent: "mittload/test"})
	require.NoError(t, err)

	return p
}

func TestWebSocketKeepsQueryString(t *testing.T) {
	seen := make(chan wsRequest, 1)
	srv := httptest.NewServer(newWebSocketHandler(seen))
	defer srv.Close()

	o := newTestWebSocket(t, srv, config.ProtocolWebSocket, "/ws?token=abc&n={{ .Seq }}", false).Exec(context.Background(), 3)

	req := <-seen
	assert.Equal(t, "/ws", req.path)
	assert.Equal(t, "token=abc&n=3", req.query)
	assert.Equal(t, "1", req.extra)

	assert.Empty(t, o.Err)
	assert.True(t, o.Success())
	assert.Equal(t, http.StatusSwitchingProtocols, o.StatusCode)
	assert.Equal(t, "1", o.Sent.Get("X-Extra"))
	assert.Equal(t, "run-1", o.Sent.Get("X-Load-Run-Id"))
	assert.Empty(t, o.TLSVersion)
}

func TestWebSocketRejectedHandshake(t *testing.T) {
	seen := make(chan wsRequest, 1)
	srv := httptest.NewServer(newWebSocketHandler(seen))
	defer srv.Close()

	o := newTestWebSocket(t, srv, config.ProtocolWebSocket, "/other", false).Exec(context.Background(), 1)

	assert.Equal(t, "/other", (<-seen).path)
	assert.Equal(t, http.StatusNotFound, o.StatusCode)
	assert.Equal(t, "handshake rejected with status 404", o.Label())
	assert.False(t, o.Success())
}

func TestSecureWebSocket(t *testing.T) {
	seen := make(chan wsRequest, 2)
	srv := httptest.NewTLSServer(newWebSocketHandler(seen))
	defer srv.Close()

	o := newTestWebSocket(t, srv, config.ProtocolWebSocketS, "/ws", false).Exec(context.Background(), 1)
	assert.NotEmpty(t, o.Err)
	assert.False(t, o.Success())

	o = newTestWebSocket(t, srv, config.ProtocolWebSocketS, "/ws", true).Exec(context.Background(), 2)
	assert.Empty(t, o.Err)
	assert.True(t, o.Success())
	assert.NotEmpty(t, o.TLSVersion)
	assert.Equal(t, "/ws", (<-seen).path)
}
