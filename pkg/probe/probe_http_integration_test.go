//go:build integration

package probe

import (
	"flag"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	httpHost = flag.String("http.host", svcHost("127.0.0.1", "http"), "HTTP integration server host")
	httpPort = flag.Uint("http.port", svcPort(18080, 80), "HTTP integration server port")
)

func TestHttpProbeExecOk(t *testing.T) {
	o := execOnce(newHttpIntegrationSubject(t, "/anything"))

	assert.Empty(t, o.Err)
	assert.True(t, o.Success())
}

func TestHttpProbeExecErrorStatusCode(t *testing.T) {
	o := execOnce(newHttpIntegrationSubject(t, "/status/503"))

	assert.Equal(t, 503, o.StatusCode)
	assert.False(t, o.Success())
}

func newHttpIntegrationSubject(t *testing.T, path string) *httpProbe {
	tpl, err := NewPathTemplate(path)
	require.NoError(t, err)

	return NewHttpProbe(HTTPConfig{
		Scheme:  "http",
		Host:    *httpHost,
		Port:    strconv.FormatUint(uint64(*httpPort), 10),
		Path:    tpl,
		Timeout: integrationTimeout,
		Meta:    Meta{UserAgent: "mittload/integration"},
	})
}
