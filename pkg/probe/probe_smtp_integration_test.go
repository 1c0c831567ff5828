//go:build integration

package probe

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	smtpHost = flag.String("smtp.host", svcHost("127.0.0.1", "smtp"), "SMTP integration server host")
	smtpPort = flag.Uint("smtp.port", svcPort(12525, 1025), "SMTP integration server port")
)

func TestSmtpProbeExecOk(t *testing.T) {
	o := execOnce(NewSmtpProbe(svcAddr(*smtpHost, *smtpPort), integrationTimeout))

	assert.Empty(t, o.Err, "Exec")
	assert.True(t, o.Connected)
}
