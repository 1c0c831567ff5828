//go:build integration

package probe

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	mysqlHost     = flag.String("mysql.host", svcHost("127.0.0.1", "mysql"), "MySQL integration server host")
	mysqlPort     = flag.Uint("mysql.port", svcPort(13306, 3306), "MySQL integration server port")
	mysqlUsername = flag.String("mysql.username", "tester", "MySQL integration username")
	mysqlPassword = flag.String("mysql.password", "integration_test", "MySQL integration password")
	mysqlDatabase = flag.String("mysql.database", "integration", "MySQL integration database")
)

func TestMysqlProbeExecOk(t *testing.T) {
	subject := NewMySQLProbe(svcAddr(*mysqlHost, *mysqlPort), *mysqlUsername, *mysqlPassword, *mysqlDatabase, integrationTimeout)
	o := execOnce(subject)

	assert.Empty(t, o.Err, "Exec")
	assert.True(t, o.Connected)
}

func TestMysqlProbeWrongPassword(t *testing.T) {
	subject := NewMySQLProbe(svcAddr(*mysqlHost, *mysqlPort), *mysqlUsername, "wrong", *mysqlDatabase, integrationTimeout)
	o := execOnce(subject)

	assert.NotEmpty(t, o.Err, "Exec")
	assert.False(t, o.Success())
}
