//go:build integration

package probe

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	mongodbHost     = flag.String("mongodb.host", svcHost("127.0.0.1", "mongo"), "MongoDB integration server host")
	mongodbPort     = flag.Uint("mongodb.port", svcPort(17017, 27017), "MongoDB integration server port")
	mongodbDatabase = flag.String("mongodb.database", "integration", "MongoDB integration database")
)

func TestMongoDBProbeExecOk(t *testing.T) {
	o := execOnce(NewMongoDBProbe(svcAddr(*mongodbHost, *mongodbPort), "", "", *mongodbDatabase, integrationTimeout))

	assert.Empty(t, o.Err, "Exec")
	assert.True(t, o.Connected)
}
