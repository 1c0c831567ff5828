package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaultPort(t *testing.T) {
	assert.Equal(t, "80", SetDefaultPort("", "http"))
	assert.Equal(t, "443", SetDefaultPort("0", "https"))
	assert.Equal(t, "7", SetDefaultPort("", "tcp-connect"))
	assert.Equal(t, "443", SetDefaultPort("", "wss"))
	assert.Equal(t, "8080", SetDefaultPort("8080", "http"))
	assert.Equal(t, "", SetDefaultPort("", "gopher"))
}

func TestSetDefaultStringIfEmpty(t *testing.T) {
	assert.Equal(t, "/", SetDefaultStringIfEmpty("", "/", "path", "http"))
	assert.Equal(t, "/x", SetDefaultStringIfEmpty("/x", "/", "path", "http"))
}
