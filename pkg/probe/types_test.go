package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeClassification(t *testing.T) {
	tests := []struct {
		outcome Outcome
		label   string
		success bool
	}{
		{Outcome{StatusCode: 200}, "200", true},
		{Outcome{StatusCode: 302}, "302", true},
		{Outcome{StatusCode: 399}, "399", true},
		{Outcome{StatusCode: 400}, "400", false},
		{Outcome{StatusCode: 404}, "404", false},
		{Outcome{StatusCode: 199}, "199", false},
		{Outcome{Connected: true}, "connected", true},
		{Outcome{StatusCode: 101, Connected: true}, "connected", true},
		{Outcome{Err: "dial tcp: connection refused"}, "dial tcp: connection refused", false},
		{Outcome{StatusCode: 200, Err: "read: reset"}, "read: reset", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, tt.outcome.Label())
		assert.Equal(t, tt.success, tt.outcome.Success(), tt.label)
	}
}
