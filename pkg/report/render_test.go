package report

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"github.com/mittwald/mittload/pkg/probe"
	"github.com/stretchr/testify/assert"
)

func TestSummaryOutputAllSuccessful(t *testing.T) {
	buf := &bytes.Buffer{}
	s := Tally(outcomes(200, 200, 200, 200, 200, 200, 200, 200, 200, 200))

	NewRenderer(buf).Summary("TEST SUMMARY", s, 2*time.Second)

	out := buf.String()
	assert.Contains(t, out, "TEST SUMMARY")
	assert.Contains(t, out, "Total requests: 10\n")
	assert.Contains(t, out, "Successful responses: 10\n")
	assert.Contains(t, out, "Error responses: 0\n")
	assert.Contains(t, out, "Success rate: 100.00%\n")
	assert.Contains(t, out, "Total duration: 2.00 seconds\n")
	assert.Contains(t, out, "Requests per second: 5.00\n")
	assert.Contains(t, out, "  200: 10 (100.00%)\n")
}

func TestSummaryOutputWithoutRequests(t *testing.T) {
	buf := &bytes.Buffer{}

	NewRenderer(buf).Summary("TEST SUMMARY", Tally(nil), 0)

	out := buf.String()
	assert.Contains(t, out, "Success rate: 0.00%\n")
	assert.Contains(t, out, "Requests per second: 0.00\n")
	assert.NotContains(t, out, "Response code distribution")
}

func TestProgressAndDetail(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf)

	r.Progress(3, 10, probe.Outcome{StatusCode: 404})
	r.Detail(probe.Outcome{
		StatusCode: 200,
		Bytes:      12,
		Latency:    1500 * time.Millisecond,
		Headers:    http.Header{"Server": {"test"}, "Content-Type": {"text/plain"}},
	})

	out := buf.String()
	assert.Contains(t, out, "[3/10] Response: 404\n")
	assert.Contains(t, out, "  Time: 1.5000 seconds\n")
	assert.Contains(t, out, "  Size: 12 bytes\n")
	assert.Contains(t, out, "    Content-Type: text/plain\n    Server: test\n")
}

func TestParametersAreAligned(t *testing.T) {
	buf := &bytes.Buffer{}

	NewRenderer(buf).Parameters([]Param{{"Target URL", "http://localhost/"}, {"Threads", "2"}})

	assert.Equal(t, "Target URL: http://localhost/\nThreads:    2\n\n", buf.String())
}

func TestDetailPrintsSentHeadersForFailures(t *testing.T) {
	buf := &bytes.Buffer{}
	r := NewRenderer(buf)

	r.Detail(probe.Outcome{
		Err:     "connection refused",
		Latency: 250 * time.Millisecond,
		Sent:    http.Header{"User-Agent": {"mittload/test"}, "X-Testing-Purpose": {"Educational"}},
	})

	out := buf.String()
	assert.Contains(t, out, "  Time: 0.2500 seconds\n")
	assert.Contains(t, out, "  Headers sent:\n    User-Agent: mittload/test\n    X-Testing-Purpose: Educational\n")
	assert.NotContains(t, out, "Headers received")
	assert.NotContains(t, out, "Size:")
}

func TestTimestamp(t *testing.T) {
	buf := &bytes.Buffer{}
	NewRenderer(buf).Timestamp("Started at", time.Date(2024, 3, 1, 14, 5, 9, 0, time.Local))

	assert.Equal(t, "Started at: 2024-03-01 14:05:09\n", buf.String())
}
