package report

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/mittload/pkg/probe"
)

const rule = 50

// Param is one line of the parameter block printed before a run.
type Param struct {
	Name  string
	Value string
}

// Renderer prints human readable output. Colors are only used when out is a
// terminal.
type Renderer struct {
	out    io.Writer
	styles styles
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

func (r *Renderer) Banner(title string, lines ...string) {
	body := append([]string{r.styles.warning.Render(title), ""}, lines...)
	fmt.Fprintln(r.out, r.styles.banner.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))
}

func (r *Renderer) Parameters(params []Param) {
	width := 0
	for _, p := range params {
		if len(p.Name) > width {
			width = len(p.Name)
		}
	}

	for _, p := range params {
		fmt.Fprintf(r.out, "%-*s %s\n", width+1, p.Name+":", r.styles.highlight.Render(p.Value))
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.styles.warning.Render(fmt.Sprintf(format, args...)))
}

func (r *Renderer) Error(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.styles.failed.Render(fmt.Sprintf(format, args...)))
}

func (r *Renderer) Info(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Progress prints one line per collected outcome.
func (r *Renderer) Progress(done, total int, o probe.Outcome) {
	label := o.Label()
	if o.Success() {
		label = r.styles.success.Render(label)
	} else {
		label = r.styles.failed.Render(label)
	}

	fmt.Fprintf(r.out, "[%d/%d] Response: %s\n", done, total, label)
}

const timestampLayout = "2006-01-02 15:04:05"

func (r *Renderer) Timestamp(label string, t time.Time) {
	fmt.Fprintf(r.out, "%s: %s\n", label, t.Format(timestampLayout))
}

// Detail prints latency, size and headers of an outcome.
func (r *Renderer) Detail(o probe.Outcome) {
	fmt.Fprintf(r.out, "  Time: %.4f seconds\n", o.Latency.Seconds())
	r.headers("Headers sent", o.Sent)
	if o.Err != "" {
		return
	}

	if o.StatusCode != 0 {
		fmt.Fprintf(r.out, "  Size: %d bytes\n", o.Bytes)
	}
	if o.TLSVersion != "" {
		fmt.Fprintf(r.out, "  TLS protocol: %s\n", o.TLSVersion)
	}

	r.headers("Headers received", o.Headers)
}

func (r *Renderer) headers(title string, h http.Header) {
	if len(h) == 0 {
		return
	}

	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Fprintf(r.out, "  %s:\n", title)
	for _, k := range names {
		fmt.Fprintf(r.out, "    %s: %s\n", k, r.styles.muted.Render(strings.Join(h[k], ", ")))
	}
}

func (r *Renderer) Summary(title string, s Summary, elapsed time.Duration) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, strings.Repeat("=", rule))
	fmt.Fprintln(r.out, r.styles.heading.Render(title))
	fmt.Fprintln(r.out, strings.Repeat("=", rule))

	rate := fmt.Sprintf("%.2f%%", s.SuccessRate())
	if s.Failed == 0 && s.Total > 0 {
		rate = r.styles.success.Render(rate)
	} else if s.Successful == 0 {
		rate = r.styles.failed.Render(rate)
	}

	fmt.Fprintf(r.out, "Total requests: %d\n", s.Total)
	fmt.Fprintf(r.out, "Successful responses: %d\n", s.Successful)
	fmt.Fprintf(r.out, "Error responses: %d\n", s.Failed)
	fmt.Fprintf(r.out, "Success rate: %s\n", rate)
	fmt.Fprintf(r.out, "Total duration: %.2f seconds\n", elapsed.Seconds())
	fmt.Fprintf(r.out, "Requests per second: %.2f\n", s.Throughput(elapsed))

	if len(s.Buckets) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Response code distribution:")
		for _, b := range s.Buckets {
			fmt.Fprintf(r.out, "  %s: %d (%.2f%%)\n", b.Label, b.Count, Percent(b.Count, s.Total))
		}
	}

	fmt.Fprintln(r.out, strings.Repeat("=", rule))
}
