package probe

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/mittwald/mittload/internal/helper"
	"github.com/pkg/errors"
)

type pathData struct {
	Seq   int
	RunID string
}

// PathTemplate renders the request path for each request. Paths without
// template actions are returned unchanged.
type PathTemplate struct {
	raw string
	tpl *template.Template
}

func NewPathTemplate(path string) (*PathTemplate, error) {
	path = helper.SetDefaultStringIfEmpty(path, "/", "path", "probe")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	p := &PathTemplate{raw: path}
	if !strings.Contains(path, "{{") {
		return p, nil
	}

	tpl, err := template.New("path").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid path template %q", path)
	}
	p.tpl = tpl

	return p, nil
}

func (p *PathTemplate) Render(seq int, runID string) (string, error) {
	if p.tpl == nil {
		return p.raw, nil
	}

	buf := bytes.Buffer{}
	if err := p.tpl.Execute(&buf, pathData{Seq: seq, RunID: runID}); err != nil {
		return "", errors.Wrap(err, "failed to render path")
	}

	return buf.String(), nil
}

func (p *PathTemplate) String() string {
	return p.raw
}
