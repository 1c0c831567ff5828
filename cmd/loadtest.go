package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mittwald/mittload/internal/config"
	"github.com/mittwald/mittload/internal/helper"
	"github.com/mittwald/mittload/pkg/dispatch"
	"github.com/mittwald/mittload/pkg/gate"
	"github.com/mittwald/mittload/pkg/probe"
	"github.com/mittwald/mittload/pkg/report"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	proceedQuestion = "Proceed with the test? (yes/no): "
	closingMessage  = "Test complete. Thank you for using this tool responsibly."
)

// loadTest is one run of the run or simulate command.
type loadTest struct {
	title        string
	summaryTitle string
	limits       config.Limits

	in  io.Reader
	out io.Writer
}

func (lt *loadTest) Run(ctx context.Context, opts config.Options) error {
	r := report.NewRenderer(lt.out)
	prompt := gate.WithContext(ctx, gate.NewPrompt(lt.in, lt.out))

	r.Banner(lt.title,
		"WARNING: This tool should only be used in controlled environments",
		"against targets you own or have explicit permission to test.",
		"",
		"By default, only connections to "+lt.limits.AllowListString()+" are allowed.",
	)

	resolved := lt.limits.Resolve(opts)
	for _, c := range resolved.Clamped {
		log.WithFields(log.Fields{"kind": "limits", "field": c.Field, "requested": c.Requested, "effective": c.Effective}).
			Warn("requested value exceeds the safety limit")
		r.Warning("Requested %s %s is outside the safety limit, using %s.", c.Field, c.Requested, c.Effective)
	}

	if !resolved.Protocol.Valid() {
		return errors.Errorf("unsupported protocol %q", opts.Protocol)
	}
	if strings.EqualFold(string(opts.Protocol), string(config.ProtocolICMP)) {
		r.Warning("Note: icmp does not send ICMP packets, a TCP connect probe is used instead.")
	}
	resolved.Port = helper.SetDefaultPort(resolved.Port, string(resolved.Protocol))

	g := gate.New(lt.limits.Allow, prompt)
	if resolved.BypassAllowList && !g.Allowed(resolved.Target) {
		r.Warning("WARNING: Allow-list check bypassed. Ensure you have permission to test this target.")
	}

	if _, err := g.Check(resolved.Target, resolved.BypassAllowList); err != nil {
		switch {
		case errors.Is(err, gate.ErrDenied):
			r.Error("ERROR: Target %s is not in the allow-list.", resolved.Target)
			r.Info("Only connections to %s are allowed by default.", lt.limits.AllowListString())
			r.Info("If you are testing a server you own or have permission to test, use --bypass-whitelist.")
			r.Info("IMPORTANT: Testing servers without permission is illegal and unethical.")
		case errors.Is(err, gate.ErrAborted):
			r.Info("Test aborted.")
		case errors.Is(err, gate.ErrInterrupted):
			r.Warning("\nTest interrupted by user.")
			return nil
		}
		return err
	}

	p, err := probe.New(resolved.Options, probe.Meta{RunID: uuid.New().String(), UserAgent: userAgent()})
	if err != nil {
		return err
	}
	defer probe.Close(p)

	r.Parameters(parameters(resolved))

	if !resolved.AssumeYes {
		ok, err := prompt.Confirm(proceedQuestion)
		if errors.Is(err, gate.ErrInterrupted) {
			r.Warning("\nTest interrupted by user.")
			return nil
		}
		if err != nil {
			return err
		}
		if !ok {
			r.Info("Test aborted.")
			return gate.ErrAborted
		}
	}

	r.Info("\nSending %d requests to %s...", resolved.Requests, describeTarget(resolved.Options))

	d := dispatch.New(p, resolved.Threads, resolved.Delay)

	start := time.Now()
	if resolved.Verbose {
		r.Timestamp("Started at", start)
	}

	res := d.Run(ctx, resolved.Requests, func(done int, o probe.Outcome) {
		r.Progress(done, resolved.Requests, o)
		if resolved.Verbose {
			r.Detail(o)
		}
	})
	elapsed := time.Since(start)

	if resolved.Verbose {
		r.Timestamp("Ended at", start.Add(elapsed))
	}

	if res.Interrupted {
		r.Warning("\nTest interrupted by user after %d of %d responses.", len(res.Outcomes), resolved.Requests)
	}

	r.Summary(lt.summaryTitle, report.Tally(res.Outcomes), elapsed)
	return nil
}

func parameters(opts config.Resolved) []report.Param {
	params := []report.Param{
		{Name: "Target", Value: describeTarget(opts.Options)},
		{Name: "Protocol", Value: string(opts.Protocol)},
		{Name: "Number of requests", Value: fmt.Sprint(opts.Requests)},
		{Name: "Concurrent workers", Value: fmt.Sprint(opts.Threads)},
		{Name: "Request timeout", Value: opts.Timeout.String()},
		{Name: "Submission delay", Value: opts.Delay.String()},
	}

	if len(opts.Headers) > 0 {
		names := make([]string, 0, len(opts.Headers))
		for k := range opts.Headers {
			names = append(names, k)
		}
		sort.Strings(names)
		params = append(params, report.Param{Name: "Extra headers", Value: strings.Join(names, ", ")})
	}

	return params
}

func describeTarget(opts config.Options) string {
	host := opts.Target
	if opts.Port != "" {
		host = net.JoinHostPort(opts.Target, opts.Port)
	}

	switch opts.Protocol {
	case config.ProtocolHTTP, config.ProtocolHTTPS, config.ProtocolWebSocket, config.ProtocolWebSocketS:
		path := opts.Path
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return string(opts.Protocol) + "://" + host + path
	}

	return host
}
