package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/mittwald/mittload/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type loadFlags struct {
	url      string
	target   string
	port     int
	protocol string
	path     string

	requests int
	threads  int
	timeout  time.Duration
	delay    time.Duration

	headers  []string
	user     string
	password string
	database string
	vhost    string
	insecure bool

	bypassAllowList bool
	assumeYes       bool
	verbose         bool
}

type loadDefaults struct {
	target   string
	requests int
	threads  int
	timeout  time.Duration
	delay    time.Duration
	limits   config.Limits
}

func bindLoadFlags(cmd *cobra.Command, f *loadFlags, d loadDefaults) {
	flags := cmd.Flags()

	flags.StringVar(&f.url, "url", "", "target URL, e.g. http://127.0.0.1:8080/health (alternative to --target)")
	flags.StringVar(&f.target, "target", d.target, "target host")
	flags.IntVar(&f.port, "port", 0, "target port (default depends on the protocol)")
	flags.StringVar(&f.protocol, "protocol", "", "protocol: http, https, tcp-connect, ws, wss, redis, mysql, mongodb, amqp, smtp (icmp is an alias for tcp-connect)")
	flags.StringVar(&f.path, "path", "/", "request path for http, https, ws and wss; may contain {{ .Seq }} and sprig functions")

	flags.IntVar(&f.requests, "requests", d.requests, "number of requests (max: "+strconv.Itoa(d.limits.MaxRequests)+")")
	if d.limits.MaxThreads > 1 {
		flags.IntVar(&f.threads, "threads", d.threads, "number of concurrent workers (max: "+strconv.Itoa(d.limits.MaxThreads)+")")
	} else {
		f.threads = 1
	}
	flags.DurationVar(&f.timeout, "timeout", d.timeout, "timeout per request")
	flags.DurationVar(&f.delay, "delay", d.delay, "delay between submitting requests (min: "+d.limits.MinDelay.String()+")")

	flags.StringArrayVarP(&f.headers, "header", "H", nil, "additional request header for http and ws as 'Key: Value', can be repeated")
	flags.StringVar(&f.user, "user", "", "user for redis, mysql, mongodb and amqp probes")
	flags.StringVar(&f.password, "password", "", "password for redis, mysql, mongodb and amqp probes")
	flags.StringVar(&f.database, "database", "", "database for mysql and mongodb probes")
	flags.StringVar(&f.vhost, "vhost", "", "virtual host for amqp probes")
	flags.BoolVar(&f.insecure, "insecure", false, "skip TLS certificate verification for https and wss")

	flags.BoolVar(&f.bypassAllowList, "bypass-whitelist", false, "allow targets outside the allow-list after an interactive confirmation")
	flags.BoolVarP(&f.assumeYes, "yes", "y", false, "do not ask before starting the test")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "print time, size and headers of every response")
}

// options turns the flag values of cmd into Options. An explicit --path wins
// over the path part of --url.
func (f *loadFlags) options(cmd *cobra.Command) (config.Options, error) {
	opts := config.Options{
		Credentials: config.Credentials{
			User:     f.user,
			Password: f.password,
		},
		Target:          f.target,
		Protocol:        config.Protocol(f.protocol),
		Path:            f.path,
		Requests:        f.requests,
		Threads:         f.threads,
		Timeout:         f.timeout,
		Delay:           f.delay,
		Database:        f.database,
		VirtualHost:     f.vhost,
		Insecure:        f.insecure,
		BypassAllowList: f.bypassAllowList,
		AssumeYes:       f.assumeYes,
		Verbose:         f.verbose,
	}

	if f.port != 0 {
		opts.Port = strconv.Itoa(f.port)
	}

	if f.url != "" {
		if cmd.Flags().Changed("target") {
			return opts, errors.New("use either --url or --target, not both")
		}

		t, err := config.ParseTarget(f.url)
		if err != nil {
			return opts, err
		}

		opts.Target = t.Host
		if opts.Port == "" {
			opts.Port = t.Port
		}
		if opts.Protocol == "" {
			opts.Protocol = config.Protocol(t.Scheme)
		}
		if !cmd.Flags().Changed("path") && t.Path != "" {
			opts.Path = t.Path
		}
	}

	if opts.Target == "" {
		return opts, errors.New("either --url or --target is required")
	}

	if opts.Timeout <= 0 {
		return opts, errors.Errorf("timeout must be positive, got %s", opts.Timeout)
	}

	headers, err := parseHeaders(f.headers)
	if err != nil {
		return opts, err
	}
	opts.Headers = headers

	return opts, nil
}

func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, errors.Errorf("invalid header %q, expected 'Key: Value'", h)
		}
		headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}

	return headers, nil
}
