package config

import (
	"io/ioutil"
	"strings"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LoadLimits reads an HCL limits file and merges it into base. Numeric limits
// in the file may only tighten base; allow entries are appended to it.
func LoadLimits(path string, base Limits) (Limits, error) {
	if path == "" {
		return base, nil
	}

	log.Infof("reading limits from %s", path)

	contents, err := ioutil.ReadFile(path)
	if err != nil {
		return base, errors.Wrapf(err, "could not read limits file %s", path)
	}

	return ParseLimits(string(contents), base)
}

func ParseLimits(contents string, base Limits) (Limits, error) {
	file := LimitsFile{}
	if err := hcl.Decode(&file, contents); err != nil {
		return base, errors.Wrap(err, "could not parse limits")
	}

	limits := Limits{
		MaxRequests: base.MaxRequests,
		MaxThreads:  base.MaxThreads,
		MinDelay:    base.MinDelay,
		Allow:       append([]string{}, base.Allow...),
	}

	if file.MaxRequests != nil {
		limits.MaxRequests = tighterMax("maxRequests", *file.MaxRequests, base.MaxRequests)
	}

	if file.MaxThreads != nil {
		limits.MaxThreads = tighterMax("maxThreads", *file.MaxThreads, base.MaxThreads)
		if limits.MaxThreads < 1 {
			return base, errors.Errorf("maxThreads must be at least 1, got %d", *file.MaxThreads)
		}
	}

	if file.MinDelay != "" {
		d, err := time.ParseDuration(file.MinDelay)
		if err != nil {
			return base, errors.Wrapf(err, "invalid minDelay %q", file.MinDelay)
		}
		if d < base.MinDelay {
			log.WithFields(log.Fields{"kind": "limits", "field": "minDelay", "requested": d, "effective": base.MinDelay}).
				Warn("limits file cannot lower the built-in minimum")
			d = base.MinDelay
		}
		limits.MinDelay = d
	}

	for _, a := range file.Allow {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" && !contains(limits.Allow, a) {
			limits.Allow = append(limits.Allow, a)
		}
	}

	return limits, nil
}

func tighterMax(field string, requested, ceiling int) int {
	if requested > ceiling {
		log.WithFields(log.Fields{"kind": "limits", "field": field, "requested": requested, "effective": ceiling}).
			Warn("limits file cannot raise the built-in maximum")
		return ceiling
	}
	return requested
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if strings.EqualFold(e, s) {
			return true
		}
	}
	return false
}
