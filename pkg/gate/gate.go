// Package gate decides whether a target may be probed at all.
package gate

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
)

type Decision int

const (
	Denied Decision = iota
	Permitted
	Aborted
)

func (d Decision) String() string {
	switch d {
	case Permitted:
		return "permitted"
	case Aborted:
		return "aborted"
	default:
		return "denied"
	}
}

var (
	// ErrDenied is returned for targets outside the allow-list when no
	// override was requested.
	ErrDenied = errors.New("target is not in the allow-list")

	// ErrAborted is returned when the operator declines a confirmation.
	ErrAborted = errors.New("test aborted")
)

const BypassQuestion = "Do you confirm you have permission to test this target? (yes/no): "

type Confirmer interface {
	Confirm(question string) (bool, error)
}

type Gate struct {
	allow     []string
	confirmer Confirmer
}

func New(allow []string, confirmer Confirmer) *Gate {
	normalized := make([]string, 0, len(allow))
	for _, a := range allow {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(a)))
	}

	return &Gate{allow: normalized, confirmer: confirmer}
}

func (g *Gate) Allowed(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	for _, a := range g.allow {
		if a == host {
			return true
		}
	}
	return false
}

func (g *Gate) Check(host string, bypass bool) (Decision, error) {
	if g.Allowed(host) {
		log.WithFields(log.Fields{"kind": "gate", "host": host}).Debug("target permitted")
		return Permitted, nil
	}

	if !bypass {
		log.WithFields(log.Fields{"kind": "gate", "host": host}).Debug("target denied")
		return Denied, ErrDenied
	}

	log.WithFields(log.Fields{"kind": "gate", "host": host}).Warn("allow-list check bypassed")

	if g.confirmer == nil {
		return Aborted, ErrAborted
	}

	ok, err := g.confirmer.Confirm(BypassQuestion)
	if err != nil {
		return Aborted, err
	}
	if !ok {
		return Aborted, ErrAborted
	}

	return Permitted, nil
}
