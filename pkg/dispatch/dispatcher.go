// Package dispatch fans probe executions out to a bounded pool of workers.
package dispatch

import (
	"context"
	"time"

	"github.com/mittwald/mittload/pkg/probe"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// ResultFunc is called once per completed probe, in completion order. done is
// the number of outcomes collected so far, including o.
type ResultFunc func(done int, o probe.Outcome)

type Result struct {
	Outcomes    []probe.Outcome
	Submitted   int
	Interrupted bool
}

type Dispatcher struct {
	probe   probe.Probe
	threads int
	delay   time.Duration
}

func New(p probe.Probe, threads int, delay time.Duration) *Dispatcher {
	if threads < 1 {
		threads = 1
	}

	return &Dispatcher{
		probe:   p,
		threads: threads,
		delay:   delay,
	}
}

// Run submits n probe executions, pausing for the configured delay between
// submissions. At most threads executions run at the same time. Outcomes are
// consumed as they complete.
//
// Cancelling ctx stops submitting and collecting immediately. Executions that
// are already running are abandoned, not cancelled; their outcomes are
// discarded.
func (d *Dispatcher) Run(ctx context.Context, n int, onResult ResultFunc) Result {
	if n <= 0 {
		return Result{}
	}

	results := make(chan probe.Outcome, n)
	collected := make(chan []probe.Outcome, 1)
	sem := semaphore.NewWeighted(int64(d.threads))

	go func() {
		outcomes := make([]probe.Outcome, 0, n)
		defer func() { collected <- outcomes }()

		for len(outcomes) < n {
			select {
			case o := <-results:
				outcomes = append(outcomes, o)
				if onResult != nil {
					onResult(len(outcomes), o)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	submitted := d.submit(ctx, n, sem, results)

	outcomes := <-collected
	res := Result{
		Outcomes:    outcomes,
		Submitted:   submitted,
		Interrupted: len(outcomes) < n,
	}

	log.WithFields(log.Fields{"kind": "dispatch", "submitted": submitted, "collected": len(outcomes)}).Debug("dispatch finished")
	return res
}

func (d *Dispatcher) submit(ctx context.Context, n int, sem *semaphore.Weighted, results chan<- probe.Outcome) int {
	// detached so that an interrupt does not reach running executions
	taskCtx := context.Background()

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return i
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			return i
		}

		seq := i + 1
		go func() {
			defer sem.Release(1)
			results <- d.probe.Exec(taskCtx, seq)
		}()

		log.WithFields(log.Fields{"kind": "dispatch", "seq": seq}).Debug("submitted")

		if i == n-1 {
			break
		}

		if !sleep(ctx, d.delay) {
			return i + 1
		}
	}

	return n
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
