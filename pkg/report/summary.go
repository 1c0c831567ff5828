// Package report aggregates probe outcomes and prints them.
package report

import (
	"time"

	"github.com/mittwald/mittload/pkg/probe"
)

type Bucket struct {
	Label string
	Count int
}

type Summary struct {
	Total      int
	Successful int
	Failed     int

	// Buckets counts outcomes per label, in the order labels were first seen.
	Buckets []Bucket
}

// Tally classifies outcomes as successful or failed and groups them by label.
func Tally(outcomes []probe.Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	index := make(map[string]int)

	for _, o := range outcomes {
		if o.Success() {
			s.Successful++
		} else {
			s.Failed++
		}

		label := o.Label()
		i, ok := index[label]
		if !ok {
			i = len(s.Buckets)
			index[label] = i
			s.Buckets = append(s.Buckets, Bucket{Label: label})
		}
		s.Buckets[i].Count++
	}

	return s
}

// SuccessRate is the share of successful outcomes in percent, 0 if there are none.
func (s Summary) SuccessRate() float64 {
	return Percent(s.Successful, s.Total)
}

// Throughput is the number of collected outcomes per second of elapsed time.
func (s Summary) Throughput(elapsed time.Duration) float64 {
	if s.Total == 0 || elapsed <= 0 {
		return 0
	}
	return float64(s.Total) / elapsed.Seconds()
}

func (s Summary) Count(label string) int {
	for _, b := range s.Buckets {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

func Percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
