package measure

import (
	"sync"
	"time"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

// DefaultMetric accumulates the phase durations of one unit across runs.
type DefaultMetric struct {
	mu        *sync.Mutex
	durations model.Durations
	runs      int64
}

func (mt *DefaultMetric) AddDurations(durations model.Durations) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.runs++
	mt.durations.Read += durations.Read
	mt.durations.List += durations.List
	mt.durations.Order += durations.Order
}

// Durations returns the average duration of each phase.
func (mt *DefaultMetric) Durations() model.Durations {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.runs == 0 {
		return model.Durations{}
	}

	return model.Durations{
		Read:  round(time.Duration(float64(mt.durations.Read) / float64(mt.runs))),
		List:  round(time.Duration(float64(mt.durations.List) / float64(mt.runs))),
		Order: round(time.Duration(float64(mt.durations.Order) / float64(mt.runs))),
	}
}

// Total returns the sum of the average phase durations.
func (mt *DefaultMetric) Total() time.Duration {
	d := mt.Durations()

	return d.Read + d.List + d.Order
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Hour)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
