package measure

import (
	"sort"
	"sync"
)

type DefaultMeasure struct {
	mu    sync.RWMutex
	Units map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Units: make(map[string]Metric),
	}
}

// AddMetric returns the metric of unitName, creating it on first use.
func (m *DefaultMeasure) AddMetric(unitName string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mt, ok := m.Units[unitName]; ok {
		return mt
	}
	mt := &DefaultMetric{
		mu: &sync.Mutex{},
	}
	m.Units[unitName] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(unitName string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Units[unitName]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make(map[string]Metric, len(m.Units))
	for name, mt := range m.Units {
		res[name] = mt
	}

	return res
}

// Slowest returns the names of the n units with the largest total duration, slowest first.
func Slowest(m Measure, n int) []string {
	all := m.AllMetrics()
	names := make([]string, 0, len(all))
	totals := make(map[string]int64, len(all))
	for name, mt := range all {
		names = append(names, name)
		totals[name] = int64(mt.Total())
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
	if n >= 0 && n < len(names) {
		names = names[:n]
	}

	return names
}

var _ Measure = (*DefaultMeasure)(nil)
