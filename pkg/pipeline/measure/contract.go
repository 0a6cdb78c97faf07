package measure

import (
	"time"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

type Measure interface {
	AddMetric(unitName string) Metric
	GetMetric(unitName string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	AddDurations(durations model.Durations)
	Durations() model.Durations
	Total() time.Duration
}
