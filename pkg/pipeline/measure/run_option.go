package measure

import (
	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

type runMeasure struct {
	Measure
}

func (rm *runMeasure) New() error {
	return nil
}

func (rm *runMeasure) OnUnit(info *model.UnitInfo) error {
	rm.AddMetric(info.Name).AddDurations(info.Durations)

	return nil
}

func (rm *runMeasure) Finish() error {
	return nil
}

// RunMeasure records the phase durations of every unit into measure.
func RunMeasure(measure Measure) model.RunOption {
	return &runMeasure{measure}
}
