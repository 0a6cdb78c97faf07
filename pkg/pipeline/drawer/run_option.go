package drawer

import (
	"github.com/pkg/errors"

	"github.com/askiada/sort-pipeline/pkg/pipeline/measure"
	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

type runDrawer struct {
	Drawer
	m measure.Measure
}

func (rd *runDrawer) New() error {
	return nil
}

func (rd *runDrawer) OnUnit(info *model.UnitInfo) error {
	return rd.AddUnit(info)
}

func (rd *runDrawer) Finish() error {
	if rd.m != nil {
		err := rd.AddMeasure(rd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := rd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipelines")
	}

	return nil
}

// RunDrawer draws every ordered unit of a run. When measure is not nil, units are labelled with their durations.
func RunDrawer(drawer Drawer, measure measure.Measure) model.RunOption {
	return &runDrawer{drawer, measure}
}
