package drawer

import (
	"github.com/askiada/sort-pipeline/pkg/pipeline/measure"
	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

// Drawer is an interface that defines the methods for drawing the pipelines of a run.
type Drawer interface {
	// AddUnit adds the pipeline of an ordered unit to the drawer.
	AddUnit(info *model.UnitInfo) error
	// AddMeasure labels every unit with its measured duration.
	AddMeasure(measure measure.Measure) error
	// Draw creates a file with the pipelines graph.
	Draw() error
}
