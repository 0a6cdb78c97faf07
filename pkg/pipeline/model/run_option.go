package model

// RunOption defines the interface for run options.
// OnUnit may be called concurrently from several goroutines.
type RunOption interface {
	// New initialises the run option before any unit is processed.
	New() error
	// OnUnit runs every time a unit has been processed, whatever its outcome.
	OnUnit(info *UnitInfo) error
	// Finish runs after every unit has been processed.
	Finish() error
}
