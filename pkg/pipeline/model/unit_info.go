package model

import "time"

type Outcome string

const (
	OutcomeOrdered    Outcome = "ordered"
	OutcomeNoPipeline Outcome = "no_pipeline"
	OutcomeReadFailed Outcome = "read_failed"
)

// Unit is a handler file paired with the directory whose files follow its pipeline.
type Unit struct {
	Name        string
	HandlerFile string
	Dir         string
}

// RankedFile is a directory entry with the position of its stage in the pipeline.
type RankedFile struct {
	Name    string
	Stem    string
	Rank    int
	Matched bool
}

// Durations of the phases of a unit.
type Durations struct {
	Read  time.Duration
	List  time.Duration
	Order time.Duration
}

// UnitInfo is the outcome of processing one unit.
type UnitInfo struct {
	Unit
	Outcome   Outcome
	Stages    []string
	Files     []RankedFile
	Err       error
	Durations Durations
}

// MatchedStages returns the set of stages that have at least one file.
func (u *UnitInfo) MatchedStages() map[string]struct{} {
	res := make(map[string]struct{})
	for _, f := range u.Files {
		if f.Matched {
			res[f.Stem] = struct{}{}
		}
	}

	return res
}
