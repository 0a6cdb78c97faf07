// Package model provides the data structures shared by the pipeline package and its run options.
// It defines the units of work processed by a run, the per-unit outcome,
// and the hooks a run option implements to observe a run.
package model
