package pipeline

import (
	"go.uber.org/zap"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

type RunnerOption func(r *Runner)

// RunnerConcurrency sets how many units are processed at the same time.
func RunnerConcurrency(concurrent int) RunnerOption {
	return func(r *Runner) {
		r.concurrent = concurrent
	}
}

func RunnerLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// RunnerHandlerFile sets the base name Show accepts.
func RunnerHandlerFile(name string) RunnerOption {
	return func(r *Runner) {
		r.handlerFile = name
	}
}

// RunnerRunOptions registers options observing every run.
func RunnerRunOptions(opts ...model.RunOption) RunnerOption {
	return func(r *Runner) {
		r.opts = append(r.opts, opts...)
	}
}
