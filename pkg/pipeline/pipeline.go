package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

const (
	defaultConcurrency = 4
	defaultHandlerFile = "_handlers.ts"
)

// Runner orders the directories of many units.
type Runner struct {
	fs          billy.Filesystem
	opts        []model.RunOption
	logger      *zap.Logger
	handlerFile string
	concurrent  int
}

// New creates a new runner reading from fs.
func New(fs billy.Filesystem, opts ...RunnerOption) (*Runner, error) {
	if fs == nil {
		return nil, ErrFilesystemMustBeSet
	}
	r := &Runner{
		fs:          fs,
		logger:      zap.NewNop(),
		handlerFile: defaultHandlerFile,
		concurrent:  defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrent < 1 {
		return nil, ErrInvalidConcurrency
	}

	return r, nil
}

// Run processes every unit and waits for them to finish.
// A unit that cannot be read is reported in the summary and does not stop the others.
// When ctx is cancelled no further unit is started; if units were skipped the partial summary is
// returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, units []model.Unit) (*Summary, error) {
	if r == nil {
		return nil, ErrRunnerMustBeSet
	}
	for _, opt := range r.opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply run option")
		}
	}

	infos := make([]*model.UnitInfo, len(units))
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(r.concurrent)
	for idx := range units {
		if dCtx.Err() != nil {
			break
		}
		localIdx := idx
		errGrp.Go(func() error {
			// the slot may have been granted after cancellation
			if dCtx.Err() != nil {
				return nil
			}
			info := r.process(units[localIdx])
			infos[localIdx] = info
			for _, opt := range r.opts {
				err := opt.OnUnit(info)
				if err != nil {
					return errors.Wrapf(err, "unable to observe unit %s", info.Name)
				}
			}

			return nil
		})
	}
	err := errGrp.Wait()
	if err != nil {
		return newSummary(infos), err
	}

	summary := newSummary(infos)
	if summary.Skipped > 0 && ctx.Err() != nil {
		return summary, errors.Wrap(ctx.Err(), "run interrupted")
	}

	return summary, r.finishRun()
}

func (r *Runner) finishRun() error {
	for _, opt := range r.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish run option")
		}
	}

	return nil
}

func (r *Runner) process(unit model.Unit) *model.UnitInfo {
	info := &model.UnitInfo{Unit: unit}
	logger := r.logger.With(zap.String("unit", unit.Name))

	start := time.Now()
	stages, err := ReadHandler(r.fs, unit.HandlerFile)
	info.Durations.Read = time.Since(start)
	if err != nil {
		return r.failed(logger, info, err)
	}
	info.Stages = stages
	if len(stages) == 0 {
		info.Outcome = model.OutcomeNoPipeline
		logger.Info("no pipeline found", zap.String("handler", unit.HandlerFile))

		return info
	}

	start = time.Now()
	files, err := ListEntries(r.fs, unit.Dir)
	info.Durations.List = time.Since(start)
	if err != nil {
		return r.failed(logger, info, err)
	}

	start = time.Now()
	info.Files = Rank(files, stages)
	info.Durations.Order = time.Since(start)
	info.Outcome = model.OutcomeOrdered
	logger.Info("directory ordered",
		zap.String("dir", unit.Dir),
		zap.Strings("stages", stages),
		zap.Int("files", len(info.Files)),
	)

	return info
}

func (r *Runner) failed(logger *zap.Logger, info *model.UnitInfo, err error) *model.UnitInfo {
	info.Outcome = model.OutcomeReadFailed
	info.Err = err
	logger.Warn("unit skipped", zap.Error(err))

	return info
}

// Show extracts the pipeline of the handler file at path and writes it to sink.
func (r *Runner) Show(path string, sink Sink) (StageSequence, error) {
	if r == nil {
		return nil, ErrRunnerMustBeSet
	}
	if sink == nil {
		return nil, ErrSinkMustBeSet
	}
	if filepath.Base(path) != r.handlerFile {
		return nil, errors.Wrapf(ErrNotHandlerFile, "%s is not %s", path, r.handlerFile)
	}
	stages, err := ReadHandler(r.fs, path)
	if err != nil {
		return nil, err
	}
	err = WriteStageOrder(sink, stages)
	if err != nil {
		return nil, errors.Wrap(err, "unable to write pipeline order")
	}

	return stages, nil
}
