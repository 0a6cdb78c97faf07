package pipeline

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

// Sink receives the display lines produced by a run.
type Sink interface {
	AppendLine(line string) error
}

// WriterSink writes each line to an io.Writer.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) AppendLine(line string) error {
	_, err := fmt.Fprintln(s.w, line)
	if err != nil {
		return errors.Wrap(err, "unable to write line")
	}

	return nil
}

// Collector keeps every line in memory.
type Collector struct {
	mu    sync.Mutex
	lines []string
}

func (c *Collector) AppendLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)

	return nil
}

// Lines returns a copy of the collected lines.
func (c *Collector) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.lines...)
}

const (
	stageOrderHeader = "Pipeline order:"
	noPipelineLine   = "No pipeline found"
)

// WriteStageOrder writes the stages as a numbered list.
func WriteStageOrder(sink Sink, stages StageSequence) error {
	if sink == nil {
		return ErrSinkMustBeSet
	}
	if len(stages) == 0 {
		return sink.AppendLine(noPipelineLine)
	}
	err := sink.AppendLine(stageOrderHeader)
	if err != nil {
		return err
	}
	for _, line := range stages.Lines() {
		err = sink.AppendLine(line)
		if err != nil {
			return err
		}
	}

	return nil
}

// Summary is the result of a run. Units holds one entry per processed unit, in input order.
type Summary struct {
	Units      []*model.UnitInfo
	Ordered    int
	NoPipeline int
	Failed     int
	Skipped    int
}

func newSummary(infos []*model.UnitInfo) *Summary {
	s := &Summary{}
	for _, info := range infos {
		if info == nil {
			s.Skipped++
			continue
		}
		s.Units = append(s.Units, info)
		switch info.Outcome {
		case model.OutcomeOrdered:
			s.Ordered++
		case model.OutcomeNoPipeline:
			s.NoPipeline++
		case model.OutcomeReadFailed:
			s.Failed++
		}
	}

	return s
}

// Write writes one line per unit followed by the totals.
func (s *Summary) Write(sink Sink) error {
	if sink == nil {
		return ErrSinkMustBeSet
	}
	for _, info := range s.Units {
		err := sink.AppendLine(unitLine(info))
		if err != nil {
			return err
		}
	}

	return sink.AppendLine(fmt.Sprintf("done: %d ordered, %d without pipeline, %d failed, %d skipped",
		s.Ordered, s.NoPipeline, s.Failed, s.Skipped))
}

func unitLine(info *model.UnitInfo) string {
	switch info.Outcome {
	case model.OutcomeOrdered:
		names := make([]string, 0, len(info.Files))
		for _, f := range info.Files {
			names = append(names, f.Name)
		}

		return fmt.Sprintf("%s: ordered %d stages: %v", info.Name, len(info.Stages), names)
	case model.OutcomeNoPipeline:
		return fmt.Sprintf("%s: no pipeline found in %s", info.Name, info.HandlerFile)
	default:
		return fmt.Sprintf("%s: %v", info.Name, info.Err)
	}
}
