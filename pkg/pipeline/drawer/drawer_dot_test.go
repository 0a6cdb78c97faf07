package drawer

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/sort-pipeline/pkg/pipeline/measure"
	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

func orderedUnit() *model.UnitInfo {
	return &model.UnitInfo{
		Unit:    model.Unit{Name: "brand -GET", HandlerFile: "brand/_handlers.ts", Dir: "brand/-GET"},
		Outcome: model.OutcomeOrdered,
		Stages:  []string{"a", "b"},
		Files: []model.RankedFile{
			{Name: "a.ts", Stem: "a", Rank: 0, Matched: true},
			{Name: "x.ts", Stem: "x", Rank: math.MaxInt},
		},
		Durations: model.Durations{Read: time.Millisecond, List: time.Millisecond},
	}
}

func TestRender(t *testing.T) {
	d := NewDOTDrawer("")
	require.NoError(t, d.AddUnit(orderedUnit()))

	blue, err := hexColor(matchedRGB)
	require.NoError(t, err)
	red, err := hexColor(unmatchedRGB)
	require.NoError(t, err)
	grey, err := hexColor(extraFileRGB)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, d.Render(buf))
	expected := "strict digraph {\n" +
		"\trankdir=\"LR\";\n" +
		"\t\"brand -GET\" [ shape=\"box\", weight=0 ];\n" +
		"\t\"brand -GET\" -> \"brand -GET#0\" [ label=\"1\", weight=0 ];\n" +
		"\t\"brand -GET\" -> \"brand -GET/x.ts\" [ style=\"dotted\", weight=0 ];\n" +
		"\t\"brand -GET#0\" [ color=\"" + blue + "\", label=\"a\", weight=0 ];\n" +
		"\t\"brand -GET#0\" -> \"brand -GET#1\" [ label=\"2\", weight=0 ];\n" +
		"\t\"brand -GET#1\" [ color=\"" + red + "\", label=\"b\", weight=0 ];\n" +
		"\t\"brand -GET/x.ts\" [ color=\"" + grey + "\", label=\"x.ts\", style=\"dashed\", weight=0 ];\n" +
		"}\n"
	assert.Equal(t, expected, buf.String())
}

func TestAddUnitIgnoresUnordered(t *testing.T) {
	d := NewDOTDrawer("")
	require.NoError(t, d.AddUnit(nil))
	require.NoError(t, d.AddUnit(&model.UnitInfo{Unit: model.Unit{Name: "u"}, Outcome: model.OutcomeNoPipeline}))
	require.NoError(t, d.AddUnit(&model.UnitInfo{Unit: model.Unit{Name: "v"}, Outcome: model.OutcomeReadFailed}))

	buf := &bytes.Buffer{}
	require.NoError(t, d.Render(buf))
	assert.Equal(t, "strict digraph {\n\trankdir=\"LR\";\n}\n", buf.String())
}

func TestAddUnitTwice(t *testing.T) {
	d := NewDOTDrawer("")
	require.NoError(t, d.AddUnit(orderedUnit()))
	assert.Error(t, d.AddUnit(orderedUnit()))
}

func TestAddUnitDuplicatedStage(t *testing.T) {
	info := orderedUnit()
	info.Stages = []string{"a", "b", "a"}
	d := NewDOTDrawer("")
	require.NoError(t, d.AddUnit(info))

	buf := &bytes.Buffer{}
	require.NoError(t, d.Render(buf))
	assert.Contains(t, buf.String(), "\"brand -GET#1\" -> \"brand -GET#2\" [ label=\"3\", weight=0 ];")
}

func TestRunDrawer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipelines.dot")
	m := measure.NewDefaultMeasure()
	opt := RunDrawer(NewDOTDrawer(path), m)
	mopt := measure.RunMeasure(m)

	require.NoError(t, opt.New())
	info := orderedUnit()
	require.NoError(t, mopt.OnUnit(info))
	require.NoError(t, opt.OnUnit(info))
	require.NoError(t, opt.Finish())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "\"brand -GET\" [ shape=\"box\", xlabel=\"2ms\", weight=0 ];")
}

func TestRunDrawerWithoutMeasure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipelines.dot")
	opt := RunDrawer(NewDOTDrawer(path), nil)
	require.NoError(t, opt.OnUnit(orderedUnit()))
	require.NoError(t, opt.Finish())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "xlabel")
}

func TestDrawInvalidPath(t *testing.T) {
	d := NewDOTDrawer(filepath.Join(t.TempDir(), "missing", "pipelines.dot"))
	assert.Error(t, d.Draw())
}
