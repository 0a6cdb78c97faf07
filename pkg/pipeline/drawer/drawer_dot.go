package drawer

import (
	"io"
	"os"
	"sort"
	"strconv"
	"sync"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/sort-pipeline/pkg/pipeline/measure"
	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

var (
	matchedRGB   = [3]uint8{0, 0, 240}
	unmatchedRGB = [3]uint8{240, 0, 0}
	extraFileRGB = [3]uint8{128, 128, 128}
)

// DOTDrawer is a drawer that creates a DOT file with one chain of stages per unit.
type DOTDrawer struct {
	mu          sync.Mutex
	graph       graph.Graph[string, string]
	xlabels     map[string]string
	units       []string
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer writing to dotFileName.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	return &DOTDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
		xlabels:     make(map[string]string),
	}
}

func stageVertex(unitName string, idx int) string {
	return unitName + "#" + strconv.Itoa(idx)
}

func fileVertex(unitName, fileName string) string {
	return unitName + "/" + fileName
}

func hexColor(rgb [3]uint8) (string, error) {
	c, err := colors.RGB(rgb[0], rgb[1], rgb[2])
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return c.ToHEX().String(), nil
}

// AddUnit adds the unit, its stages in order and the files that implement no stage.
// Units that were not ordered are ignored.
func (d *DOTDrawer) AddUnit(info *model.UnitInfo) error {
	if info == nil || info.Outcome != model.OutcomeOrdered {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.graph.AddVertex(info.Name, graph.VertexAttribute("shape", "box"))
	if err != nil {
		return errors.Wrapf(err, "unable to add unit %s", info.Name)
	}
	d.units = append(d.units, info.Name)

	matched := info.MatchedStages()
	parent := info.Name
	for idx, stage := range info.Stages {
		rgb := unmatchedRGB
		if _, ok := matched[stage]; ok {
			rgb = matchedRGB
		}
		color, err := hexColor(rgb)
		if err != nil {
			return err
		}
		vertex := stageVertex(info.Name, idx)
		err = d.graph.AddVertex(vertex,
			graph.VertexAttribute("label", stage),
			graph.VertexAttribute("color", color),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to add stage %s", stage)
		}
		err = d.graph.AddEdge(parent, vertex, graph.EdgeAttribute("label", strconv.Itoa(idx+1)))
		if err != nil {
			return errors.Wrapf(err, "unable to add edge from %s to %s", parent, vertex)
		}
		parent = vertex
	}

	color, err := hexColor(extraFileRGB)
	if err != nil {
		return err
	}
	for _, file := range info.Files {
		if file.Matched {
			continue
		}
		vertex := fileVertex(info.Name, file.Name)
		err := d.graph.AddVertex(vertex,
			graph.VertexAttribute("label", file.Name),
			graph.VertexAttribute("color", color),
			graph.VertexAttribute("style", "dashed"),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to add file %s", file.Name)
		}
		err = d.graph.AddEdge(info.Name, vertex, graph.EdgeAttribute("style", "dotted"))
		if err != nil {
			return errors.Wrapf(err, "unable to add edge from %s to %s", info.Name, vertex)
		}
	}

	return nil
}

// AddMeasure labels every drawn unit with its total measured duration.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for name, mt := range msr.AllMetrics() {
		if _, err := d.graph.Vertex(name); err != nil {
			continue
		}
		d.xlabels[name] = mt.Total().String()
	}

	return nil
}

// Draw creates the DOT file.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = d.Render(file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.dotFileName)
	}

	return nil
}

// Render writes the DOT description of the graph to wrt. Output is sorted, so identical runs render identically.
func (d *DOTDrawer) Render(wrt io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	desc, err := d.generateDOT()
	if err != nil {
		return err
	}

	return renderDOT(wrt, desc)
}

const dotTemplate = `strict digraph {
	rankdir="LR";
{{- range .Statements}}
	{{if .Target}}"{{.Source}}" -> "{{.Target}}" [ {{range $k, $v := .Attributes}}{{$k}}="{{$v}}", {{end}}weight={{.Weight}} ];{{else}}"{{.Source}}" [ {{range $k, $v := .Attributes}}{{$k}}="{{$v}}", {{end}}weight={{.Weight}} ];{{end}}
{{- end}}
}
`

type description struct {
	Statements []statement
}

type statement struct {
	Source     string
	Target     string
	Attributes map[string]string
	Weight     int
}

func (d *DOTDrawer) generateDOT() (description, error) {
	desc := description{}

	adjacencyMap, err := d.graph.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]string, 0, len(adjacencyMap))
	for vertex := range adjacencyMap {
		vertices = append(vertices, vertex)
	}
	sort.Strings(vertices)

	for _, vertex := range vertices {
		_, properties, err := d.graph.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}
		attributes := make(map[string]string, len(properties.Attributes)+1)
		for k, v := range properties.Attributes {
			attributes[k] = v
		}
		if xlabel, ok := d.xlabels[vertex]; ok {
			attributes["xlabel"] = xlabel
		}
		desc.Statements = append(desc.Statements, statement{
			Source:     vertex,
			Attributes: attributes,
			Weight:     properties.Weight,
		})

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}
		sort.Strings(targets)
		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			desc.Statements = append(desc.Statements, statement{
				Source:     vertex,
				Target:     target,
				Attributes: edge.Properties.Attributes,
				Weight:     edge.Properties.Weight,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
