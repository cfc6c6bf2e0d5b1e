// Package importer orchestrates the core's five subsystems over a parsed
// road table: Geometry Engine, Lane-Section Reshaper, Topology
// Builder, Edge Emitter, Connection Flattener, in that order, wrapped with
// a RuntimeConfig and a warning sink.
package importer

import (
	"sort"

	"github.com/fib-lab/opendrive-importer/catalogue"
	"github.com/fib-lab/opendrive-importer/config"
	"github.com/fib-lab/opendrive-importer/container"
	"github.com/fib-lab/opendrive-importer/edgeemit"
	"github.com/fib-lab/opendrive-importer/flatten"
	"github.com/fib-lab/opendrive-importer/geometry"
	"github.com/fib-lab/opendrive-importer/lanesection"
	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/topology"
	"github.com/fib-lab/opendrive-importer/warn"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "importer")

// Graph is the finished output of a single import run: every node,
// directed edge and flattened lane-to-lane connection.
type Graph struct {
	Nodes       []*model.Node
	Edges       []*model.Edge
	Connections []*model.Connection
}

// Importer runs the five core subsystems over a parsed road table.
type Importer struct {
	Config    *config.RuntimeConfig
	Catalogue *catalogue.Catalogue
	Projector geometry.Projector
	Sink      warn.Sink
}

// New returns an Importer configured with cfg, cat and an optional
// projector (nil defaults to the Geometry Engine's identity projector).
func New(cfg *config.RuntimeConfig, cat *catalogue.Catalogue, proj geometry.Projector, sink warn.Sink) *Importer {
	return &Importer{Config: cfg, Catalogue: cat, Projector: proj, Sink: sink}
}

// Run discretises, reshapes, resolves topology for, and emits the full
// output graph of roads (keyed by road id). It returns the first fatal
// ProcessError encountered; non-fatal anomalies are reported through Sink
// and the run continues.
func (imp *Importer) Run(roads map[string]*model.Road) (*Graph, error) {
	log.Infof("starting import of %d roads", len(roads))

	engine := geometry.NewEngine(imp.Config.All.CurveResolution, 0, imp.Projector, imp.Sink)
	reshaper := lanesection.NewReshaper(imp.Config.All.MinWidth, imp.Config.All.ImportAllLanes, imp.Catalogue, imp.Sink)
	for _, r := range sortedRoads(roads) {
		engine.BuildPolyline(r)
		reshaper.Reshape(r)
	}

	nodes := container.NewNodeContainer()
	builder := topology.NewBuilder(nodes, imp.Sink)
	if err := builder.Build(roads); err != nil {
		return nil, &ProcessError{Stage: "topology", Err: err}
	}

	edges := container.NewEdgeContainer()
	conns := container.NewConnectionContainer()
	emitter := edgeemit.NewEmitter(imp.Config, imp.Catalogue, nodes, edges, conns, imp.Sink)
	for _, r := range sortedRoads(roads) {
		if err := emitter.EmitRoad(r); err != nil {
			return nil, &ProcessError{Stage: "edge-emit", Err: err}
		}
	}

	flattener := flatten.NewFlattener(roads, conns, imp.Config.All.InternalShapes, imp.Sink)
	if err := flattener.Flatten(); err != nil {
		return nil, &ProcessError{Stage: "flatten", Err: err}
	}

	graph := &Graph{Nodes: nodes.All(), Edges: edges.All(), Connections: conns.All()}
	log.Infof("import complete: %d nodes, %d edges, %d connections", len(graph.Nodes), len(graph.Edges), len(graph.Connections))
	return graph, nil
}

func sortedRoads(roads map[string]*model.Road) []*model.Road {
	out := lo.Values(roads)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
