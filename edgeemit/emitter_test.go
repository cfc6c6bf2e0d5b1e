package edgeemit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fib-lab/opendrive-importer/catalogue"
	"github.com/fib-lab/opendrive-importer/config"
	"github.com/fib-lab/opendrive-importer/container"
	"github.com/fib-lab/opendrive-importer/edgeemit"
	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/warn"
)

func drivingCatalogue() *catalogue.Catalogue {
	return catalogue.New(map[string]catalogue.Entry{
		"driving": {DefaultSpeed: 10, DefaultWidth: 3.5, Permissions: model.PermDriving},
	})
}

func newEmitter(nodes *container.NodeContainer, edges *container.EdgeContainer, conns *container.ConnectionContainer) *edgeemit.Emitter {
	cfg := config.NewRuntimeConfig(config.Config{})
	sink := warn.NewCollecting(nil)
	return edgeemit.NewEmitter(cfg, drivingCatalogue(), nodes, edges, conns, sink)
}

func straightRoad(id string, length float64) *model.Road {
	return &model.Road{
		ID:       id,
		Length:   length,
		Polyline: model.Polyline{{X: 0, Y: 0}, {X: length, Y: 0}},
		FromNode: &model.NodeRef{ID: "A"},
		ToNode:   &model.NodeRef{ID: "B"},
	}
}

func TestEmitRoadSingleSectionBothDirections(t *testing.T) {
	nodes := container.NewNodeContainer()
	edges := container.NewEdgeContainer()
	conns := container.NewConnectionContainer()
	nodes.GetOrCreate("A", model.Point{})
	nodes.GetOrCreate("B", model.Point{X: 100})

	r := straightRoad("r1", 100)
	sec := model.NewLaneSection(0)
	sec.Right = []*model.Lane{{ID: -1, Type: "driving", EffectiveWidth: 3.5}}
	sec.LaneMap[-1] = 0
	sec.RightLaneNumber = 1
	sec.Left = []*model.Lane{{ID: 1, Type: "driving", EffectiveWidth: 3.5}}
	sec.LaneMap[1] = 0
	sec.LeftLaneNumber = 1
	r.LaneSections = []*model.LaneSection{sec}

	e := newEmitter(nodes, edges, conns)
	require.NoError(t, e.EmitRoad(r))

	fwd := edges.Get("-r1")
	require.NotNil(t, fwd)
	assert.Equal(t, "A", fwd.FromNode)
	assert.Equal(t, "B", fwd.ToNode)
	require.Len(t, fwd.Lanes, 1)
	assert.Equal(t, 3.5, fwd.Lanes[0].Width)
	assert.Equal(t, model.PermDriving, fwd.Lanes[0].Permissions)

	bwd := edges.Get("r1")
	require.NotNil(t, bwd)
	assert.Equal(t, "B", bwd.FromNode)
	assert.Equal(t, "A", bwd.ToNode)
	require.Len(t, bwd.Lanes, 1)
}

func TestEmitRoadWiresIntraRoadContinuations(t *testing.T) {
	nodes := container.NewNodeContainer()
	edges := container.NewEdgeContainer()
	conns := container.NewConnectionContainer()
	nodes.GetOrCreate("A", model.Point{})
	nodes.GetOrCreate("B", model.Point{X: 100})

	r := straightRoad("r2", 100)
	sec0 := model.NewLaneSection(0)
	sec0.Right = []*model.Lane{{ID: -1, Type: "driving", EffectiveWidth: 3.5}}
	sec0.LaneMap[-1] = 0
	sec1 := model.NewLaneSection(50)
	sec1.Right = []*model.Lane{{ID: -1, Type: "driving", EffectiveWidth: 3.5, Predecessor: "-1"}}
	sec1.LaneMap[-1] = 0
	r.LaneSections = []*model.LaneSection{sec0, sec1}

	e := newEmitter(nodes, edges, conns)
	require.NoError(t, e.EmitRoad(r))

	require.NotNil(t, edges.Get("-r2.0"))
	require.NotNil(t, edges.Get("-r2.50"))

	var found bool
	for _, c := range conns.All() {
		if c.FromEdge == "-r2.0" && c.ToEdge == "-r2.50" && c.FromLane == 0 && c.ToLane == 0 {
			found = true
		}
	}
	assert.True(t, found, "expected an intra-road continuation from -r2.0 to -r2.50")
}

func TestEmitRoadLoopSelfEdgeSplitsSection(t *testing.T) {
	nodes := container.NewNodeContainer()
	edges := container.NewEdgeContainer()
	conns := container.NewConnectionContainer()
	nodes.GetOrCreate("A", model.Point{})

	r := &model.Road{
		ID:       "r3",
		Length:   100,
		Polyline: model.Polyline{{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 100}},
		FromNode: &model.NodeRef{ID: "A"},
		ToNode:   &model.NodeRef{ID: "A"},
	}
	sec := model.NewLaneSection(0)
	sec.Right = []*model.Lane{{ID: -1, Type: "driving", EffectiveWidth: 3.5}}
	sec.LaneMap[-1] = 0
	r.LaneSections = []*model.LaneSection{sec}

	e := newEmitter(nodes, edges, conns)
	require.NoError(t, e.EmitRoad(r))

	require.Len(t, r.LaneSections, 2, "loop road with one section must be split in two before emission")
	assert.NotNil(t, edges.Get("-r3.0"))
	assert.NotNil(t, edges.Get("-r3.50"))
}

func TestEmitRoadSkipsInnerRoads(t *testing.T) {
	nodes := container.NewNodeContainer()
	edges := container.NewEdgeContainer()
	conns := container.NewConnectionContainer()

	r := straightRoad("inner1", 10)
	r.JunctionID = "5"
	e := newEmitter(nodes, edges, conns)
	require.NoError(t, e.EmitRoad(r))
	assert.Empty(t, edges.All())
}

func TestNarrowLaneDowngradesPermissions(t *testing.T) {
	nodes := container.NewNodeContainer()
	edges := container.NewEdgeContainer()
	conns := container.NewConnectionContainer()
	nodes.GetOrCreate("A", model.Point{})
	nodes.GetOrCreate("B", model.Point{X: 100})

	cat := catalogue.New(map[string]catalogue.Entry{
		"driving": {DefaultSpeed: 10, DefaultWidth: 3.5, WidthResolution: 0.5, Permissions: model.PermDriving},
	})
	cfg := config.NewRuntimeConfig(config.Config{MinWidth: 2.5})
	e := edgeemit.NewEmitter(cfg, cat, nodes, edges, conns, warn.NewCollecting(nil))

	r := straightRoad("r4", 100)
	sec := model.NewLaneSection(0)
	sec.Right = []*model.Lane{{ID: -1, Type: "driving", EffectiveWidth: 1.0}}
	sec.LaneMap[-1] = 0
	r.LaneSections = []*model.LaneSection{sec}

	require.NoError(t, e.EmitRoad(r))
	fwd := edges.Get("-r4")
	require.NotNil(t, fwd)
	require.Len(t, fwd.Lanes, 1)
	assert.Equal(t, model.NarrowDowngradePermissions, fwd.Lanes[0].Permissions)
}

func TestNarrowLaneRetryRescuesRoundingQuantisedWidth(t *testing.T) {
	nodes := container.NewNodeContainer()
	edges := container.NewEdgeContainer()
	conns := container.NewConnectionContainer()
	nodes.GetOrCreate("A", model.Point{})
	nodes.GetOrCreate("B", model.Point{X: 100})

	cat := catalogue.New(map[string]catalogue.Entry{
		"driving": {DefaultSpeed: 10, DefaultWidth: 3.5, WidthResolution: 0.5, Permissions: model.PermDriving},
	})
	cfg := config.NewRuntimeConfig(config.Config{MinWidth: 2.5})
	e := edgeemit.NewEmitter(cfg, cat, nodes, edges, conns, warn.NewCollecting(nil))

	r := straightRoad("r5", 100)
	sec := model.NewLaneSection(0)
	// 2.1m quantises down to 2.0m, just under the 2.5m minimum; the
	// one-step retry should round back up to 2.5m instead of downgrading.
	sec.Right = []*model.Lane{{ID: -1, Type: "driving", EffectiveWidth: 2.1}}
	sec.LaneMap[-1] = 0
	r.LaneSections = []*model.LaneSection{sec}

	require.NoError(t, e.EmitRoad(r))
	fwd := edges.Get("-r5")
	require.NotNil(t, fwd)
	require.Len(t, fwd.Lanes, 1)
	assert.Equal(t, model.PermDriving, fwd.Lanes[0].Permissions)
	assert.Equal(t, 2.5, fwd.Lanes[0].Width)
}
