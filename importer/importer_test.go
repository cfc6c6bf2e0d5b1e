package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fib-lab/opendrive-importer/catalogue"
	"github.com/fib-lab/opendrive-importer/config"
	"github.com/fib-lab/opendrive-importer/importer"
	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/warn"
)

func drivingLane(id int, width, speed float64) *model.Lane {
	return &model.Lane{
		ID:     id,
		Type:   "driving",
		Widths: []model.WidthEntry{{SOffset: 0, Poly: model.CubicPoly{A: width}}},
		Speeds: []model.SpeedEntry{{SOffset: 0, Speed: speed}},
	}
}

func twoRoadNetwork() map[string]*model.Road {
	r1 := &model.Road{
		ID:       "r1",
		Length:   50,
		Geometry: []model.GeometrySegment{model.NewLineSegment(0, model.Point{}, 0, 50)},
		Links: []model.Link{
			{Direction: model.Successor, ElementType: model.ElementRoad, ElementID: "r2", ContactPoint: model.ContactStart},
		},
		LaneSections: []*model.LaneSection{model.NewLaneSection(0)},
	}
	r1.LaneSections[0].Right = []*model.Lane{drivingLane(-1, 3.5, 10)}

	r2 := &model.Road{
		ID:       "r2",
		Length:   50,
		Geometry: []model.GeometrySegment{model.NewLineSegment(0, model.Point{X: 50}, 0, 50)},
		Links: []model.Link{
			{Direction: model.Predecessor, ElementType: model.ElementRoad, ElementID: "r1", ContactPoint: model.ContactEnd},
		},
		LaneSections: []*model.LaneSection{model.NewLaneSection(0)},
	}
	r2.LaneSections[0].Right = []*model.Lane{drivingLane(-1, 3.5, 10)}

	return map[string]*model.Road{"r1": r1, "r2": r2}
}

func TestImporterRunProducesConnectedGraph(t *testing.T) {
	cfg := config.NewRuntimeConfig(config.Config{CurveResolution: 5})
	cat := catalogue.New(map[string]catalogue.Entry{
		"driving": {DefaultSpeed: 13.89, DefaultWidth: 3.5, Permissions: model.PermDriving},
	})
	imp := importer.New(cfg, cat, nil, warn.NewCollecting(nil))

	roads := twoRoadNetwork()
	graph, err := imp.Run(roads)
	require.NoError(t, err)

	require.NotEmpty(t, graph.Nodes)
	require.NotEmpty(t, graph.Edges)

	var fwd1, fwd2 *model.Edge
	for _, e := range graph.Edges {
		switch e.ID {
		case "-r1":
			fwd1 = e
		case "-r2":
			fwd2 = e
		}
	}
	require.NotNil(t, fwd1)
	require.NotNil(t, fwd2)
	assert.Equal(t, fwd1.ToNode, fwd2.FromNode, "r1's forward edge must feed into r2's forward edge at the shared node")
	assert.Equal(t, "r1.r2", fwd1.ToNode)
}

func TestImporterRunRejectsConflictingTopology(t *testing.T) {
	cfg := config.NewRuntimeConfig(config.Config{CurveResolution: 5})
	cat := catalogue.New(map[string]catalogue.Entry{
		"driving": {DefaultSpeed: 13.89, DefaultWidth: 3.5, Permissions: model.PermDriving},
	})
	imp := importer.New(cfg, cat, nil, warn.NewCollecting(nil))

	roads := twoRoadNetwork()
	r1 := roads["r1"]
	// A second, contradictory successor link must surface as a fatal
	// ProcessError rather than being silently dropped.
	r1.Links = append(r1.Links, model.Link{
		Direction: model.Successor, ElementType: model.ElementJunction, ElementID: "5",
	})

	_, err := imp.Run(roads)
	require.Error(t, err)
	var pe *importer.ProcessError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "topology", pe.Stage)
}
