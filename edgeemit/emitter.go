// Package edgeemit implements the Edge Emitter: it splits each
// outer road's (already reshaped) lane sections into directed forward
// (right-side) and backward (left-side) edges, resolves each lane's
// effective speed/width/permissions, and wires the intra-road continuations
// between adjacent sections directly into the output connection set.
package edgeemit

import (
	"fmt"

	"github.com/fib-lab/opendrive-importer/catalogue"
	"github.com/fib-lab/opendrive-importer/config"
	"github.com/fib-lab/opendrive-importer/container"
	"github.com/fib-lab/opendrive-importer/geometry"
	"github.com/fib-lab/opendrive-importer/lanesection"
	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/warn"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "edgeemit")

// Emitter turns outer roads into directed edges and intra-road connections.
type Emitter struct {
	Config      *config.RuntimeConfig
	Catalogue   *catalogue.Catalogue
	Nodes       *container.NodeContainer
	Edges       *container.EdgeContainer
	Connections *container.ConnectionContainer
	Sink        warn.Sink
}

// NewEmitter returns an Emitter writing into the given containers.
func NewEmitter(cfg *config.RuntimeConfig, cat *catalogue.Catalogue, nodes *container.NodeContainer, edges *container.EdgeContainer, conns *container.ConnectionContainer, sink warn.Sink) *Emitter {
	return &Emitter{Config: cfg, Catalogue: cat, Nodes: nodes, Edges: edges, Connections: conns, Sink: sink}
}

func (e *Emitter) warnf(format string, args ...any) {
	if e.Sink != nil {
		e.Sink.Warnf(format, args...)
	}
	log.Debugf(format, args...)
}

// EmitRoad emits every forward/backward edge pair for outer road r, one
// pair per lane section, along with the intra-road continuations between
// consecutive sections. Inner roads and roads with fewer than two
// polyline vertices are skipped — they carry no directly emittable edges.
func (e *Emitter) EmitRoad(r *model.Road) error {
	if !r.IsOuter() || len(r.Polyline) < 2 {
		return nil
	}
	if r.FromNode == nil || r.ToNode == nil {
		e.warnf("Road %s has no resolved endpoints, skipping edge emission", r.ID)
		return nil
	}
	e.handleLoopSelfEdge(r)

	length2D := r.Polyline.Length2D()
	cF := 1.0
	if length2D > 0 {
		cF = r.Length / length2D
	}
	rightPriority, leftPriority := computePriority(r.Signals)

	n := len(r.LaneSections)
	var prevFwd, prevBwd *model.Edge
	var prevSec *model.LaneSection
	for j, sec := range r.LaneSections {
		sB := sec.S
		var sE float64
		var toNodeID string
		if j == n-1 {
			sE = r.Length
			toNodeID = r.ToNode.ID
		} else {
			sE = r.LaneSections[j+1].S
			toNodeID = e.interiorNodeID(r, j)
			e.Nodes.GetOrCreate(toNodeID, geometry.PointAt(r.Polyline, sE/cF))
		}
		fromNodeID := r.FromNode.ID
		if j > 0 {
			fromNodeID = e.interiorNodeID(r, j-1)
		}

		sub := geometry.GetSubpart2D(r.Polyline, sB/cF, sE/cF)
		base := model.SectionBaseID(r.ID, r.LaneSections, j)

		fwdLanes := e.buildLanes(sec, model.SideRight)
		fwd := &model.Edge{
			ID: "-" + base, FromNode: fromNodeID, ToNode: toNodeID,
			Geometry: sub, Lanes: fwdLanes, RoadID: r.ID,
			SectionIndex: j, SectionCount: n, Priority: rightPriority,
		}
		if len(fwdLanes) > 0 {
			if err := e.Edges.Insert(fwd); err != nil {
				return err
			}
			if prevFwd != nil && prevSec != nil {
				e.wireForward(prevFwd, fwd, prevSec, sec)
			}
			prevFwd = fwd
		} else {
			e.Edges.MarkIgnored(fwd.ID)
			prevFwd = nil
		}

		bwdLanes := e.buildLanes(sec, model.SideLeft)
		bwd := &model.Edge{
			ID: base, FromNode: toNodeID, ToNode: fromNodeID,
			Geometry: sub.Reversed(), Lanes: bwdLanes, RoadID: r.ID,
			SectionIndex: j, SectionCount: n, Priority: leftPriority,
		}
		if len(bwdLanes) > 0 {
			if err := e.Edges.Insert(bwd); err != nil {
				return err
			}
			if prevBwd != nil && prevSec != nil {
				e.wireBackward(bwd, prevBwd, prevSec, sec)
			}
			prevBwd = bwd
		} else {
			e.Edges.MarkIgnored(bwd.ID)
			prevBwd = nil
		}

		prevSec = sec
	}
	return nil
}

// wireForward records the right-side intra-road continuations from the
// previous section's forward edge into the current one: predecessor index
// maps to successor index.
func (e *Emitter) wireForward(prevEdge, curEdge *model.Edge, prevSec, curSec *model.LaneSection) {
	for _, p := range lanesection.InnerConnections(prevSec, curSec, model.SideRight) {
		e.Connections.Insert(&model.Connection{
			FromEdge: prevEdge.ID, FromLane: p.FromIndex, FromContactPoint: model.ContactEnd,
			ToEdge: curEdge.ID, ToLane: p.ToIndex, ToContactPoint: model.ContactStart,
		})
	}
}

// wireBackward records the left-side intra-road continuations: because
// left-lane travel runs opposite increasing s, the current section's edge
// feeds the previous one.
func (e *Emitter) wireBackward(curEdge, prevEdge *model.Edge, prevSec, curSec *model.LaneSection) {
	for _, p := range lanesection.InnerConnections(prevSec, curSec, model.SideLeft) {
		e.Connections.Insert(&model.Connection{
			FromEdge: curEdge.ID, FromLane: p.FromIndex, FromContactPoint: model.ContactEnd,
			ToEdge: prevEdge.ID, ToLane: p.ToIndex, ToContactPoint: model.ContactStart,
		})
	}
}

// handleLoopSelfEdge splits a road's single lane section at its midpoint
// when the road begins and ends at the same node,
// so the forward/backward loop below still produces two distinct
// section-pairs instead of one self-referential pair.
func (e *Emitter) handleLoopSelfEdge(r *model.Road) {
	if r.FromNode == nil || r.ToNode == nil || r.FromNode.ID != r.ToNode.ID {
		return
	}
	if len(r.LaneSections) != 1 {
		return
	}
	sec := r.LaneSections[0]
	half := r.Length / 2
	clone := sec.Clone(sec.S + half)
	lanesection.MapLanes(clone, e.discard)
	r.LaneSections = append(r.LaneSections, clone)
	e.warnf("Road %s is a self-loop with a single lane section, split at its midpoint for edge emission", r.ID)
}

func (e *Emitter) discard(typ string) bool {
	if e.Config != nil && e.Config.All.ImportAllLanes {
		return false
	}
	if e.Catalogue == nil {
		return false
	}
	entry, ok := e.Catalogue.Lookup(typ)
	if !ok {
		return true
	}
	return entry.Discard
}

// interiorNodeID names the synthesised node between lane sections j and
// j+1 of road r.
func (e *Emitter) interiorNodeID(r *model.Road, j int) string {
	return fmt.Sprintf("%s.sec%d", r.ID, j+1)
}
