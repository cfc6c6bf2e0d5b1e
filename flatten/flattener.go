// Package flatten implements the Connection Flattener: it walks
// chains of inner ("connecting") roads through a junction to produce direct
// outer-to-outer lane connections, resolving each endpoint down to the
// actual emitted edge id and compact lane index, and optionally
// synthesising an interpolated internal shape for the connection.
package flatten

import (
	"fmt"

	"github.com/fib-lab/opendrive-importer/container"
	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/warn"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "flatten")

// Flattener turns the raw OpenDRIVE junction connections carried on each
// road's Connections slice into the final outer->outer connection set.
type Flattener struct {
	Roads          map[string]*model.Road
	Out            *container.ConnectionContainer
	InternalShapes bool
	Sink           warn.Sink
}

// NewFlattener returns a Flattener writing the final connections into out.
func NewFlattener(roads map[string]*model.Road, out *container.ConnectionContainer, internalShapes bool, sink warn.Sink) *Flattener {
	return &Flattener{Roads: roads, Out: out, InternalShapes: internalShapes, Sink: sink}
}

func (f *Flattener) warnf(format string, args ...any) {
	if f.Sink != nil {
		f.Sink.Warnf(format, args...)
	}
	log.Debugf(format, args...)
}

// pending carries a connection under construction through the walk: the
// fixed outer origin, plus whatever outer destination the current branch
// has reached.
type pending struct {
	fromRoad *model.Road
	fromLane int
	fromCP   model.ContactPoint
	toRoad   *model.Road
	toLane   int
	toCP     model.ContactPoint
	all      bool
	origID   string
	origLane int
	shape    model.Polyline
}

// Flatten walks every outer-origin connection across every road.
func (f *Flattener) Flatten() error {
	for _, r := range f.Roads {
		if r.IsInner() {
			continue
		}
		for _, c := range r.Connections {
			if c.FromEdge != r.ID {
				continue
			}
			toRoad := f.Roads[c.ToEdge]
			if toRoad == nil {
				f.warnf("Connection from road %s references unknown road %s", r.ID, c.ToEdge)
				continue
			}
			if toRoad.IsOuter() {
				f.finalize(pending{
					fromRoad: r, fromLane: c.FromLane, fromCP: c.FromContactPoint,
					toRoad: toRoad, toLane: c.ToLane, toCP: c.ToContactPoint,
					all: c.All,
				})
				continue
			}
			origin := pending{fromRoad: r, fromLane: c.FromLane, fromCP: c.FromContactPoint, all: c.All}
			visited := make(map[string]bool)
			f.walk(origin, toRoad, c.ToLane, c.ToContactPoint, visited)
		}
	}
	return nil
}

// walk descends into inner road d, entered at lane inLane via entryCP,
// emitting every outer destination reachable without crossing an already
// visited connection.
func (f *Flattener) walk(origin pending, d *model.Road, inLane int, entryCP model.ContactPoint, visited map[string]bool) {
	outLane, ok := resolveThroughInner(d, inLane, entryCP)
	if !ok {
		return
	}
	for _, cp := range d.Connections {
		if cp.FromEdge != d.ID || cp.FromLane != outLane {
			continue
		}
		next := f.Roads[cp.ToEdge]
		if next == nil {
			f.warnf("Connection from road %s references unknown road %s", d.ID, cp.ToEdge)
			continue
		}

		p := origin
		p.origID = d.ID
		p.origLane = inLane
		if f.InternalShapes {
			if shape, ok := computeInternalShape(d, inLane, entryCP); ok {
				p.shape = append(append(model.Polyline{}, origin.shape...), shape...)
			} else {
				f.warnf("Road %s: degenerate internal shape geometry, clearing", d.ID)
				p.shape = nil
			}
		}

		if next.IsOuter() {
			p.toRoad = next
			p.toLane = cp.ToLane
			p.toCP = cp.ToContactPoint
			f.finalize(p)
			continue
		}

		key := fmt.Sprintf("%s>%d>%s>%d", cp.FromEdge, cp.FromLane, cp.ToEdge, cp.ToLane)
		if visited[key] {
			f.warnf("circular connections in junction including roads %s and %s", d.ID, next.ID)
			continue
		}
		visited[key] = true
		f.walk(p, next, cp.ToLane, cp.ToContactPoint, visited)
	}
}

func (f *Flattener) finalize(p pending) {
	fromEdge, fromIdx, ok1 := resolveEdgeLane(p.fromRoad, p.fromLane, p.fromCP)
	toEdge, toIdx, ok2 := resolveEdgeLane(p.toRoad, p.toLane, p.toCP)
	if !ok1 || !ok2 {
		f.warnf("Connection %s -> %s could not resolve an emitted lane, dropping", p.fromRoad.ID, p.toRoad.ID)
		return
	}
	f.Out.Insert(&model.Connection{
		FromEdge: fromEdge, FromLane: fromIdx, FromContactPoint: p.fromCP,
		ToEdge: toEdge, ToLane: toIdx, ToContactPoint: p.toCP,
		All: p.all, Shape: p.shape, OrigID: p.origID, OrigLane: p.origLane,
	})
}

// resolveEdgeLane maps a raw OpenDRIVE signed lane id on road at the given
// contact point to the actual emitted edge id and compact lane index.
func resolveEdgeLane(road *model.Road, laneID int, cp model.ContactPoint) (string, int, bool) {
	n := len(road.LaneSections)
	if n == 0 {
		return "", 0, false
	}
	idx := 0
	if cp == model.ContactEnd && laneID < 0 {
		idx = n - 1
	}
	sec := road.LaneSections[idx]
	compact, ok := sec.LaneMap[laneID]
	if !ok {
		return "", 0, false
	}
	prefix := ""
	if laneID < 0 {
		prefix = "-"
	}
	return prefix + model.SectionBaseID(road.ID, road.LaneSections, idx), compact, true
}
