// Package topology implements the Topology Builder: it
// classifies roads as inner/outer, computes a node per junction from the
// union of inner-road bounding boxes, and resolves every outer road
// endpoint to a node in four ordered phases.
package topology

import (
	"sort"

	"github.com/fib-lab/opendrive-importer/container"
	"github.com/fib-lab/opendrive-importer/model"
	"github.com/fib-lab/opendrive-importer/warn"
)

// Builder resolves road endpoints to nodes.
type Builder struct {
	Nodes *container.NodeContainer
	Sink  warn.Sink
}

// NewBuilder returns a Builder writing into the given NodeContainer.
func NewBuilder(nodes *container.NodeContainer, sink warn.Sink) *Builder {
	return &Builder{Nodes: nodes, Sink: sink}
}

// Build runs all four phases over roads (keyed by road id) in order.
func (b *Builder) Build(roads map[string]*model.Road) error {
	b.phase1JunctionCentroids(roads)
	if err := b.phase2ExplicitLinks(roads); err != nil {
		return err
	}
	if err := b.phase3InnerPropagation(roads); err != nil {
		return err
	}
	b.phase4Unterminated(roads)
	return nil
}

// phase1JunctionCentroids creates one node per junction at the centre of
// the union of its inner roads' 2D bounding boxes.
func (b *Builder) phase1JunctionCentroids(roads map[string]*model.Road) {
	boxes := make(map[string]model.BBox)
	has := make(map[string]bool)
	for _, r := range sortedRoads(roads) {
		if !r.IsInner() || len(r.Polyline) == 0 {
			continue
		}
		box, ok := r.Polyline.BoundingBox()
		if !ok {
			continue
		}
		if has[r.JunctionID] {
			boxes[r.JunctionID] = boxes[r.JunctionID].Union(box)
		} else {
			boxes[r.JunctionID] = box
			has[r.JunctionID] = true
		}
	}
	for junctionID, box := range boxes {
		b.Nodes.GetOrCreate(junctionID, box.Center())
	}
}

// phase2ExplicitLinks handles each outer road's own links to a junction or
// another road.
func (b *Builder) phase2ExplicitLinks(roads map[string]*model.Road) error {
	for _, r := range sortedRoads(roads) {
		if !r.IsOuter() {
			continue
		}
		for _, link := range r.Links {
			if err := b.resolveExplicitLink(roads, r, link); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) resolveExplicitLink(roads map[string]*model.Road, r *model.Road, link model.Link) error {
	switch link.ElementType {
	case model.ElementJunction:
		node := b.Nodes.GetOrCreate(link.ElementID, fallbackPos(r))
		return b.attach(r, link.Direction, node)
	case model.ElementRoad:
		target, ok := roads[link.ElementID]
		if !ok {
			b.warnf("Road %s link to unknown road %s", r.ID, link.ElementID)
			return nil
		}
		if target.IsInner() {
			node := b.Nodes.GetOrCreate(target.JunctionID, fallbackPos(r))
			return b.attach(r, link.Direction, node)
		}
		nodeID := synthesizeOuterNodeID(r.ID, target.ID)
		node := b.Nodes.GetOrCreate(nodeID, fallbackPos(r))
		return b.attach(r, link.Direction, node)
	}
	return nil
}

// phase3InnerPropagation fills any outer road endpoint still missing by
// scanning inner roads that link to it.
func (b *Builder) phase3InnerPropagation(roads map[string]*model.Road) error {
	outers := sortedRoads(roads)
	for _, r := range outers {
		if !r.IsOuter() {
			continue
		}
		if r.FromNode != nil && r.ToNode != nil {
			continue
		}
		for _, inner := range sortedRoads(roads) {
			if !inner.IsInner() {
				continue
			}
			for _, link := range inner.Links {
				if link.ElementType != model.ElementRoad || link.ElementID != r.ID {
					continue
				}
				node := b.Nodes.GetOrCreate(inner.JunctionID, fallbackPos(inner))
				var dir model.LinkDirection
				if link.ContactPoint == model.ContactStart {
					dir = model.Predecessor
				} else {
					dir = model.Successor
				}
				if err := b.attach(r, dir, node); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// phase4Unterminated synthesises "<id>.begin"/"<id>.end" nodes for any
// endpoint still unresolved.
func (b *Builder) phase4Unterminated(roads map[string]*model.Road) {
	for _, r := range sortedRoads(roads) {
		if !r.IsOuter() || len(r.Polyline) == 0 {
			continue
		}
		if r.FromNode == nil {
			node := b.Nodes.GetOrCreate(r.ID+".begin", r.Polyline[0])
			r.FromNode = &model.NodeRef{ID: node.ID}
		}
		if r.ToNode == nil {
			node := b.Nodes.GetOrCreate(r.ID+".end", r.Polyline[len(r.Polyline)-1])
			r.ToNode = &model.NodeRef{ID: node.ID}
		}
	}
}

func (b *Builder) attach(r *model.Road, dir model.LinkDirection, node *model.Node) error {
	var current **model.NodeRef
	if dir == model.Predecessor {
		current = &r.FromNode
	} else {
		current = &r.ToNode
	}
	if *current != nil {
		if (*current).ID != node.ID {
			return &ConflictError{RoadID: r.ID, NodeA: (*current).ID, NodeB: node.ID}
		}
		return nil
	}
	*current = &model.NodeRef{ID: node.ID}
	return nil
}

func (b *Builder) warnf(format string, args ...any) {
	if b.Sink != nil {
		b.Sink.Warnf(format, args...)
	}
}

func fallbackPos(r *model.Road) model.Point {
	if len(r.Polyline) > 0 {
		return r.Polyline[0]
	}
	return model.Point{}
}

func synthesizeOuterNodeID(a, b string) string {
	if a < b {
		return a + "." + b
	}
	return b + "." + a
}

func sortedRoads(roads map[string]*model.Road) []*model.Road {
	out := make([]*model.Road, 0, len(roads))
	for _, r := range roads {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
