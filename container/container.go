// Package container implements the Node/Edge/Connection output
// collaborators: insert/retrieve/wasIgnored, built as per-entity managers
// — a map keyed by id plus an ordered slice, with Get (returns nil for a
// nonexistent id) and GetOrError (returns an error) pairs.
package container

import (
	"fmt"
	"sort"

	"github.com/fib-lab/opendrive-importer/model"
)

// NodeContainer owns every Node created during topology resolution.
type NodeContainer struct {
	data  map[string]*model.Node
	order []*model.Node
}

// NewNodeContainer returns an empty NodeContainer.
func NewNodeContainer() *NodeContainer {
	return &NodeContainer{data: make(map[string]*model.Node)}
}

// GetOrCreate returns the existing node for id, or inserts and returns a
// new one at pos. A second creation with the same id and a different
// position is silently ignored — first position wins.
func (c *NodeContainer) GetOrCreate(id string, pos model.Point) *model.Node {
	if n, ok := c.data[id]; ok {
		return n
	}
	n := &model.Node{ID: id, Pos: pos}
	c.data[id] = n
	c.order = append(c.order, n)
	return n
}

// Get returns the node for id, or nil if absent.
func (c *NodeContainer) Get(id string) *model.Node {
	return c.data[id]
}

// GetOrError returns the node for id, or an error if absent.
func (c *NodeContainer) GetOrError(id string) (*model.Node, error) {
	if n, ok := c.data[id]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("container: no node %q", id)
}

// All returns every node in insertion order.
func (c *NodeContainer) All() []*model.Node {
	return c.order
}

// EdgeContainer owns every Edge the Edge Emitter produces.
type EdgeContainer struct {
	data     map[string]*model.Edge
	order    []*model.Edge
	ignored  map[string]bool
}

// NewEdgeContainer returns an empty EdgeContainer.
func NewEdgeContainer() *EdgeContainer {
	return &EdgeContainer{data: make(map[string]*model.Edge), ignored: make(map[string]bool)}
}

// Insert adds e, failing if an edge with the same ID already exists —
// a second emission under a colliding id is a programmer/data error,
// never silently merged.
func (c *EdgeContainer) Insert(e *model.Edge) error {
	if _, exists := c.data[e.ID]; exists {
		return fmt.Errorf("container: duplicate edge id %q", e.ID)
	}
	c.data[e.ID] = e
	c.order = append(c.order, e)
	return nil
}

// MarkIgnored records that edge id was not inserted because it had no
// mapped lanes (e.g. every lane on that side was discarded by the type
// catalogue), so WasIgnored can tell it apart from a missing edge.
func (c *EdgeContainer) MarkIgnored(id string) {
	c.ignored[id] = true
}

// WasIgnored reports whether id was marked ignored.
func (c *EdgeContainer) WasIgnored(id string) bool {
	return c.ignored[id]
}

// Get returns the edge for id, or nil if absent.
func (c *EdgeContainer) Get(id string) *model.Edge {
	return c.data[id]
}

// GetOrError returns the edge for id, or an error if absent.
func (c *EdgeContainer) GetOrError(id string) (*model.Edge, error) {
	if e, ok := c.data[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("container: no edge %q", id)
}

// All returns every edge in insertion order.
func (c *EdgeContainer) All() []*model.Edge {
	return c.order
}

// ConnectionContainer holds the final, deduplicated, totally-ordered set
// of output connections: identical (FromEdge,ToEdge,FromLane,ToLane)
// tuples are deduplicated by set semantics.
type ConnectionContainer struct {
	seen map[[4]any]bool
	data []*model.Connection
}

// NewConnectionContainer returns an empty ConnectionContainer.
func NewConnectionContainer() *ConnectionContainer {
	return &ConnectionContainer{seen: make(map[[4]any]bool)}
}

// Insert adds c unless its (FromEdge,ToEdge,FromLane,ToLane) tuple was
// already inserted. Returns whether it was newly added.
func (cc *ConnectionContainer) Insert(c *model.Connection) bool {
	k := c.Key()
	if cc.seen[k] {
		return false
	}
	cc.seen[k] = true
	cc.data = append(cc.data, c)
	return true
}

// All returns every connection sorted in canonical order.
func (cc *ConnectionContainer) All() []*model.Connection {
	out := make([]*model.Connection, len(cc.data))
	copy(out, cc.data)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
