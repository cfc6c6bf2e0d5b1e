package topology

import "fmt"

// ConflictError is a hard topology failure: an endpoint
// was bound to two distinct nodes.
type ConflictError struct {
	RoadID   string
	NodeA    string
	NodeB    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("topology: road %s endpoint already bound to node %s, cannot rebind to %s", e.RoadID, e.NodeA, e.NodeB)
}
