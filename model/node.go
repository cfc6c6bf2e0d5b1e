package model

// Node is a junction or road-endpoint vertex of the output graph.
// Nodes are owned by a Node Container (see the container package); the
// core only ever references nodes by ID and by borrowed *Node after
// insertion.
type Node struct {
	ID  string
	Pos Point
}
