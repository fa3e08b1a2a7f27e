package models

// Graph pairs every node with every edge. The two slices come from one read
// snapshot, so no edge refers to a node missing from Nodes.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
