package tracer

import (
	"github.com/optray/go-ray-optics/pkg/core"
)

// Walk visits every node of the trace in order, descending into child
// traces directly after the node that owns them.
func (rt *RayTrace) Walk(fn func(node *RayNode)) {
	for i := range rt.Nodes {
		node := &rt.Nodes[i]
		fn(node)
		if node.Child != nil {
			node.Child.Walk(fn)
		}
	}
}

// HasTag reports whether the node inherited the given tag from the object
// struck to produce it.
func (n *RayNode) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NodesWithTag returns every node, including within child branches, whose
// struck object carried the given tag.
func (rt *RayTrace) NodesWithTag(tag string) []*RayNode {
	var out []*RayNode
	rt.Walk(func(node *RayNode) {
		if node.HasTag(tag) {
			out = append(out, node)
		}
	})
	return out
}

// Points returns the launch points of the main lineage in order, without
// descending into branches. Suitable for drawing the primary beam.
func (rt *RayTrace) Points() []core.Vec2 {
	points := make([]core.Vec2, len(rt.Nodes))
	for i, node := range rt.Nodes {
		points[i] = node.Point
	}
	return points
}

// Terminal returns the final node of the main lineage
func (rt *RayTrace) Terminal() *RayNode {
	return &rt.Nodes[len(rt.Nodes)-1]
}

// Count returns the total number of nodes including all child branches
func (rt *RayTrace) Count() int {
	count := 0
	rt.Walk(func(*RayNode) { count++ })
	return count
}
