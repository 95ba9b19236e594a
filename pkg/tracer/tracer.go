package tracer

import (
	"fmt"
	"math"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/interaction"
	"github.com/optray/go-ray-optics/pkg/scene"
)

// Config contains tracing configuration
type Config struct {
	AmbientIndex   float64 // Refractive index outside all scene objects
	MinHitDistance float64 // Intersections closer than this are ignored (excludes the departure surface)
	MaxBounces     int     // Maximum bounce depth per lineage
	MaxChildDepth  int     // Maximum branching depth across child lineages
}

// DefaultConfig returns the standard tracing configuration
func DefaultConfig() Config {
	return Config{
		AmbientIndex:   1.0,
		MinHitDistance: 1e-4,
		MaxBounces:     50,
		MaxChildDepth:  10,
	}
}

// Validate checks the configuration. Depth limits must be non-negative:
// exceeding them silently terminates a lineage rather than erroring, so an
// unbounded scene (a resonant cavity, say) stays boundable.
func (c Config) Validate() error {
	if c.MaxBounces < 0 {
		return fmt.Errorf("max bounces must be non-negative, got %d", c.MaxBounces)
	}
	if c.MaxChildDepth < 0 {
		return fmt.Errorf("max child depth must be non-negative, got %d", c.MaxChildDepth)
	}
	if c.MinHitDistance <= 0 {
		return fmt.Errorf("min hit distance must be positive, got %g", c.MinHitDistance)
	}
	if c.AmbientIndex <= 0 {
		return fmt.Errorf("ambient refractive index must be positive, got %g", c.AmbientIndex)
	}
	return nil
}

// TerminalReason states why a ray lineage stopped
type TerminalReason string

const (
	ReasonAbsorbed       TerminalReason = "absorbed"        // A behavior ended the lineage
	ReasonNoIntersection TerminalReason = "no_intersection" // The ray left the scene
	ReasonDepthExceeded  TerminalReason = "depth_exceeded"  // A depth limit truncated the lineage
)

// RayNode is one point in a ray's trajectory
type RayNode struct {
	Point      core.Vec2    `json:"point"`
	Direction  core.Vec2    `json:"direction"`
	Bounce     int          `json:"bounce"`
	ChildDepth int          `json:"childDepth"`
	Payload    core.Payload `json:"-"`
	Tags       []string     `json:"tags,omitempty"`  // Inherited from the object struck to produce this node
	Child      *RayTrace    `json:"child,omitempty"` // At most one branch lineage per node
}

// RayTrace is the ordered sequence of nodes from a ray's origin to its
// terminal state. Child traces form a tree, never a DAG: each branch is
// created once and never merged.
type RayTrace struct {
	Nodes  []RayNode      `json:"nodes"`
	Reason TerminalReason `json:"reason"`
}

// Tracer runs trace passes over an immutable scene snapshot
type Tracer struct {
	scene    *scene.Scene
	registry *interaction.Registry
	config   Config
}

// New creates a tracer for the given scene. A nil registry gets the
// built-in behaviors.
func New(s *scene.Scene, registry *interaction.Registry, config Config) (*Tracer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	if registry == nil {
		registry = interaction.NewRegistry(config.AmbientIndex)
	}
	return &Tracer{scene: s, registry: registry, config: config}, nil
}

// Trace follows a single ray from its origin through every interaction
// until a terminal state, producing the ray's trace tree.
func (t *Tracer) Trace(origin, dir core.Vec2) (*RayTrace, error) {
	return t.run(RayNode{Point: origin, Direction: dir.Normalize()})
}

// run is the per-lineage state machine: Active until absorbed, out of
// scene, or over a depth limit. Branch lineages are traced depth-first to
// completion before the parent proceeds.
func (t *Tracer) run(start RayNode) (*RayTrace, error) {
	trace := &RayTrace{Nodes: []RayNode{start}}
	if start.Bounce > t.config.MaxBounces || start.ChildDepth > t.config.MaxChildDepth {
		trace.Reason = ReasonDepthExceeded
		return trace, nil
	}

	current := start
	for {
		ray := core.NewRay(current.Point, current.Direction)
		hit, ok := t.nearestHit(ray)
		if !ok {
			trace.Reason = ReasonNoIntersection
			return trace, nil
		}

		behavior, err := t.registry.Lookup(hit.Object.Action)
		if err != nil {
			return nil, err
		}
		result, err := behavior.Interact(current.Direction, hit, current.Payload)
		if err != nil {
			return nil, fmt.Errorf("object z=%d: %w", hit.Object.ZOrder, err)
		}

		next := RayNode{
			Point:      hit.Point,
			Direction:  result.Direction,
			Bounce:     current.Bounce + 1,
			ChildDepth: current.ChildDepth,
			Tags:       hit.Object.Tags,
		}
		// An empty returned payload is dropped, not carried forward
		if !result.Payload.IsEmpty() {
			next.Payload = result.Payload
		}

		if result.HasBranch {
			next.ChildDepth = current.ChildDepth + 1
			branch := RayNode{
				Point:      hit.Point,
				Direction:  result.Branch,
				Bounce:     current.Bounce + 1,
				ChildDepth: current.ChildDepth + 1,
				Payload:    next.Payload.Clone(),
				Tags:       hit.Object.Tags,
			}
			child, err := t.run(branch)
			if err != nil {
				return nil, err
			}
			next.Child = child
		}

		trace.Nodes = append(trace.Nodes, next)

		if !result.Continue {
			trace.Reason = ReasonAbsorbed
			return trace, nil
		}
		if next.Bounce > t.config.MaxBounces || next.ChildDepth > t.config.MaxChildDepth {
			trace.Reason = ReasonDepthExceeded
			return trace, nil
		}
		current = next
	}
}

// nearestHit scans every object carrying an interaction type and returns
// the globally nearest valid intersection. Ties break to the first object
// and segment encountered in enumeration order, deliberately and
// deterministically.
func (t *Tracer) nearestHit(ray core.Ray) (interaction.Hit, bool) {
	var best interaction.Hit
	bestDist := math.Inf(1)
	found := false
	for _, obj := range t.scene.Objects {
		if obj.Action == "" {
			continue
		}
		for _, sp := range obj.Subpaths {
			for _, seg := range sp.Segments {
				ix, ok := seg.Intersect(ray, t.config.MinHitDistance)
				if !ok || ix.Distance >= bestDist {
					continue
				}
				bestDist = ix.Distance
				best = interaction.Hit{
					Ray:     ray,
					Point:   ix.Point,
					Normal:  ix.Normal,
					Object:  obj,
					Scene:   t.scene,
					MinDist: t.config.MinHitDistance,
				}
				found = true
			}
		}
	}
	return best, found
}
