package scene

import (
	"math"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/geometry"
)

// NewLineObject creates an object made of a single straight segment
func NewLineObject(p0, p1 core.Vec2, action string, args []float64, zOrder int) *Object {
	return &Object{
		Subpaths: []geometry.Subpath{{
			Segments: []geometry.Segment{geometry.NewLineSegment(p0, p1)},
		}},
		Action: action,
		Args:   args,
		ZOrder: zOrder,
	}
}

// NewCircleObject creates a closed object bounded by a full circular arc
func NewCircleObject(center core.Vec2, radius float64, action string, args []float64, zOrder int) *Object {
	arc, _ := geometry.NewArcSegment(radius, radius, center, 0, 0, 2*math.Pi)
	return &Object{
		Subpaths: []geometry.Subpath{{
			Segments: []geometry.Segment{arc},
			Closed:   true,
		}},
		Action: action,
		Args:   args,
		ZOrder: zOrder,
	}
}

// NewBoxObject creates a closed rectangular object from four line segments.
// min is the lower-left corner, max the upper-right.
func NewBoxObject(min, max core.Vec2, action string, args []float64, zOrder int) *Object {
	a := min
	b := core.NewVec2(max.X, min.Y)
	c := max
	d := core.NewVec2(min.X, max.Y)
	return &Object{
		Subpaths: []geometry.Subpath{{
			Segments: []geometry.Segment{
				geometry.NewLineSegment(a, b),
				geometry.NewLineSegment(b, c),
				geometry.NewLineSegment(c, d),
				geometry.NewLineSegment(d, a),
			},
			Closed: true,
		}},
		Action: action,
		Args:   args,
		ZOrder: zOrder,
	}
}

// NewDemoScene builds a small bench: a converging lens, a glass sphere, a
// folding mirror and an absorbing screen. Used by the CLI, the web server
// and the tests.
func NewDemoScene() *Scene {
	lens := NewLineObject(core.NewVec2(4, -3), core.NewVec2(4, 3), "thin_lens", []float64{6}, 1)
	lens.Tags = []string{"lens"}

	glass := NewCircleObject(core.NewVec2(9, 0), 1.5, "refract", []float64{1.5}, 2)
	glass.Tags = []string{"glass"}

	mirror := NewLineObject(core.NewVec2(14, -4), core.NewVec2(18, 0), "mirror", nil, 3)
	mirror.Tags = []string{"fold"}

	screen := NewLineObject(core.NewVec2(0, 6), core.NewVec2(20, 6), "absorber", nil, 4)
	screen.Tags = []string{"screen"}

	return &Scene{
		Objects:  []*Object{lens, glass, mirror, screen},
		Revision: 1,
	}
}

// NewCavityScene builds a resonant cavity of two facing mirrors. Rays
// launched inside bounce until the depth limit; exercises DepthExceeded
// termination.
func NewCavityScene() *Scene {
	left := NewLineObject(core.NewVec2(0, -5), core.NewVec2(0, 5), "mirror", nil, 1)
	right := NewLineObject(core.NewVec2(10, -5), core.NewVec2(10, 5), "mirror", nil, 2)
	return &Scene{
		Objects:  []*Object{left, right},
		Revision: 1,
	}
}
