package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/geometry"
)

// rawScene is the JSON wire form of a scene
type rawScene struct {
	Revision int64       `json:"revision"`
	Objects  []rawObject `json:"objects"`
}

type rawObject struct {
	Action   string       `json:"action"`
	Args     []float64    `json:"args"`
	ZOrder   int          `json:"zorder"`
	Tags     []string     `json:"tags"`
	Subpaths []rawSubpath `json:"subpaths"`
}

type rawSubpath struct {
	Closed   bool         `json:"closed"`
	Segments []rawSegment `json:"segments"`
}

type rawSegment struct {
	Type   string       `json:"type"` // "line", "quadratic", "cubic" or "arc"
	Points [][2]float64 `json:"points,omitempty"`
	Rx     float64      `json:"rx,omitempty"`
	Ry     float64      `json:"ry,omitempty"`
	Cx     float64      `json:"cx,omitempty"`
	Cy     float64      `json:"cy,omitempty"`
	Phi    float64      `json:"phi,omitempty"`
	T1     float64      `json:"t1,omitempty"`
	T2     float64      `json:"t2,omitempty"`
}

// Load reads a JSON scene description and builds a validated Scene
func Load(r io.Reader) (*Scene, error) {
	var raw rawScene
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	s := &Scene{Revision: raw.Revision}
	for i, ro := range raw.Objects {
		obj := &Object{
			Action: ro.Action,
			Args:   ro.Args,
			ZOrder: ro.ZOrder,
			Tags:   ro.Tags,
		}
		for j, rsp := range ro.Subpaths {
			sp := geometry.Subpath{Closed: rsp.Closed}
			for k, rs := range rsp.Segments {
				seg, err := buildSegment(rs)
				if err != nil {
					return nil, fmt.Errorf("object %d subpath %d segment %d: %w", i, j, k, err)
				}
				sp.Segments = append(sp.Segments, seg)
			}
			obj.Subpaths = append(obj.Subpaths, sp)
		}
		s.Objects = append(s.Objects, obj)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads a JSON scene description from disk
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// buildSegment converts one wire segment into its geometry type
func buildSegment(rs rawSegment) (geometry.Segment, error) {
	switch rs.Type {
	case "line", "quadratic", "cubic":
		want := map[string]int{"line": 2, "quadratic": 3, "cubic": 4}[rs.Type]
		if len(rs.Points) != want {
			return nil, fmt.Errorf("%s segment needs %d points, got %d", rs.Type, want, len(rs.Points))
		}
		points := make([]core.Vec2, len(rs.Points))
		for i, p := range rs.Points {
			points[i] = core.NewVec2(p[0], p[1])
		}
		return geometry.NewPolySegment(points...)
	case "arc":
		return geometry.NewArcSegment(rs.Rx, rs.Ry, core.NewVec2(rs.Cx, rs.Cy), rs.Phi, rs.T1, rs.T2)
	default:
		return nil, fmt.Errorf("unknown segment type %q", rs.Type)
	}
}
