package tracer

import (
	"context"
	"reflect"
	"testing"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/scene"
)

func TestTraceAllMatchesSequential(t *testing.T) {
	tr := mustTracer(t, scene.NewDemoScene(), DefaultConfig())

	rays := []core.Ray{
		core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0)),
		core.NewRay(core.NewVec2(0, 1), core.NewVec2(1, 0)),
		core.NewRay(core.NewVec2(0, -1), core.NewVec2(1, 0)),
		core.NewRay(core.NewVec2(0, 0), core.NewVec2(-1, 0)),
	}

	parallel, err := tr.TraceAll(context.Background(), rays)
	if err != nil {
		t.Fatalf("TraceAll: %v", err)
	}
	if len(parallel) != len(rays) {
		t.Fatalf("got %d traces, want %d", len(parallel), len(rays))
	}
	for i, ray := range rays {
		sequential, err := tr.Trace(ray.Origin, ray.Direction)
		if err != nil {
			t.Fatalf("Trace ray %d: %v", i, err)
		}
		if !reflect.DeepEqual(parallel[i], sequential) {
			t.Errorf("ray %d: parallel and sequential traces differ", i)
		}
	}
}

func TestTraceAllCancelled(t *testing.T) {
	tr := mustTracer(t, scene.NewDemoScene(), DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rays := []core.Ray{core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0))}
	if _, err := tr.TraceAll(ctx, rays); err == nil {
		t.Error("cancelled context should abort the pass")
	}
}

func TestTraceAllEmpty(t *testing.T) {
	tr := mustTracer(t, scene.NewDemoScene(), DefaultConfig())
	traces, err := tr.TraceAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("TraceAll: %v", err)
	}
	if len(traces) != 0 {
		t.Errorf("got %d traces, want none", len(traces))
	}
}
