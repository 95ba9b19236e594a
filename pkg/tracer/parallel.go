package tracer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/optray/go-ray-optics/pkg/core"
)

// TraceAll traces every launch ray against the same immutable scene
// snapshot in parallel. Lineages share no mutable state, so this is safe as
// long as the scene is not swapped mid-pass. Results are ordered like the
// input rays.
func (t *Tracer) TraceAll(ctx context.Context, rays []core.Ray) ([]*RayTrace, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*RayTrace, len(rays))
	for i, ray := range rays {
		i, ray := i, ray
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			trace, err := t.Trace(ray.Origin, ray.Direction)
			if err != nil {
				return fmt.Errorf("ray %d: %w", i, err)
			}
			results[i] = trace
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
