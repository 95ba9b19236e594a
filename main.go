package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/scene"
	"github.com/optray/go-ray-optics/pkg/tracer"
)

func main() {
	scenePath := flag.String("scene", "", "Path to a JSON scene file (overrides -demo)")
	demo := flag.String("demo", "bench", "Built-in demo scene: 'bench' or 'cavity'")
	ox := flag.Float64("ox", 0, "Launch ray origin X")
	oy := flag.Float64("oy", 0, "Launch ray origin Y")
	dx := flag.Float64("dx", 1, "Launch ray direction X")
	dy := flag.Float64("dy", 0, "Launch ray direction Y")
	maxBounces := flag.Int("max-bounces", 50, "Maximum bounce depth per lineage")
	maxChildDepth := flag.Int("max-child-depth", 10, "Maximum branching depth")
	out := flag.String("out", "", "Output file for the trace JSON (default stdout)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Planar Optical Ray Tracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	sceneObj, err := loadScene(*scenePath, *demo)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	config := tracer.DefaultConfig()
	config.MaxBounces = *maxBounces
	config.MaxChildDepth = *maxChildDepth

	t, err := tracer.New(sceneObj, nil, config)
	if err != nil {
		fmt.Printf("Error creating tracer: %v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()
	trace, err := t.Trace(core.NewVec2(*ox, *oy), core.NewVec2(*dx, *dy))
	if err != nil {
		fmt.Printf("Trace error: %v\n", err)
		os.Exit(1)
	}
	traceTime := time.Since(startTime)

	fmt.Printf("Trace completed in %v: %d nodes, terminal reason %q\n",
		traceTime, trace.Count(), trace.Reason)

	if err := writeTrace(trace, *out); err != nil {
		fmt.Printf("Error writing trace: %v\n", err)
		os.Exit(1)
	}
}

func loadScene(path, demo string) (*scene.Scene, error) {
	if path != "" {
		return scene.LoadFile(path)
	}
	switch demo {
	case "bench":
		return scene.NewDemoScene(), nil
	case "cavity":
		return scene.NewCavityScene(), nil
	default:
		return nil, fmt.Errorf("unknown demo scene %q", demo)
	}
}

func writeTrace(trace *tracer.RayTrace, path string) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(trace)
}
