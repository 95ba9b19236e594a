package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/optray/go-ray-optics/pkg/core"
	"github.com/optray/go-ray-optics/pkg/interaction"
	"github.com/optray/go-ray-optics/pkg/scene"
	"github.com/optray/go-ray-optics/pkg/tracer"
)

// Server exposes ray tracing over HTTP
type Server struct {
	logger *slog.Logger
	router *mux.Router
	cache  *tracer.Cache
}

// New creates a web server. cacheSize bounds the number of cached traces
// for the built-in demo scenes.
func New(logger *slog.Logger, cacheSize int) (*Server, error) {
	cache, err := tracer.NewCache(cacheSize)
	if err != nil {
		return nil, err
	}
	s := &Server{logger: logger, cache: cache}

	r := mux.NewRouter()
	r.Use(s.requestLogger)
	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/scenes", s.handleScenes).Methods("GET")
	r.HandleFunc("/api/behaviors", s.handleBehaviors).Methods("GET")
	r.HandleFunc("/api/trace", s.handleTrace).Methods("POST")
	s.router = r
	return s, nil
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.router
}

// TraceRequest is the body of POST /api/trace. Either Demo names a built-in
// scene or Scene carries a full scene description.
type TraceRequest struct {
	Demo   string          `json:"demo,omitempty"`
	Scene  json.RawMessage `json:"scene,omitempty"`
	Rays   []LaunchRay     `json:"rays"`
	Config *ConfigOverride `json:"config,omitempty"`
}

// LaunchRay is one ray origin and direction to trace
type LaunchRay struct {
	Origin    [2]float64 `json:"origin"`
	Direction [2]float64 `json:"direction"`
}

// ConfigOverride carries optional tracing parameters; absent fields keep
// their defaults.
type ConfigOverride struct {
	AmbientIndex   *float64 `json:"ambientIndex,omitempty"`
	MinHitDistance *float64 `json:"minHitDistance,omitempty"`
	MaxBounces     *int     `json:"maxBounces,omitempty"`
	MaxChildDepth  *int     `json:"maxChildDepth,omitempty"`
}

// TraceResponse is the body returned by POST /api/trace
type TraceResponse struct {
	RequestID string             `json:"requestId"`
	Traces    []*tracer.RayTrace `json:"traces"`
	ElapsedMs int64              `json:"elapsedMs"`
}

// demoScenes maps demo names to scene constructors
var demoScenes = map[string]func() *scene.Scene{
	"bench":  scene.NewDemoScene,
	"cavity": scene.NewCavityScene,
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(demoScenes))
	for name := range demoScenes {
		names = append(names, name)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"scenes": names})
}

func (s *Server) handleBehaviors(w http.ResponseWriter, r *http.Request) {
	registry := interaction.NewRegistry(tracer.DefaultConfig().AmbientIndex)
	writeJSON(w, http.StatusOK, map[string][]string{"behaviors": registry.Names()})
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	start := time.Now()

	var req TraceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Rays) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at least one ray is required"})
		return
	}

	sceneObj, isDemo, err := s.buildScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := buildConfig(req.Config)
	t, err := tracer.New(sceneObj, nil, config)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	traces, err := s.runTraces(r, t, req.Rays, isDemo)
	if err != nil {
		s.logger.Error("trace failed", "requestId", requestID, "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, TraceResponse{
		RequestID: requestID,
		Traces:    traces,
		ElapsedMs: time.Since(start).Milliseconds(),
	})
}

// runTraces traces all launch rays. Demo scenes have stable revisions, so
// their traces go through the cache; ad-hoc scenes are traced in parallel
// without caching.
func (s *Server) runTraces(r *http.Request, t *tracer.Tracer, launches []LaunchRay, isDemo bool) ([]*tracer.RayTrace, error) {
	if isDemo {
		traces := make([]*tracer.RayTrace, len(launches))
		for i, l := range launches {
			trace, err := t.TraceCached(s.cache, core.NewVec2(l.Origin[0], l.Origin[1]), core.NewVec2(l.Direction[0], l.Direction[1]))
			if err != nil {
				return nil, err
			}
			traces[i] = trace
		}
		return traces, nil
	}

	rays := make([]core.Ray, len(launches))
	for i, l := range launches {
		rays[i] = core.NewRay(core.NewVec2(l.Origin[0], l.Origin[1]), core.NewVec2(l.Direction[0], l.Direction[1]))
	}
	return t.TraceAll(r.Context(), rays)
}

// buildScene resolves the request's scene: a named demo or an inline
// description.
func (s *Server) buildScene(req TraceRequest) (*scene.Scene, bool, error) {
	if req.Demo != "" {
		build, ok := demoScenes[req.Demo]
		if !ok {
			return nil, false, fmt.Errorf("unknown demo scene %q", req.Demo)
		}
		return build(), true, nil
	}
	if len(req.Scene) == 0 {
		return nil, false, fmt.Errorf("either demo or scene is required")
	}
	sceneObj, err := scene.Load(bytes.NewReader(req.Scene))
	if err != nil {
		return nil, false, err
	}
	return sceneObj, false, nil
}

// buildConfig applies request overrides on top of the defaults
func buildConfig(override *ConfigOverride) tracer.Config {
	config := tracer.DefaultConfig()
	if override == nil {
		return config
	}
	if override.AmbientIndex != nil {
		config.AmbientIndex = *override.AmbientIndex
	}
	if override.MinHitDistance != nil {
		config.MinHitDistance = *override.MinHitDistance
	}
	if override.MaxBounces != nil {
		config.MaxBounces = *override.MaxBounces
	}
	if override.MaxChildDepth != nil {
		config.MaxChildDepth = *override.MaxChildDepth
	}
	return config
}

// requestLogger logs each request with a duration
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
