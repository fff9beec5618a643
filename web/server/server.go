package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

// Server handles web requests for the black hole raytracer
type Server struct {
	port   int
	config *scene.Config
}

// NewServer creates a new web server with the default Sagittarius A* session
func NewServer(port int) *Server {
	return &Server{
		port:   port,
		config: scene.NewSagittariusConfig(),
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Preset    string  `json:"preset"`    // Camera preset name, or "" for explicit orbit values
	Azimuth   float64 `json:"azimuth"`   // Orbit azimuth in radians
	Elevation float64 `json:"elevation"` // Orbit elevation in radians
	Radius    float64 `json:"radius"`    // Orbit radius in meters
	Width     int     `json:"width"`     // Image width
	Height    int     `json:"height"`    // Image height
	Frames    int     `json:"frames"`    // Number of frames to stream
	FPS       float64 `json:"fps"`       // Simulation-time frame rate for disk animation
	Fast      bool    `json:"fast"`      // Use the interactive quality level
	Doppler   bool    `json:"doppler"`   // Apply Doppler beaming
}

// FrameUpdate represents a single rendered frame sent via SSE
type FrameUpdate struct {
	FrameNumber int    `json:"frameNumber"`
	TotalFrames int    `json:"totalFrames"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats represents frame render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	DiskPixels      int     `json:"diskPixels"`
	CapturedPixels  int     `json:"capturedPixels"`
	EscapedPixels   int     `json:"escapedPixels"`
	StepLimitPixels int     `json:"stepLimitPixels"`
	AverageSteps    float64 `json:"averageSteps"`
	MaxStepsUsed    int     `json:"maxStepsUsed"`
}

// Start starts the web server
func (s *Server) Start() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("session configuration rejected: %w", err)
	}

	// Serve static files
	http.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	http.HandleFunc("/api/render", s.handleRender)
	http.HandleFunc("/api/health", s.handleHealth)
	http.HandleFunc("/api/presets", s.handlePresets)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handlePresets lists the orbit camera presets with their parameters
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	camera := scene.NewOrbitCamera(s.config.BlackHole.Position)
	presets := make([]map[string]interface{}, 0, 3)
	for _, p := range []scene.Preset{scene.PresetEquatorial, scene.PresetPolar, scene.PresetCloseUp} {
		camera.ApplyPreset(p)
		presets = append(presets, map[string]interface{}{
			"name":      p.String(),
			"azimuth":   camera.Azimuth,
			"elevation": camera.Elevation,
			"radius":    camera.Radius,
		})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"presets": presets})
}

// handleRender streams rendered frames via SSE. Each frame advances the
// simulation time input, animating the disk without touching the physics.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	camera := scene.NewOrbitCamera(s.config.BlackHole.Position)
	if req.Preset != "" {
		preset, err := parsePresetName(req.Preset)
		if err != nil {
			s.sendSSEError(w, err.Error())
			return
		}
		camera.ApplyPreset(preset)
	} else {
		camera.Azimuth = req.Azimuth
		camera.Elevation = req.Elevation
		camera.Radius = req.Radius
		camera.Orbit(0, 0) // Apply elevation clamp
		camera.Zoom(0)     // Apply radius clamp
	}
	camera.Moving = req.Fast

	rend := renderer.NewRenderer(s.config.BlackHole, s.config.Disk,
		renderer.DefaultConfig(req.Width, req.Height), NewWebLogger())
	defer rend.Close()
	rend.Raytracer().SetDoppler(req.Doppler)
	rend.Raytracer().SetTurbulence(s.config.Turbulence)

	// Use request context to detect client disconnection
	ctx := r.Context()
	startTime := time.Now()

	for frame := 1; frame <= req.Frames; frame++ {
		simTime := float64(frame-1) / req.FPS

		img, stats, err := rend.RenderFrame(ctx, camera.Pose(req.Width, req.Height), simTime)
		if err != nil {
			// Client gone or frame abandoned; nothing more to stream.
			return
		}

		imageData, err := s.imageToBase64PNG(img)
		if err != nil {
			s.sendSSEError(w, fmt.Sprintf("Failed to encode frame: %v", err))
			return
		}

		update := FrameUpdate{
			FrameNumber: frame,
			TotalFrames: req.Frames,
			ImageData:   imageData,
			Stats: Stats{
				TotalPixels:     stats.TotalPixels,
				DiskPixels:      stats.DiskPixels,
				CapturedPixels:  stats.CapturedPixels,
				EscapedPixels:   stats.EscapedPixels,
				StepLimitPixels: stats.StepLimitPixels,
				AverageSteps:    stats.AverageSteps(),
				MaxStepsUsed:    stats.MaxStepsUsed,
			},
			IsComplete: frame == req.Frames,
			ElapsedMs:  time.Since(startTime).Milliseconds(),
		}

		if err := s.sendSSEUpdate(w, update); err != nil {
			return
		}
	}

	s.sendSSEEvent(w, "complete", "Rendering completed")
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	req.Preset = query.Get("preset")

	var err error
	if req.Width, err = parseIntParam(query, "width", 800, 100, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 600, 100, 2000); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(query, "frames", 1, 1, 600); err != nil {
		return nil, err
	}
	if req.FPS, err = parseFloatParam(query, "fps", 10, 0.1, 60); err != nil {
		return nil, err
	}
	if req.Azimuth, err = parseFloatParam(query, "azimuth", 0, -4*math.Pi, 4*math.Pi); err != nil {
		return nil, err
	}
	if req.Elevation, err = parseFloatParam(query, "elevation", math.Pi/2, 0.01, math.Pi-0.01); err != nil {
		return nil, err
	}
	if req.Radius, err = parseFloatParam(query, "radius", 6.34194e10, 1e10, 1e12); err != nil {
		return nil, err
	}
	req.Fast = query.Get("fast") == "true"
	req.Doppler = query.Get("doppler") != "false"

	// Performance warning
	if req.Width*req.Height > 800*600 && !req.Fast {
		log.Printf("Render warning: Large frame at full quality may render slowly")
	}

	return req, nil
}

// parsePresetName maps a preset query value to a camera preset
func parsePresetName(name string) (scene.Preset, error) {
	switch name {
	case "equatorial":
		return scene.PresetEquatorial, nil
	case "polar":
		return scene.PresetPolar, nil
	case "close-up", "closeup":
		return scene.PresetCloseUp, nil
	default:
		return 0, fmt.Errorf("unknown preset: %s", name)
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a frame update via SSE
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update FrameUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "frame", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
