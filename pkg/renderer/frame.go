package renderer

import (
	"context"
	"fmt"
	"image"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
	"github.com/df07/go-blackhole-raytracer/pkg/physics"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for the frame renderer
type Config struct {
	Width, Height int
	TileSize      int // Size of each tile (64x64 recommended)
	NumWorkers    int // Number of parallel workers (0 = use CPU count)
	Full          QualityConfig
	Interactive   QualityConfig
}

// DefaultConfig returns sensible default values for the given frame size
func DefaultConfig(width, height int) Config {
	return Config{
		Width:       width,
		Height:      height,
		TileSize:    64,
		NumWorkers:  0,
		Full:        FullQuality(),
		Interactive: InteractiveQuality(),
	}
}

// Renderer assembles frames: it fans the frame out across the tile grid,
// runs every pixel's trace in parallel, and hands back a fully written RGBA
// buffer. A fresh buffer is allocated per frame, so a frame in flight can
// never scribble on a buffer already handed to the display collaborator.
type Renderer struct {
	config    Config
	raytracer *Raytracer
	tiles     []Tile
	pool      *WorkerPool
	logger    core.Logger
}

// NewRenderer creates a renderer and starts its worker pool. Call Close when
// done to release the workers.
func NewRenderer(bh *physics.BlackHole, disk *physics.AccretionDisk, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.TileSize <= 0 {
		config.TileSize = 64
	}

	raytracer := NewRaytracer(bh, disk)
	raytracer.SetQuality(config.Full, config.Interactive)

	pool := NewWorkerPool(raytracer, config.Width, config.Height, config.TileSize, config.NumWorkers)
	pool.Start()

	return &Renderer{
		config:    config,
		raytracer: raytracer,
		tiles:     NewTileGrid(config.Width, config.Height, config.TileSize),
		pool:      pool,
		logger:    logger,
	}
}

// Raytracer exposes the underlying per-pixel tracer for configuration
// between frames
func (r *Renderer) Raytracer() *Raytracer {
	return r.raytracer
}

// Size returns the frame dimensions
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// RenderFrame traces every pixel for the given camera pose and returns the
// completed frame. The buffer is fully populated, in row-major pixel order,
// before it is returned. Cancelling the context abandons the frame between
// tiles; individual rays always run to a terminal state.
func (r *Renderer) RenderFrame(ctx context.Context, pose CameraPose, simTime float64) (*image.RGBA, FrameStats, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))

	select {
	case <-ctx.Done():
		return nil, FrameStats{}, ctx.Err()
	default:
	}

	for i, tile := range r.tiles {
		r.pool.SubmitTask(TileTask{
			Tile:    tile,
			TaskID:  i,
			Pose:    pose,
			SimTime: simTime,
			Image:   img,
		})
	}

	var stats FrameStats
	for range r.tiles {
		result, ok := r.pool.GetResult()
		if !ok {
			return nil, FrameStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.merge(result.Stats)

		select {
		case <-ctx.Done():
			// Drain remaining tiles before abandoning the frame so the
			// pool is clean for the next one.
			continue
		default:
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, FrameStats{}, err
	}

	r.logger.Printf("Frame complete: %dx%d, %.0f avg steps/pixel, %d max\n",
		r.config.Width, r.config.Height, stats.AverageSteps(), stats.MaxStepsUsed)
	return img, stats, nil
}

// Close shuts down the worker pool
func (r *Renderer) Close() {
	r.pool.Stop()
}
