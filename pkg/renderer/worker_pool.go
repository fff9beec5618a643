package renderer

import (
	"image"
	"runtime"
	"sync"
)

// TileTask represents one tile of one frame for the worker pool
type TileTask struct {
	Tile    Tile
	TaskID  int
	Pose    CameraPose  // Immutable for the frame
	SimTime float64     // Animation time input
	Image   *image.RGBA // Shared frame buffer; tiles write disjoint slots
}

// TileResult contains the statistics from rendering one tile
type TileResult struct {
	TaskID int
	Stats  FrameStats
}

// WorkerPool renders tiles in parallel. All workers share one read-only
// Raytracer; per-pixel ray state is created and discarded inside each trace,
// so no synchronization is needed beyond the task and result channels.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	raytracer   *Raytracer
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool with the specified number of workers
// (0 = CPU count)
func NewWorkerPool(raytracer *Raytracer, width, height, tileSize, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	// Buffer enough for every tile of a frame so submission never blocks.
	maxTiles := ((width + tileSize - 1) / tileSize) * ((height + tileSize - 1) / tileSize)

	return &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		raytracer:   raytracer,
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop: trace every pixel of the tile and write each
// result into the pixel's own slot of the frame buffer
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		var stats FrameStats
		bounds := task.Tile.Bounds
		size := task.Image.Bounds()

		for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
			for px := bounds.Min.X; px < bounds.Max.X; px++ {
				radiance, result := wp.raytracer.TracePixel(
					&task.Pose, px, py, size.Dx(), size.Dy(), task.SimTime)
				task.Image.SetRGBA(px, py, ResolveColor(radiance))
				stats.record(result)
			}
		}

		wp.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}
