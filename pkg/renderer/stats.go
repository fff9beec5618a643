package renderer

import "github.com/df07/go-blackhole-raytracer/pkg/physics"

// FrameStats summarizes one rendered frame: how each pixel's ray terminated
// and how much integration work the frame cost
type FrameStats struct {
	TotalPixels     int
	EscapedPixels   int   // Background pixels, including step-limited rays
	CapturedPixels  int   // Pixels inside the shadow of the horizon
	DiskPixels      int   // Pixels landing on the accretion disk
	StepLimitPixels int   // Subset of escaped pixels that hit the step cap
	TotalSteps      int64 // Integration steps summed over all rays
	MaxStepsUsed    int   // Largest step count any single ray consumed
}

// record accumulates one ray's outcome into the stats
func (fs *FrameStats) record(result physics.TraceResult) {
	fs.TotalPixels++
	fs.TotalSteps += int64(result.Steps)
	fs.MaxStepsUsed = max(fs.MaxStepsUsed, result.Steps)

	switch result.Status {
	case physics.StatusCaptured:
		fs.CapturedPixels++
	case physics.StatusDiskHit:
		fs.DiskPixels++
	case physics.StatusStepLimit:
		fs.StepLimitPixels++
		fs.EscapedPixels++
	default:
		fs.EscapedPixels++
	}
}

// merge folds another tile's stats into this one
func (fs *FrameStats) merge(other FrameStats) {
	fs.TotalPixels += other.TotalPixels
	fs.EscapedPixels += other.EscapedPixels
	fs.CapturedPixels += other.CapturedPixels
	fs.DiskPixels += other.DiskPixels
	fs.StepLimitPixels += other.StepLimitPixels
	fs.TotalSteps += other.TotalSteps
	fs.MaxStepsUsed = max(fs.MaxStepsUsed, other.MaxStepsUsed)
}

// AverageSteps returns the mean integration steps per pixel
func (fs *FrameStats) AverageSteps() float64 {
	if fs.TotalPixels == 0 {
		return 0
	}
	return float64(fs.TotalSteps) / float64(fs.TotalPixels)
}
