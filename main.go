package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

func main() {
	preset := flag.String("preset", "equatorial", "Camera preset: 'equatorial', 'polar' or 'close-up'")
	width := flag.Int("width", 1200, "Image width in pixels")
	height := flag.Int("height", 900, "Image height in pixels")
	fast := flag.Bool("fast", false, "Use the interactive quality level (larger steps, smaller step budget)")
	doppler := flag.Bool("doppler", true, "Apply Doppler beaming to the accretion disk")
	simTime := flag.Float64("time", 0, "Simulation time in seconds, animates the disk")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Black Hole Raytracer")
		fmt.Println("Usage: blackhole [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Traces light geodesics through the curved spacetime of Sagittarius A*")
		fmt.Println("and renders the accretion disk and the shadow of the event horizon.")
		fmt.Println()
		fmt.Println("Output will be saved to output/<preset>/render_<timestamp>.png")
		return
	}

	cameraPreset, err := parsePreset(*preset)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Starting Black Hole Raytracer...")

	config := scene.NewSagittariusConfig()
	config.Doppler = *doppler
	if err := config.Validate(); err != nil {
		fmt.Printf("Invalid session configuration: %v\n", err)
		os.Exit(1)
	}

	outputDir := filepath.Join("output", cameraPreset.String())
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	camera := scene.NewOrbitCamera(config.BlackHole.Position)
	camera.ApplyPreset(cameraPreset)
	pose := camera.Pose(*width, *height)
	pose.Moving = *fast

	r := renderer.NewRenderer(config.BlackHole, config.Disk, renderer.DefaultConfig(*width, *height), nil)
	defer r.Close()
	r.Raytracer().SetDoppler(config.Doppler)
	r.Raytracer().SetTurbulence(config.Turbulence)

	startTime := time.Now()
	img, stats, err := r.RenderFrame(context.Background(), pose, *simTime)
	if err != nil {
		fmt.Printf("Render error: %v\n", err)
		os.Exit(1)
	}
	renderTime := time.Since(startTime)

	fmt.Printf("Render completed in %v\n", renderTime)
	fmt.Printf("Pixels: %d disk, %d captured, %d escaped (%d step-limited)\n",
		stats.DiskPixels, stats.CapturedPixels, stats.EscapedPixels, stats.StepLimitPixels)
	fmt.Printf("Integration steps: %.0f avg, %d max per ray\n",
		stats.AverageSteps(), stats.MaxStepsUsed)

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// parsePreset maps a preset flag value to a camera preset
func parsePreset(name string) (scene.Preset, error) {
	switch name {
	case "equatorial":
		return scene.PresetEquatorial, nil
	case "polar":
		return scene.PresetPolar, nil
	case "close-up", "closeup":
		return scene.PresetCloseUp, nil
	default:
		return 0, fmt.Errorf("unknown preset %q (want 'equatorial', 'polar' or 'close-up')", name)
	}
}
