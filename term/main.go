package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/df07/go-blackhole-raytracer/pkg/renderer"
	"github.com/df07/go-blackhole-raytracer/pkg/scene"
)

const (
	orbitStep     = 0.08 // Radians per key press
	elevationStep = 0.05
	zoomFraction  = 0.1 // Fraction of current radius per key press
	frameInterval = 100 * time.Millisecond
)

// nopLogger discards render logs so they cannot corrupt the terminal UI
type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}

// Viewer drives an interactive terminal session. Each character cell shows
// two vertically stacked pixels via the upper half block glyph.
type Viewer struct {
	screen tcell.Screen
	config *scene.Config
	camera *scene.OrbitCamera
	rend   *renderer.Renderer

	width, height int // Render resolution in pixels
	simTime       float64
	paused        bool
	doppler       bool
	preset        scene.Preset
	dirty         bool
	lastFrame     time.Time
	stats         renderer.FrameStats
}

func NewViewer(config *scene.Config) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newViewer(screen, config), nil
}

// newViewer wires a viewer onto an initialized screen
func newViewer(screen tcell.Screen, config *scene.Config) *Viewer {
	v := &Viewer{
		screen:  screen,
		config:  config,
		camera:  scene.NewOrbitCamera(config.BlackHole.Position),
		doppler: config.Doppler,
		preset:  scene.PresetEquatorial,
		dirty:   true,
	}
	v.camera.Moving = true // Interactive quality for the terminal
	v.resize()
	return v
}

// resize rebuilds the renderer to match the terminal dimensions, reserving
// the bottom row for the status line
func (v *Viewer) resize() {
	cols, rows := v.screen.Size()
	if rows < 2 {
		rows = 2
	}
	v.width = cols
	v.height = (rows - 1) * 2

	if v.rend != nil {
		v.rend.Close()
	}
	v.rend = renderer.NewRenderer(v.config.BlackHole, v.config.Disk,
		renderer.DefaultConfig(v.width, v.height), nopLogger{})
	v.rend.Raytracer().SetDoppler(v.doppler)
	v.rend.Raytracer().SetTurbulence(v.config.Turbulence)
	v.dirty = true
}

func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		switch ev.Rune() {
		case 'q':
			return false
		case 'h':
			v.camera.Orbit(-orbitStep, 0)
			v.dirty = true
		case 'l':
			v.camera.Orbit(orbitStep, 0)
			v.dirty = true
		case 'j':
			v.camera.Orbit(0, elevationStep)
			v.dirty = true
		case 'k':
			v.camera.Orbit(0, -elevationStep)
			v.dirty = true
		case '+', '=':
			v.camera.Zoom(-zoomFraction * v.camera.Radius)
			v.dirty = true
		case '-':
			v.camera.Zoom(zoomFraction * v.camera.Radius)
			v.dirty = true
		case 'p':
			v.preset = (v.preset + 1) % 3
			v.camera.ApplyPreset(v.preset)
			v.dirty = true
		case 'r':
			v.camera.Reset()
			v.preset = scene.PresetEquatorial
			v.dirty = true
		case 'd':
			v.doppler = !v.doppler
			v.rend.Raytracer().SetDoppler(v.doppler)
			v.dirty = true
		case ' ':
			v.paused = !v.paused
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	}
	return true
}

// draw renders a frame and blits it to the screen, two pixels per cell
func (v *Viewer) draw() {
	img, stats, err := v.rend.RenderFrame(context.Background(),
		v.camera.Pose(v.width, v.height), v.simTime)
	if err != nil {
		return
	}
	v.stats = stats

	for cy := 0; cy < v.height/2; cy++ {
		for cx := 0; cx < v.width; cx++ {
			top := pixelColor(img, cx, 2*cy)
			bottom := pixelColor(img, cx, 2*cy+1)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			v.screen.SetContent(cx, cy, '▀', nil, style)
		}
	}

	v.drawStatus()
	v.screen.Show()
}

func (v *Viewer) drawStatus() {
	status := fmt.Sprintf(
		" %s | r=%.2e m | az=%.2f el=%.2f | doppler=%v | t=%.1fs | disk=%d avg=%.0f steps | hjkl orbit +/- zoom p preset d doppler space pause q quit",
		v.preset, v.camera.Radius, v.camera.Azimuth, v.camera.Elevation,
		v.doppler, v.simTime, v.stats.DiskPixels, v.stats.AverageSteps())

	_, rows := v.screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkBlue)
	for cx := 0; cx < v.width; cx++ {
		r := ' '
		if cx < len(status) {
			r = rune(status[cx])
		}
		v.screen.SetContent(cx, rows-1, r, nil, style)
	}
}

func pixelColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (v *Viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	// PollEvent returns nil once the screen is finalized, which is the
	// pump's signal to stop
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.draw()
	v.lastFrame = time.Now()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			if !v.paused {
				v.simTime += time.Since(v.lastFrame).Seconds()
				v.dirty = true
			}
			v.lastFrame = time.Now()
			if v.dirty {
				v.draw()
				v.dirty = false
			}
		}
	}
}

func (v *Viewer) cleanup() {
	if v.rend != nil {
		v.rend.Close()
	}
	v.screen.Fini()
}

func main() {
	config := scene.NewSagittariusConfig()
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid session configuration: %v\n", err)
		os.Exit(1)
	}

	viewer, err := NewViewer(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer viewer.cleanup()

	viewer.run()
}
