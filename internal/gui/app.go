package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/dynamo"
	"github.com/san-kum/clothsim/internal/forcing"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/viz"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	maxTelemetry = 200

	orbitGain = 0.005
	windGain  = 0.1
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColWire    = rl.NewColor(180, 180, 180, 255)
	ColFace    = rl.NewColor(70, 90, 120, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrab    = rl.NewColor(255, 120, 80, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

type App struct {
	cfg  *config.Config
	name string

	sim   *sim.Simulator
	cloth *cloth.Cloth
	gust  *forcing.Gust
	sag   *metrics.Sag

	orbit  *viz.Camera
	Camera rl.Camera3D

	running   bool
	showFaces bool
	grabbing  bool
	telemetry []float64
}

func initWindow() {
	rl.InitWindow(screenWidth, screenHeight, "clothsim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(cfg *config.Config, name string) *App {
	a := &App{
		cfg:       cfg.Clone(),
		name:      name,
		running:   true,
		showFaces: true,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 0, 10),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
	}
	a.rebuild()
	return a
}

func (a *App) rebuild() {
	a.cloth = a.cfg.Build()
	a.gust = forcing.NewGust(a.cfg.WindVector(), a.cfg.WindVariation, a.cfg.Seed)
	a.sim = sim.New(a.cloth, a.gust)
	a.sag = metrics.NewSag()
	a.sim.AddMetric(a.sag)
	a.telemetry = make([]float64, 0, maxTelemetry)
	a.grabbing = false

	o := a.cloth.Grid().Origin()
	ex, ez := a.cloth.ExtentX(), a.cloth.ExtentZ()
	span := math.Max(ex, ez)
	a.orbit = viz.NewCamera(dynamo.V3(o.X+ex/2, o.Y-span/2, o.Z+ez/2), 2.2*math.Max(span, 1e-3))
	a.syncCamera()
}

// Run opens a window on the configured cloth and blocks until it closes.
func Run(cfg *config.Config, name string) {
	initWindow()
	defer rl.CloseWindow()
	NewApp(cfg, name).RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) syncCamera() {
	a.Camera.Position = toRL(a.orbit.Eye())
	a.Camera.Target = toRL(a.orbit.Target)
	a.Camera.Fovy = float32(a.orbit.FOV * 180 / math.Pi)
}

// Update handles input and advances the cloth by the frame time. It returns
// false when the user quits.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.rebuild()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		a.cloth.SetWindEnabled(!a.cloth.WindEnabled())
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.showFaces = !a.showFaces
	}

	a.handleMouse()

	if a.running {
		a.sim.Advance(float64(rl.GetFrameTime()))
		a.telemetry = append(a.telemetry, a.sag.Current())
		if len(a.telemetry) > maxTelemetry {
			a.telemetry = a.telemetry[1:]
		}
	}
	return true
}

// handleMouse: right drag orbits, the wheel zooms, shift+left drag sets the
// wind, left drag pulls the particle under the cursor.
func (a *App) handleMouse() {
	delta := rl.GetMouseDelta()

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		a.orbit.Orbit(-float64(delta.X)*orbitGain, float64(delta.Y)*orbitGain)
	}
	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		a.orbit.ZoomIn()
	} else if wheel < 0 {
		a.orbit.ZoomOut()
	}
	a.syncCamera()

	shift := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if shift && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		if delta.X != 0 || delta.Y != 0 {
			a.gust.Steer(a.cloth, float64(delta.X), float64(delta.Y), a.orbit.Yaw, windGain)
		}
		return
	}

	ray := rl.GetMouseRay(rl.GetMousePosition(), a.Camera)
	origin, dir := fromRL(ray.Position), fromRL(ray.Direction)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		if _, ok := a.cloth.HitTestRay(origin, dir); ok {
			a.grabbing = true
			a.cloth.SetPointerRay(origin, dir, true)
		}
	case a.grabbing && rl.IsMouseButtonDown(rl.MouseLeftButton):
		a.cloth.SetPointerRay(origin, dir, true)
	case a.grabbing:
		a.grabbing = false
		a.cloth.SetPointerRay(origin, dir, false)
	}
}

func toRL(v dynamo.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func fromRL(v rl.Vector3) dynamo.Vec3 {
	return dynamo.V3(float64(v.X), float64(v.Y), float64(v.Z))
}
