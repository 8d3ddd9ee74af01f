package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/clothsim/internal/cloth"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	rl.DrawGrid(20, float32(a.cloth.Grid().Spacing()*4))
	if a.showFaces {
		a.drawFaces()
	}
	a.drawWire()
	a.drawGrab()
	rl.EndMode3D()

	a.drawHUD()
	a.drawTelemetry()

	rl.EndDrawing()
}

func (a *App) vertex(k uint32) rl.Vector3 {
	pos := a.cloth.Positions()
	return rl.NewVector3(float32(pos[k*3]), float32(pos[k*3+1]), float32(pos[k*3+2]))
}

// drawFaces fills both sides of every triangle.
func (a *App) drawFaces() {
	tris := a.cloth.Triangles()
	for t := 0; t+2 < len(tris); t += 3 {
		v1, v2, v3 := a.vertex(tris[t]), a.vertex(tris[t+1]), a.vertex(tris[t+2])
		rl.DrawTriangle3D(v1, v2, v3, ColFace)
		rl.DrawTriangle3D(v1, v3, v2, ColFace)
	}
}

func (a *App) drawWire() {
	lines := a.cloth.Lines()
	for i := 0; i+1 < len(lines); i += 2 {
		rl.DrawLine3D(a.vertex(lines[i]), a.vertex(lines[i+1]), ColWire)
	}
}

func (a *App) drawGrab() {
	k, _ := a.cloth.Grabbed()
	if k == cloth.NoGrab {
		return
	}
	radius := float32(a.cloth.Grid().Spacing() * 0.4)
	rl.DrawSphere(a.vertex(uint32(k)), radius, ColGrab)
}

func (a *App) drawHUD() {
	rl.DrawText("clothsim", 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf(":: %s  %dx%d", a.name, a.cloth.ColumnCount(), a.cloth.RowCount()), 150, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	if !a.running {
		status, col = "PAUSED", ColTextDim
	}
	rl.DrawText(status, screenWidth-130, 30, 16, col)

	wind := a.cloth.Wind()
	windState := "OFF"
	if a.cloth.WindEnabled() {
		windState = "ON"
	}
	rl.DrawText(fmt.Sprintf("WIND %s (%.1f, %.1f, %.1f)  GUST %.2f", windState, wind.X, wind.Y, wind.Z, a.gust.Factor()), 30, 70, 14, ColText)
	rl.DrawText(fmt.Sprintf("T %.2fs  SUBSTEPS %d", a.sim.Time(), a.cloth.Substeps()), 30, 90, 14, ColText)

	rl.DrawText("[LMB] PULL  [SHIFT+LMB] WIND  [RMB] ORBIT  [W] WIND  [F] FACES  [R] RESET  [SPACE] PAUSE  [Q] QUIT", 380, screenHeight-40, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, screenHeight-40, 14, ColTextDim)
}

// drawTelemetry plots the sag history as a line strip.
func (a *App) drawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}

	x0, y0 := float32(30), float32(screenHeight-130)
	w, h := float32(400), float32(60)

	lo, hi := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, v := range a.telemetry {
		px := x0 + float32(i)/float32(len(a.telemetry))*w
		py := y0 + h - float32((v-lo)/(hi-lo))*h
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColWire)
	rl.DrawText(fmt.Sprintf("SAG %.3f", a.telemetry[len(a.telemetry)-1]), int32(x0+w+10), int32(y0+h-10), 14, ColText)
}
