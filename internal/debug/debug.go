package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"slingshot/internal/physics"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/force text every N frames to reduce allocations.
	updateInterval = 30
	// forceScale turns a contact force per unit mass into an arrow length in pixels.
	forceScale = 0.05
)

var (
	normalColor   = rl.NewColor(0, 121, 241, 255)
	frictionColor = rl.NewColor(230, 41, 55, 255)
)

// Debug holds runtime debugging overlays: the FPS counter and contact force arrows.
// All overlays are off by default.
type Debug struct {
	ShowFPS       bool
	ShowForces    bool
	font          rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount    uint32
	lastFpsText   string
	lastForceText string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowForces sets whether half-plane contact forces are drawn on bodies.
func (d *Debug) SetShowForces(show bool) {
	d.ShowForces = show
}

// SetFont sets the font used to draw overlay text. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// ForceArrows returns the normal and friction arrow tips for b, scaled by its mass.
// ok is false when the body has no contact this step.
func ForceArrows(b *physics.RigidBody) (normalTip, frictionTip rl.Vector2, ok bool) {
	if !b.IsColliding || b.Mass <= 0 {
		return rl.Vector2{}, rl.Vector2{}, false
	}
	k := forceScale / b.Mass
	normalTip = rl.Vector2Add(b.Position, rl.Vector2Scale(b.FNormal, k))
	frictionTip = rl.Vector2Add(b.Position, rl.Vector2Scale(b.FFriction, k))
	return normalTip, frictionTip, true
}

// ForceText summarises the contact forces of b for the overlay.
func ForceText(name string, b *physics.RigidBody) string {
	return fmt.Sprintf("%s N=%.0f F=%.0f", name, rl.Vector2Length(b.FNormal), rl.Vector2Length(b.FFriction))
}

// Draw renders any enabled overlays. Call after the scene and before the terminal in the draw loop.
// focus, if non-nil, is the body whose force magnitudes are printed under the FPS counter.
func (d *Debug) Draw(e *physics.Engine, focusName string, focus *physics.RigidBody) {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(fpsPadding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, screenW, y)
		y += fpsLineHeight
	}

	if !d.ShowForces {
		return
	}
	for _, list := range [][]physics.Handle{e.Circles(), e.Rectangles()} {
		for _, h := range list {
			b, ok := e.Body(h)
			if !ok {
				continue
			}
			if n, f, ok := ForceArrows(b); ok {
				rl.DrawLineEx(b.Position, n, 2, normalColor)
				rl.DrawLineEx(b.Position, f, 2, frictionColor)
			}
		}
	}
	if focus != nil {
		if update || d.lastForceText == "" {
			d.lastForceText = ForceText(focusName, focus)
		}
		d.drawRight(d.lastForceText, screenW, y)
	}
}

func (d *Debug) drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	if d.font.Texture.ID != 0 {
		sz := float32(fpsFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-float32(fpsPadding), float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, rl.Green)
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
}
