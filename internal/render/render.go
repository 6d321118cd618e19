package render

import (
	_ "embed"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"slingshot/internal/physics"
	"slingshot/internal/scene"
	"slingshot/internal/ui"
)

//go:embed hud.css
var hudCSS string

const planeHalfLength = 5000

var (
	skyColor      = rl.NewColor(135, 196, 235, 255)
	planeColor    = rl.NewColor(96, 64, 40, 255)
	bandColor     = rl.NewColor(227, 166, 0, 255)
	playerColor   = rl.NewColor(214, 48, 49, 255)
	pigColor      = rl.NewColor(106, 176, 76, 255)
	obstacleColor = rl.NewColor(181, 137, 84, 255)
	outlineColor  = rl.NewColor(40, 30, 20, 255)
)

// Renderer draws the play scene: half-planes, bodies, the slingshot band and the HUD.
type Renderer struct {
	hud           *ui.Engine
	score         *ui.Node
	base          []*ui.Node
	full          []*ui.Node
	inspector     *ui.Inspector
	ShowInspector bool
	shown         bool
	lastScore     int
}

// New returns a renderer with the HUD stylesheet loaded. The inspector starts hidden.
func New() (*Renderer, error) {
	hud := ui.New()
	if err := hud.LoadCSS(hudCSS); err != nil {
		return nil, fmt.Errorf("render: hud stylesheet: %w", err)
	}
	r := &Renderer{
		hud:       hud,
		score:     ui.NewNode("label", "score", "score", "Score: 0"),
		inspector: ui.NewInspector(),
		lastScore: -1,
	}
	r.base = []*ui.Node{
		r.score,
		ui.NewNode("label", "help", "help-mouse", "Use Left-Mouse to drag the bird and release to shoot. Click Right-Mouse to reload the bird."),
		ui.NewNode("label", "help", "help-keys", "1 & 2 switch the bird. Space to reset the game. H toggles half-planes, I the inspector."),
	}
	r.full = r.inspector.AppendNodes(append([]*ui.Node(nil), r.base...), true, ui.Selection{})
	r.hud.SetNodes(r.base)
	return r, nil
}

// SetFont sets the HUD font. Zero texture ID = use raylib default.
func (r *Renderer) SetFont(font rl.Font) {
	r.hud.SetFont(font)
}

// Draw renders one frame of s. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(s *scene.Scene) {
	rl.ClearBackground(skyColor)

	if s.ShowPlanes {
		for _, p := range s.Planes() {
			drawHalfPlane(p)
		}
	}

	start, _ := s.Slingshot()
	proj := s.Projectile()
	projBody, hasProj := s.Body(proj)
	if s.OnSlingshot() && hasProj {
		rl.DrawLineEx(rl.NewVector2(start.X+10, start.Y), projBody.Position, 9, bandColor)
	}

	for _, e := range s.Entities() {
		b, ok := s.Body(e)
		if !ok {
			continue
		}
		drawBody(e, b)
	}

	// Front strand is drawn over the bodies.
	if s.OnSlingshot() && hasProj {
		rl.DrawLineEx(rl.NewVector2(start.X, start.Y+14), rl.NewVector2(projBody.Position.X-16, projBody.Position.Y+14), 9, bandColor)
	}

	r.drawHUD(s, proj, projBody, hasProj)
}

func (r *Renderer) drawHUD(s *scene.Scene, proj *scene.Entity, b *physics.RigidBody, ok bool) {
	if score := s.Score(); score != r.lastScore {
		r.score.Text = fmt.Sprintf("Score: %d", score)
		r.lastScore = score
	}
	visible := r.ShowInspector && ok
	if visible {
		// Refreshes label text in place; the node list only changes when visibility does.
		r.inspector.AppendNodes(nil, true, selectionOf(proj, b))
		if !r.shown {
			r.hud.SetNodes(r.full)
		}
	} else if r.shown {
		r.hud.SetNodes(r.base)
	}
	r.shown = visible
	r.hud.Draw()
}

func selectionOf(e *scene.Entity, b *physics.RigidBody) ui.Selection {
	return ui.Selection{
		Name:        e.Name,
		Category:    b.Category.String(),
		Position:    [2]float32{b.Position.X, b.Position.Y},
		Velocity:    [2]float32{b.Velocity.X, b.Velocity.Y},
		Mass:        b.Mass,
		Restitution: b.Restitution,
		Colliding:   b.IsColliding,
	}
}

func bodyColor(c physics.Category) rl.Color {
	switch {
	case c.Player():
		return playerColor
	case c.Destructible():
		return pigColor
	default:
		return obstacleColor
	}
}

func drawBody(e *scene.Entity, b *physics.RigidBody) {
	c := bodyColor(b.Category)
	if e.Circle() {
		rl.DrawCircleV(b.Position, b.Radius, c)
		rl.DrawCircleLinesV(b.Position, b.Radius, outlineColor)
		return
	}
	rect := rl.NewRectangle(b.Position.X-b.HalfExtents.X, b.Position.Y-b.HalfExtents.Y, 2*b.HalfExtents.X, 2*b.HalfExtents.Y)
	rl.DrawRectangleRec(rect, c)
	rl.DrawRectangleLinesEx(rect, 2, outlineColor)
}

// drawHalfPlane draws the boundary line through the plane's point and a short normal marker.
func drawHalfPlane(p *physics.HalfPlane) {
	n := p.Normal()
	along := rl.NewVector2(-n.Y, n.X)
	from := rl.Vector2Add(p.Point, rl.Vector2Scale(along, -planeHalfLength))
	to := rl.Vector2Add(p.Point, rl.Vector2Scale(along, planeHalfLength))
	rl.DrawLineEx(from, to, 3, planeColor)
	rl.DrawLineEx(p.Point, rl.Vector2Add(p.Point, rl.Vector2Scale(n, 30)), 2, planeColor)
}
