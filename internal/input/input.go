package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"slingshot/internal/logger"
	"slingshot/internal/scene"
)

// Frame is the input sampled for one frame.
type Frame struct {
	Mouse        rl.Vector2
	LeftDown     bool
	LeftReleased bool
	RightPressed bool
	Keys         []int32 // keys pressed this frame
}

// Toggles receives the overlay switches bound to keys; nil fields are ignored.
type Toggles struct {
	Inspector func()
	Forces    func()
	FPS       func()
}

// Controller maps mouse and keyboard onto the scene: left-drag pulls the projectile, release
// fires it, right click reloads, 1/2 select the projectile, space resets and H toggles half-planes.
type Controller struct {
	scn      *scene.Scene
	log      *logger.Logger
	toggles  Toggles
	dragging bool
	// Disabled, if set, suppresses game input (e.g. while the terminal is open).
	Disabled func() bool
}

// New returns a controller driving scn. Errors from scene calls are written to log.
func New(scn *scene.Scene, log *logger.Logger, toggles Toggles) *Controller {
	return &Controller{scn: scn, log: log, toggles: toggles}
}

var polledKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeySpace, rl.KeyH, rl.KeyI, rl.KeyF, rl.KeyF3}

// Update samples raylib input and handles it. Call once per frame.
func (c *Controller) Update() {
	if c.Disabled != nil && c.Disabled() {
		c.dragging = false
		return
	}
	f := Frame{
		Mouse:        rl.GetMousePosition(),
		LeftDown:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
		LeftReleased: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		RightPressed: rl.IsMouseButtonPressed(rl.MouseButtonRight),
	}
	for _, k := range polledKeys {
		if rl.IsKeyPressed(k) {
			f.Keys = append(f.Keys, k)
		}
	}
	c.Handle(f)
}

// Dragging reports whether the projectile is currently held by the mouse.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Handle applies one frame of input to the scene.
func (c *Controller) Handle(f Frame) {
	switch {
	case f.LeftDown:
		if !c.dragging && c.grabbable(f.Mouse) {
			c.dragging = true
		}
		if c.dragging {
			c.scn.Drag(f.Mouse)
		}
	case f.LeftReleased && c.dragging:
		c.dragging = false
		if err := c.scn.Release(); err != nil {
			c.log.Log(err.Error())
		}
	default:
		c.dragging = false
	}

	if f.RightPressed {
		c.scn.Reload()
	}

	for _, k := range f.Keys {
		c.key(k)
	}
}

// grabbable reports whether p is within the projectile's width of its centre while it is loaded.
func (c *Controller) grabbable(p rl.Vector2) bool {
	if !c.scn.OnSlingshot() {
		return false
	}
	proj := c.scn.Projectile()
	b, ok := c.scn.Body(proj)
	if !ok {
		return false
	}
	return rl.Vector2Distance(p, b.Position) < proj.Descriptor.Size[0]
}

func (c *Controller) key(k int32) {
	var err error
	switch k {
	case rl.KeyOne:
		err = c.scn.SelectProjectile(0)
	case rl.KeyTwo:
		err = c.scn.SelectProjectile(1)
	case rl.KeySpace:
		err = c.scn.Reset()
	case rl.KeyH:
		c.scn.SetHalfPlanesVisible(!c.scn.ShowPlanes)
	case rl.KeyI:
		call(c.toggles.Inspector)
	case rl.KeyF:
		call(c.toggles.Forces)
	case rl.KeyF3:
		call(c.toggles.FPS)
	}
	if err != nil {
		c.log.Log(err.Error())
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
