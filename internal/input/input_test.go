package input

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"slingshot/internal/engineconfig"
	"slingshot/internal/level"
	"slingshot/internal/logger"
	"slingshot/internal/scene"
)

func newController(t *testing.T) (*Controller, *scene.Scene, *logger.Logger) {
	t.Helper()
	log := logger.NewAt("")
	scn, err := scene.New(level.Default(), engineconfig.Default(), log)
	if err != nil {
		t.Fatalf("scene.New: %v", err)
	}
	return New(scn, log, Toggles{}), scn, log
}

func TestDragAndRelease(t *testing.T) {
	c, scn, _ := newController(t)
	start, _ := scn.Slingshot()
	pull := rl.Vector2Add(start, rl.NewVector2(-40, 0))

	// Grab on the bird, then pull.
	c.Handle(Frame{Mouse: start, LeftDown: true})
	if !c.Dragging() {
		t.Fatal("Expected the projectile to be grabbed")
	}
	c.Handle(Frame{Mouse: pull, LeftDown: true})
	b, _ := scn.Body(scn.Projectile())
	if b.Position != pull {
		t.Errorf("Expected projectile dragged to %v, got %v", pull, b.Position)
	}

	c.Handle(Frame{Mouse: pull, LeftReleased: true})
	if c.Dragging() || scn.OnSlingshot() {
		t.Error("Expected release to fire the projectile")
	}
	if b.Velocity.X <= 0 {
		t.Errorf("Expected rightward launch, got %v", b.Velocity)
	}
}

func TestPressAwayFromProjectileDoesNotGrab(t *testing.T) {
	c, scn, _ := newController(t)
	c.Handle(Frame{Mouse: rl.NewVector2(900, 100), LeftDown: true})
	if c.Dragging() {
		t.Error("Expected no grab far from the projectile")
	}
	c.Handle(Frame{Mouse: rl.NewVector2(900, 100), LeftReleased: true})
	if !scn.OnSlingshot() {
		t.Error("Expected nothing fired")
	}
}

func TestKeysAndReload(t *testing.T) {
	c, scn, _ := newController(t)
	inspector := 0
	c.toggles.Inspector = func() { inspector++ }

	c.Handle(Frame{Keys: []int32{rl.KeyTwo}})
	if scn.Projectile().Name != "square_bird" {
		t.Errorf("Expected key 2 to select the square bird, got %s", scn.Projectile().Name)
	}
	c.Handle(Frame{Keys: []int32{rl.KeyH, rl.KeyI}})
	if scn.ShowPlanes || inspector != 1 {
		t.Errorf("Expected planes hidden and inspector toggled, got %v %d", scn.ShowPlanes, inspector)
	}

	if err := scn.Launch(rl.NewVector2(-30, 0)); err != nil {
		t.Fatal(err)
	}
	c.Handle(Frame{RightPressed: true})
	if !scn.OnSlingshot() {
		t.Error("Expected right click to reload")
	}

	pig := scn.Entities()[2]
	b, _ := scn.Body(pig)
	b.Position = rl.NewVector2(0, 0)
	c.Handle(Frame{Keys: []int32{rl.KeySpace}})
	b, _ = scn.Body(pig)
	if b.Position != rl.NewVector2(580, 172) {
		t.Errorf("Expected space to reset the level, pig at %v", b.Position)
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	c, scn, _ := newController(t)
	c.Disabled = func() bool { return true }
	c.dragging = true
	c.Update()
	if c.Dragging() || !scn.OnSlingshot() {
		t.Error("Expected disabled controller to drop the drag and leave the scene alone")
	}
}
