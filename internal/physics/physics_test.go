package physics

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const tolerance = 1e-3

func near(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func circleAt(x, y, radius, mass float32) RigidBody {
	b := DefaultBody()
	b.Position = rl.NewVector2(x, y)
	b.Radius = radius
	b.Mass = mass
	return b
}

func boxAt(x, y, halfW, halfH, mass float32) RigidBody {
	b := DefaultBody()
	b.Position = rl.NewVector2(x, y)
	b.HalfExtents = rl.NewVector2(halfW, halfH)
	b.Radius = halfH
	b.Mass = mass
	return b
}

// =============================================================================
// Registration
// =============================================================================

func TestAddRejectsInvalidBodies(t *testing.T) {
	e := NewEngine()

	zeroMass := circleAt(0, 0, 10, 0)
	if _, err := e.AddCircleObject(zeroMass); !errors.Is(err, ErrInvalidMass) {
		t.Errorf("zero mass: expected ErrInvalidMass, got %v", err)
	}
	negRadius := circleAt(0, 0, -1, 10)
	if _, err := e.AddCircleObject(negRadius); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("negative radius: expected ErrInvalidRadius, got %v", err)
	}
	flat := boxAt(0, 0, 10, 0, 10)
	flat.Radius = 5
	if _, err := e.AddRectangleObject(flat); !errors.Is(err, ErrInvalidExtents) {
		t.Errorf("flat box: expected ErrInvalidExtents, got %v", err)
	}
	if e.Len() != 0 {
		t.Errorf("Expected no registered bodies, got %d", e.Len())
	}
}

func TestRemoveSwapsAndInvalidatesHandle(t *testing.T) {
	e := NewEngine()
	var handles []Handle
	for i := 0; i < 3; i++ {
		h, err := e.AddCircleObject(circleAt(float32(i)*100, 0, 10, 10))
		if err != nil {
			t.Fatalf("AddCircleObject: %v", err)
		}
		handles = append(handles, h)
	}

	if !e.RemoveCircleObject(handles[0]) {
		t.Fatal("Expected first circle to be removed")
	}
	if e.RemoveCircleObject(handles[0]) {
		t.Error("Expected second removal of the same handle to fail")
	}
	if _, ok := e.Body(handles[0]); ok {
		t.Error("Expected stale handle lookup to fail")
	}
	if e.Len() != 2 || len(e.Circles()) != 2 {
		t.Fatalf("Expected 2 bodies left, got %d (%d circles)", e.Len(), len(e.Circles()))
	}
	for _, h := range handles[1:] {
		b, ok := e.Body(h)
		if !ok {
			t.Fatalf("Expected handle %v to survive a neighbour's removal", h)
		}
		if b.Position.X == 0 {
			t.Errorf("Handle %v resolved to the removed body", h)
		}
	}

	// The freed slot is reused with a new generation.
	h, err := e.AddCircleObject(circleAt(500, 0, 10, 10))
	if err != nil {
		t.Fatalf("AddCircleObject: %v", err)
	}
	if h == handles[0] {
		t.Error("Expected reused slot to get a fresh handle")
	}
	if _, ok := e.Body(handles[0]); ok {
		t.Error("Expected old handle to stay stale after slot reuse")
	}
}

func TestRemoveChecksShape(t *testing.T) {
	e := NewEngine()
	h, err := e.AddRectangleObject(boxAt(0, 0, 10, 10, 10))
	if err != nil {
		t.Fatalf("AddRectangleObject: %v", err)
	}
	if e.RemoveCircleObject(h) {
		t.Error("Expected RemoveCircleObject to refuse a rectangle")
	}
	if !e.RemoveRectangleObject(h) {
		t.Error("Expected RemoveRectangleObject to remove the rectangle")
	}
}

func TestRemoveDispatchesOnShape(t *testing.T) {
	e := NewEngine()
	c, _ := e.AddCircleObject(circleAt(0, 0, 10, 10))
	r, _ := e.AddRectangleObject(boxAt(50, 0, 10, 10, 10))
	if !e.IsCircle(c) || e.IsCircle(r) {
		t.Fatalf("Expected IsCircle true for the circle only, got %v %v", e.IsCircle(c), e.IsCircle(r))
	}

	for _, h := range []Handle{c, r} {
		if err := e.Remove(h); err != nil {
			t.Errorf("Expected Remove to succeed, got %v", err)
		}
	}
	if e.Len() != 0 || len(e.Circles()) != 0 || len(e.Rectangles()) != 0 {
		t.Errorf("Expected empty engine, got Len=%d circles=%d rects=%d", e.Len(), len(e.Circles()), len(e.Rectangles()))
	}

	if err := e.Remove(c); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Expected ErrStaleHandle for a removed handle, got %v", err)
	}
	if err := e.Remove(Handle{}); !errors.Is(err, ErrStaleHandle) {
		t.Errorf("Expected ErrStaleHandle for the zero handle, got %v", err)
	}
}

func TestRemoveObjectStopsIntegrationOnly(t *testing.T) {
	e := NewEngine()
	h, _ := e.AddCircleObject(circleAt(0, 0, 10, 10))
	if !e.RemoveObject(h) {
		t.Fatal("Expected RemoveObject to succeed")
	}
	if e.Len() != 0 {
		t.Errorf("Expected body out of integration, Len=%d", e.Len())
	}
	if len(e.Circles()) != 1 || !e.IsCircle(h) {
		t.Error("Expected body to keep circle membership")
	}
	e.UpdatePhysics(DefaultStepConfig())
	b, _ := e.Body(h)
	if b.Position != (rl.Vector2{}) {
		t.Errorf("Expected detached body to stay put, got %v", b.Position)
	}
}

func TestConsumeKilledClearsFlag(t *testing.T) {
	e := NewEngine()
	h, _ := e.AddCircleObject(circleAt(0, 0, 10, 10))
	b, _ := e.Body(h)
	b.WasKilled = true

	calls := 0
	e.ConsumeKilled(func(got Handle, _ *RigidBody) {
		calls++
		if got != h {
			t.Errorf("Expected handle %v, got %v", h, got)
		}
		e.RemoveCircleObject(got)
	})
	e.ConsumeKilled(func(Handle, *RigidBody) { calls++ })
	if calls != 1 {
		t.Errorf("Expected exactly one kill report, got %d", calls)
	}
}

// =============================================================================
// Integration
// =============================================================================

func TestStepConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  StepConfig
		ok   bool
	}{
		{"default", DefaultStepConfig(), true},
		{"zero delta", StepConfig{AirFriction: 1}, false},
		{"negative delta", StepConfig{AirFriction: 1, FixedDelta: -0.1}, false},
		{"zero air friction", StepConfig{FixedDelta: 0.016}, false},
		{"air friction above one", StepConfig{AirFriction: 1.1, FixedDelta: 0.016}, false},
		{"no air loss", StepConfig{AirFriction: 1, FixedDelta: 0.016}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidStep) {
				t.Errorf("Expected ErrInvalidStep, got %v", err)
			}
		})
	}
}

func TestUpdatePhysicsIntegratesGravity(t *testing.T) {
	e := NewEngine()
	h, _ := e.AddCircleObject(circleAt(0, 0, 10, 100))
	b, _ := e.Body(h)
	b.Velocity = rl.NewVector2(10, 0)

	cfg := DefaultStepConfig()
	e.UpdatePhysics(cfg)

	wantVX := float32(10 * 0.96)
	wantVY := float32(918 * 0.016)
	if !near(b.Velocity.X, wantVX, tolerance) || !near(b.Velocity.Y, wantVY, tolerance) {
		t.Errorf("Expected velocity (%g, %g), got %v", wantVX, wantVY, b.Velocity)
	}
	if !near(b.Position.Y, wantVY*0.016, tolerance) {
		t.Errorf("Expected y %g, got %g", wantVY*0.016, b.Position.Y)
	}
	if b.NetForce != (rl.Vector2{}) {
		t.Errorf("Expected force accumulator cleared, got %v", b.NetForce)
	}
}

func TestUpdatePhysicsSuspended(t *testing.T) {
	e := NewEngine()
	h, _ := e.AddCircleObject(circleAt(5, 5, 10, 100))
	b, _ := e.Body(h)
	b.Velocity = rl.NewVector2(3, 4)
	b.NetForce = rl.NewVector2(0, -1000)

	cfg := DefaultStepConfig()
	cfg.Suspended = true
	for i := 0; i < 10; i++ {
		e.UpdatePhysics(cfg)
	}
	if b.Position != rl.NewVector2(5, 5) || b.Velocity != rl.NewVector2(3, 4) {
		t.Errorf("Expected suspended body untouched, got pos %v vel %v", b.Position, b.Velocity)
	}
	if b.NetForce != (rl.Vector2{}) {
		t.Errorf("Expected queued forces dropped while suspended, got %v", b.NetForce)
	}
}

func TestUpdatePhysicsSkipsGravityDisabled(t *testing.T) {
	e := NewEngine()
	body := circleAt(0, 0, 10, 100)
	body.EnableGravity = false
	h, _ := e.AddCircleObject(body)
	e.UpdatePhysics(DefaultStepConfig())
	b, _ := e.Body(h)
	if b.Position != (rl.Vector2{}) {
		t.Errorf("Expected static body to stay, got %v", b.Position)
	}
}

func TestStepRejectsInvalidConfig(t *testing.T) {
	e := NewEngine()
	h, _ := e.AddCircleObject(circleAt(0, 0, 10, 100))
	if err := e.Step(StepConfig{}); !errors.Is(err, ErrInvalidStep) {
		t.Fatalf("Expected ErrInvalidStep, got %v", err)
	}
	b, _ := e.Body(h)
	if b.Position != (rl.Vector2{}) {
		t.Errorf("Expected no movement on rejected step, got %v", b.Position)
	}
}
