package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultFixedDelta is the fixed simulation step in seconds.
const DefaultFixedDelta = 0.016

// StepConfig carries the tunables for one fixed step.
// Gravity is a signed constant multiplied by each body's GravityScale; with the
// default scale (0,-1) a negative value pulls towards the bottom of the screen.
// Suspended pauses integration for every body (projectile held on the slingshot).
type StepConfig struct {
	Gravity     float32
	AirFriction float32
	FixedDelta  float32
	Suspended   bool
}

// DefaultStepConfig returns the tunables of the shipped level: gravity -918,
// air friction 0.96 and a 16ms step.
func DefaultStepConfig() StepConfig {
	return StepConfig{
		Gravity:     -918,
		AirFriction: 0.96,
		FixedDelta:  DefaultFixedDelta,
	}
}

// Validate rejects a non-positive step and air friction outside (0, 1].
func (c StepConfig) Validate() error {
	if !(c.FixedDelta > 0) {
		return fmt.Errorf("physics: %w: fixed delta %g", ErrInvalidStep, c.FixedDelta)
	}
	if !(c.AirFriction > 0) || c.AirFriction > 1 {
		return fmt.Errorf("physics: %w: air friction %g", ErrInvalidStep, c.AirFriction)
	}
	return nil
}

func (c StepConfig) gravityForce(b *RigidBody) rl.Vector2 {
	return rl.Vector2Scale(b.GravityScale, c.Gravity*b.Mass)
}

// Step runs one fixed tick in the required order: integration, half-plane contacts,
// circle-circle, AABB-AABB, then circle-AABB. Contact forces gathered from the planes
// are only realised by the next tick's integration.
func (e *Engine) Step(cfg StepConfig, planes ...*HalfPlane) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.UpdatePhysics(cfg)
	if len(planes) > 0 {
		for _, h := range e.lists[memberAll] {
			b := e.body(h)
			b.IsColliding = false
			b.clearContact()
		}
		for _, p := range planes {
			e.halfPlaneContacts(cfg, p, false)
		}
	}
	e.CircleCircleCollision()
	e.AABBAABBCollision()
	e.CircleAABBCollision()
	return nil
}

// UpdatePhysics integrates forces for every registered body with gravity enabled:
// air resistance, gravity plus accumulated forces, semi-implicit Euler, then the
// force accumulator is cleared. Nothing moves while cfg.Suspended is set, but
// accumulators are still cleared so queued contact forces do not pile up while paused.
func (e *Engine) UpdatePhysics(cfg StepConfig) {
	dt := cfg.FixedDelta
	for _, h := range e.lists[memberAll] {
		b := e.body(h)
		if cfg.Suspended || !b.EnableGravity {
			b.NetForce = rl.Vector2{}
			continue
		}
		b.Velocity = rl.Vector2Scale(b.Velocity, cfg.AirFriction)
		b.NetForce = rl.Vector2Add(b.NetForce, cfg.gravityForce(b))
		b.Acceleration = rl.Vector2Scale(b.NetForce, 1/b.Mass)
		b.Velocity = rl.Vector2Add(b.Velocity, rl.Vector2Scale(b.Acceleration, dt))
		b.Position = rl.Vector2Add(b.Position, rl.Vector2Scale(b.Velocity, dt))
		b.NetForce = rl.Vector2{}
	}
}

// ObjectHalfPlaneCollision pushes every registered body out of plane and queues the
// support and friction forces for the next integration. Bodies clear of the plane get
// IsColliding reset and their force decomposition zeroed.
func (e *Engine) ObjectHalfPlaneCollision(cfg StepConfig, plane *HalfPlane) {
	e.halfPlaneContacts(cfg, plane, true)
}

func (e *Engine) halfPlaneContacts(cfg StepConfig, plane *HalfPlane, reset bool) {
	n := plane.Normal()
	for _, h := range e.lists[memberAll] {
		b := e.body(h)
		d := plane.Distance(b.Position)
		if d >= b.Radius {
			if reset {
				b.IsColliding = false
				b.clearContact()
			}
			continue
		}
		b.Position = rl.Vector2Subtract(b.Position, rl.Vector2Scale(n, d-b.Radius))

		fGravity := cfg.gravityForce(b)
		gDotN := rl.Vector2DotProduct(fGravity, n)
		perpendicular := rl.Vector2Scale(n, gDotN)
		parallel := rl.Vector2Subtract(fGravity, perpendicular)

		b.FParallelGravity = parallel
		b.FPerpendicularGravity = perpendicular
		b.FNormal = rl.Vector2Negate(perpendicular)

		// Friction opposes the sliding component and never exceeds it.
		magnitude := math32.Min(b.Friction*math32.Abs(gDotN), rl.Vector2Length(parallel))
		b.FFriction = rl.Vector2Scale(rl.Vector2Negate(rl.Vector2Normalize(parallel)), magnitude)

		b.NetForce = rl.Vector2Add(b.NetForce, b.FFriction)
		b.NetForce = rl.Vector2Add(b.NetForce, b.FNormal)
		b.IsColliding = true
	}
}
