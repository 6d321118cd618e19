package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// contact is the shared impulse solution for a pair: A and B are ordered so the
// normal points from A to B.
type contact struct {
	normal  rl.Vector2
	closing float32
	impulse float32
	deltaA  rl.Vector2
	deltaB  rl.Vector2
}

// solveImpulse computes the 1D restitution impulse along normal. The impulse is
// always computed; callers apply it only when closing < 0.
func solveImpulse(a, b *RigidBody, normal rl.Vector2) contact {
	closing := rl.Vector2DotProduct(rl.Vector2Subtract(b.Velocity, a.Velocity), normal)
	restitution := math32.Min(a.Restitution, b.Restitution)
	impulse := -(1 + restitution) * closing * a.Mass * b.Mass / (a.Mass + b.Mass)
	return contact{
		normal:  normal,
		closing: closing,
		impulse: impulse,
		deltaA:  rl.Vector2Scale(normal, -impulse/a.Mass),
		deltaB:  rl.Vector2Scale(normal, impulse/b.Mass),
	}
}

// approaching reports whether the pair is closing along the normal.
func (c contact) approaching() bool {
	return c.closing < 0
}

func (c contact) apply(a, b *RigidBody) {
	a.Velocity = rl.Vector2Add(a.Velocity, c.deltaA)
	b.Velocity = rl.Vector2Add(b.Velocity, c.deltaB)
}

// aRespondsMore is the separation tie-break: the side whose velocity change is
// larger on either axis is the one pushed out. It returns (moveA, moveB); both are
// false when neither side responds more.
func (c contact) aRespondsMore() (bool, bool) {
	if c.deltaA.X > c.deltaB.X || c.deltaA.Y > c.deltaB.Y {
		return true, false
	}
	if c.deltaB.X > c.deltaA.X || c.deltaB.Y > c.deltaA.Y {
		return false, true
	}
	return false, false
}

// direction returns v normalised, or fallback when v has no length.
func direction(v, fallback rl.Vector2) (rl.Vector2, float32) {
	length := rl.Vector2Length(v)
	if length == 0 {
		return fallback, 0
	}
	return rl.Vector2Scale(v, 1/length), length
}

// killIfBeyond marks a destructible body killed when |impulse| reaches threshold.
func killIfBeyond(b *RigidBody, impulse, threshold float32) {
	if b.Category.Destructible() && math32.Abs(impulse) >= threshold {
		b.WasKilled = true
	}
}

// CircleCircleCollision resolves every overlapping pair of circles. Only one body of a
// pair is displaced: the one whose velocity change is larger. Velocities change only
// for approaching pairs, and destructible circles die at or above their toughness.
func (e *Engine) CircleCircleCollision() {
	circles := e.lists[memberCircles]
	for i := 0; i < len(circles); i++ {
		for j := i + 1; j < len(circles); j++ {
			a, b := e.body(circles[i]), e.body(circles[j])
			resolveCircleCircle(a, b)
		}
	}
}

func resolveCircleCircle(a, b *RigidBody) {
	normal, distance := direction(rl.Vector2Subtract(b.Position, a.Position), rl.NewVector2(1, 0))
	overlap := distance - (a.Radius + b.Radius)
	if overlap > 0 {
		return
	}
	c := solveImpulse(a, b, normal)
	mtv := rl.Vector2Scale(normal, overlap)

	if moveA, _ := c.aRespondsMore(); moveA {
		a.Position = rl.Vector2Add(a.Position, mtv)
	} else {
		b.Position = rl.Vector2Subtract(b.Position, mtv)
	}

	if !c.approaching() {
		return
	}
	c.apply(a, b)
	killIfBeyond(a, c.impulse, a.Toughness)
	killIfBeyond(b, c.impulse, b.Toughness)
}

// MTV1D returns the signed push along one axis that separates interval A from B, or 0
// when they do not overlap. Adding the result to A (or subtracting it from B) separates them.
func MTV1D(centerA, halfA, centerB, halfB float32) float32 {
	displacement := centerB - centerA
	overlap := math32.Abs(displacement) - (halfA + halfB)
	if overlap > 0 {
		return 0
	}
	return math32.Copysign(1, displacement) * overlap
}

// AABBAABBCollision resolves every overlapping pair of rectangles. The push happens
// along the axis of least penetration while the bounce uses the centre-to-centre
// normal. Obstacles hand horizontal corrections to their counterpart; vertical
// corrections always lift the upper box.
func (e *Engine) AABBAABBCollision() {
	rects := e.lists[memberRectangles]
	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := e.body(rects[i]), e.body(rects[j])
			resolveAABBAABB(a, b)
		}
	}
}

func resolveAABBAABB(a, b *RigidBody) {
	mtvX := MTV1D(a.Position.X, a.HalfExtents.X, b.Position.X, b.HalfExtents.X)
	mtvY := MTV1D(a.Position.Y, a.HalfExtents.Y, b.Position.Y, b.HalfExtents.Y)
	if mtvX == 0 || mtvY == 0 {
		return
	}

	normal, _ := direction(rl.Vector2Subtract(b.Position, a.Position), rl.NewVector2(0, 1))
	c := solveImpulse(a, b, normal)

	if math32.Abs(mtvX) < math32.Abs(mtvY) {
		// Ties (no velocity response) default to moving B.
		moveA, _ := c.aRespondsMore()
		if (moveA && a.Category.Anchored()) || (!moveA && b.Category.Anchored()) {
			moveA = !moveA
		}
		if moveA {
			a.Position.X += mtvX
		} else {
			b.Position.X -= mtvX
		}
	} else if a.Position.Y < b.Position.Y {
		a.Position.Y += mtvY
	} else {
		b.Position.Y -= mtvY
	}

	if c.approaching() {
		c.apply(a, b)
	}
}

// CircleAABBCollision resolves every overlapping (rectangle, circle) pair using the
// closest point on the box. Movable boxes are pushed out; an obstacle is pushed only
// when it sits above the circle, otherwise the circle is pushed out of it.
// A destructible circle dies at ten times its toughness, or at its toughness when
// struck by a player box.
func (e *Engine) CircleAABBCollision() {
	for _, rh := range e.lists[memberRectangles] {
		for _, ch := range e.lists[memberCircles] {
			resolveCircleAABB(e.body(rh), e.body(ch))
		}
	}
}

func resolveCircleAABB(rect, circle *RigidBody) {
	closest := rl.NewVector2(
		rl.Clamp(circle.Position.X, rect.Position.X-rect.HalfExtents.X, rect.Position.X+rect.HalfExtents.X),
		rl.Clamp(circle.Position.Y, rect.Position.Y-rect.HalfExtents.Y, rect.Position.Y+rect.HalfExtents.Y),
	)
	toBox := rl.Vector2Subtract(rect.Position, circle.Position)
	distance := rl.Vector2Length(rl.Vector2Subtract(closest, circle.Position))
	if distance > circle.Radius {
		return
	}

	// A centre inside the box has no closest-point direction; fall back to the centres.
	centreNormal, _ := direction(toBox, rl.NewVector2(0, 1))
	penetration, _ := direction(rl.Vector2Subtract(closest, circle.Position), centreNormal)
	mtv := rl.Vector2Scale(penetration, circle.Radius-distance)

	c := solveImpulse(circle, rect, centreNormal)

	switch {
	case !rect.Category.Anchored(), rect.Position.Y < circle.Position.Y:
		rect.Position = rl.Vector2Add(rect.Position, mtv)
	default:
		circle.Position = rl.Vector2Subtract(circle.Position, mtv)
	}

	if !c.approaching() {
		return
	}
	c.apply(circle, rect)
	if circle.Category.Destructible() && math32.Abs(c.impulse) >= circle.Toughness*10 {
		circle.WasKilled = true
	} else if rect.Category.Player() {
		killIfBeyond(circle, c.impulse, circle.Toughness)
	}
}
