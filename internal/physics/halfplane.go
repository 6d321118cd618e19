package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HalfPlane is a static infinite boundary (ground or wall) through Point.
// Bodies live on the side the normal points to; the other side is solid.
type HalfPlane struct {
	Point       rl.Vector2
	orientation float32
	normal      rl.Vector2
}

// NewHalfPlane returns a half-plane through point whose normal points at angleDeg
// (degrees, counter-clockwise on screen; 90 points up).
func NewHalfPlane(point rl.Vector2, angleDeg float32) *HalfPlane {
	h := &HalfPlane{Point: point}
	h.SetOrientation(angleDeg)
	return h
}

// SetOrientation sets the orientation in degrees and recomputes the unit normal.
func (h *HalfPlane) SetOrientation(angleDeg float32) {
	h.orientation = angleDeg
	h.normal = AngleToVector(angleDeg, 1)
}

// Orientation returns the orientation angle in degrees.
func (h *HalfPlane) Orientation() float32 {
	return h.orientation
}

// Normal returns the unit normal. A zero-value HalfPlane points up.
func (h *HalfPlane) Normal() rl.Vector2 {
	if h.normal == (rl.Vector2{}) {
		return rl.NewVector2(0, -1)
	}
	return h.normal
}

// Distance returns the signed distance from p to the boundary along the normal.
func (h *HalfPlane) Distance(p rl.Vector2) float32 {
	return rl.Vector2DotProduct(rl.Vector2Subtract(p, h.Point), h.Normal())
}

// AngleToVector converts an on-screen angle in degrees to a vector of the given magnitude.
// Y is flipped so positive angles turn towards the top of the screen.
func AngleToVector(angleDeg, magnitude float32) rl.Vector2 {
	sin, cos := math32.Sincos(angleDeg * math32.Pi / 180)
	return rl.NewVector2(cos*magnitude, -sin*magnitude)
}
