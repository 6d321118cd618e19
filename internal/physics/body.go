package physics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Validation errors returned when a body or step config cannot be simulated.
var (
	ErrInvalidMass    = errors.New("mass must be positive")
	ErrInvalidRadius  = errors.New("radius must be positive")
	ErrInvalidExtents = errors.New("half extents must be positive")
	ErrInvalidStep    = errors.New("invalid step config")
	ErrStaleHandle    = errors.New("stale body handle")
)

// Category tags a body with the capabilities the collision passes dispatch on.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryPlayer
	CategoryPig
	CategoryObstacle
)

// String returns the lower-case name used in level files and logs.
func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryPig:
		return "pig"
	case CategoryObstacle:
		return "obstacle"
	default:
		return "none"
	}
}

// ParseCategory maps a level-file name to a Category. The empty string is CategoryNone.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "", "none":
		return CategoryNone, nil
	case "player":
		return CategoryPlayer, nil
	case "pig":
		return CategoryPig, nil
	case "obstacle":
		return CategoryObstacle, nil
	}
	return CategoryNone, fmt.Errorf("physics: unknown category %q", s)
}

// Destructible reports whether a large enough impulse kills the body.
func (c Category) Destructible() bool { return c == CategoryPig }

// Anchored reports whether the body prefers to hand positional corrections to its counterpart.
func (c Category) Anchored() bool { return c == CategoryObstacle }

// Player reports whether the body is the player-controlled projectile.
func (c Category) Player() bool { return c == CategoryPlayer }

// RigidBody is the per-object physical state of a 2D body in Y-down screen space.
// Circles use Radius; rectangles use HalfExtents for box tests and Radius as their
// contact extent against half-planes.
type RigidBody struct {
	Position     rl.Vector2
	Velocity     rl.Vector2
	Acceleration rl.Vector2
	NetForce     rl.Vector2

	Mass        float32
	Radius      float32
	HalfExtents rl.Vector2

	Friction    float32
	Restitution float32
	Toughness   float32

	GravityScale  rl.Vector2
	EnableGravity bool

	IsColliding bool
	IsActive    bool
	WasKilled   bool

	// Contact force decomposition from the last half-plane pass.
	FFriction             rl.Vector2
	FNormal               rl.Vector2
	FParallelGravity      rl.Vector2
	FPerpendicularGravity rl.Vector2

	Category Category
}

// DefaultBody returns a body with the engine's default material: mass 100, radius 15,
// gravity pulling along +Y (scale (0,-1) against a negative gravity constant),
// friction 0.1, restitution 0.9 and toughness 20000.
func DefaultBody() RigidBody {
	return RigidBody{
		Mass:          100,
		Radius:        15,
		GravityScale:  rl.NewVector2(0, -1),
		EnableGravity: true,
		Friction:      0.1,
		Restitution:   0.9,
		Toughness:     20000,
	}
}

// Validate checks the invariants the passes divide by.
func (b *RigidBody) Validate() error {
	if !(b.Mass > 0) {
		return fmt.Errorf("physics: %w (got %g)", ErrInvalidMass, b.Mass)
	}
	if !(b.Radius > 0) {
		return fmt.Errorf("physics: %w (got %g)", ErrInvalidRadius, b.Radius)
	}
	return nil
}

func (b *RigidBody) validateBox() error {
	if err := b.Validate(); err != nil {
		return err
	}
	if !(b.HalfExtents.X > 0) || !(b.HalfExtents.Y > 0) {
		return fmt.Errorf("physics: %w (got %gx%g)", ErrInvalidExtents, b.HalfExtents.X, b.HalfExtents.Y)
	}
	return nil
}

// clearContact zeroes the half-plane force decomposition.
func (b *RigidBody) clearContact() {
	b.FFriction = rl.Vector2{}
	b.FNormal = rl.Vector2{}
	b.FParallelGravity = rl.Vector2{}
	b.FPerpendicularGravity = rl.Vector2{}
}
