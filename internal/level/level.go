package level

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"slingshot/internal/physics"
)

// Shape names accepted in level files.
const (
	ShapeCircle    = "circle"
	ShapeRectangle = "rectangle"
)

//go:embed default.yaml
var defaultLevel []byte

// Vec is a 2D point in level files, written as [x, y].
type Vec [2]float32

// Vector2 converts v to a raylib vector.
func (v Vec) Vector2() rl.Vector2 {
	return rl.NewVector2(v[0], v[1])
}

// Descriptor is the data-driven definition of one kind of entity (bird, pig, block...).
// Zero Radius and Mass fall back to the physics defaults, as do absent Restitution, Friction
// and Toughness; an explicit 0 for those three is kept. Radius falls back to half the width for
// circles and half the height for rectangles.
type Descriptor struct {
	Shape       string   `yaml:"shape"`
	Texture     string   `yaml:"texture,omitempty"`
	Category    string   `yaml:"category,omitempty"`
	Points      int      `yaml:"points,omitempty"`
	Size        Vec      `yaml:"size"`
	Radius      float32  `yaml:"radius,omitempty"`
	Mass        float32  `yaml:"mass,omitempty"`
	Restitution *float32 `yaml:"restitution,omitempty"`
	Friction    *float32 `yaml:"friction,omitempty"`
	Toughness   *float32 `yaml:"toughness,omitempty"`
	Gravity     *bool    `yaml:"gravity,omitempty"`
}

// Circle reports whether the descriptor registers as a circle.
func (d Descriptor) Circle() bool {
	return d.Shape == ShapeCircle
}

// Body builds the rigid body for an instance of d at pos. The body is validated.
func (d Descriptor) Body(pos rl.Vector2) (physics.RigidBody, error) {
	b := physics.DefaultBody()
	b.Position = pos

	cat, err := physics.ParseCategory(d.Category)
	if err != nil {
		return b, err
	}
	b.Category = cat

	switch d.Shape {
	case ShapeCircle:
		b.Radius = d.Size[0] / 2
	case ShapeRectangle:
		b.HalfExtents = rl.NewVector2(d.Size[0]/2, d.Size[1]/2)
		b.Radius = d.Size[1] / 2
	default:
		return b, fmt.Errorf("level: unknown shape %q", d.Shape)
	}
	if d.Radius != 0 {
		b.Radius = d.Radius
	}
	if d.Mass != 0 {
		b.Mass = d.Mass
	}
	if d.Restitution != nil {
		b.Restitution = *d.Restitution
	}
	if d.Friction != nil {
		b.Friction = *d.Friction
	}
	if d.Toughness != nil {
		b.Toughness = *d.Toughness
	}
	if b.Restitution < 0 || b.Friction < 0 || b.Toughness < 0 {
		return b, fmt.Errorf("level: negative restitution, friction or toughness")
	}
	if d.Gravity != nil {
		b.EnableGravity = *d.Gravity
	}
	if err := b.Validate(); err != nil {
		return b, err
	}
	if d.Shape == ShapeRectangle && (b.HalfExtents.X <= 0 || b.HalfExtents.Y <= 0) {
		return b, fmt.Errorf("level: %w", physics.ErrInvalidExtents)
	}
	return b, nil
}

// Placement puts one instance of a catalog entry into the level.
type Placement struct {
	Entity   string   `yaml:"entity"`
	Position Vec      `yaml:"position"`
	Friction *float32 `yaml:"friction,omitempty"`
}

// PlaneDef is a static half-plane boundary; Angle is the normal in degrees (90 = up).
type PlaneDef struct {
	Name  string  `yaml:"name,omitempty"`
	Point Vec     `yaml:"point"`
	Angle float32 `yaml:"angle"`
}

// Slingshot holds the launch point and where the inactive bird waits.
type Slingshot struct {
	Start Vec `yaml:"start"`
	Idle  Vec `yaml:"idle"`
}

// Level is a complete scene description loaded from YAML.
type Level struct {
	Slingshot Slingshot             `yaml:"slingshot"`
	Planes    []PlaneDef            `yaml:"planes,omitempty"`
	Catalog   map[string]Descriptor `yaml:"catalog"`
	Entities  []Placement           `yaml:"entities"`
}

// Default returns the built-in play scene.
func Default() *Level {
	lvl, err := Parse(defaultLevel)
	if err != nil {
		panic(fmt.Sprintf("level: embedded default is invalid: %v", err))
	}
	return lvl
}

// Load reads and parses a level file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	return Parse(data)
}

// Parse decodes a level and validates it. Unknown keys are rejected.
func Parse(data []byte) (*Level, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var lvl Level
	if err := dec.Decode(&lvl); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("level: empty document")
		}
		return nil, fmt.Errorf("level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks that every placement names a catalog entry that builds a valid body.
func (l *Level) Validate() error {
	if len(l.Entities) == 0 {
		return fmt.Errorf("level: no entities")
	}
	for name, d := range l.Catalog {
		if _, err := d.Body(rl.Vector2{}); err != nil {
			return fmt.Errorf("level: catalog %q: %w", name, err)
		}
	}
	players := 0
	for i, p := range l.Entities {
		d, ok := l.Catalog[p.Entity]
		if !ok {
			return fmt.Errorf("level: entity %d: unknown catalog entry %q", i, p.Entity)
		}
		if d.Category == "player" {
			players++
		}
	}
	if players == 0 {
		return fmt.Errorf("level: no player entity")
	}
	return nil
}
