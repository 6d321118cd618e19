package scene

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"slingshot/internal/engineconfig"
	"slingshot/internal/level"
	"slingshot/internal/logger"
	"slingshot/internal/physics"
)

var (
	// ErrNotLoaded is returned when a launch is attempted while no projectile sits on the slingshot.
	ErrNotLoaded = errors.New("scene: projectile is not on the slingshot")
	// ErrOutOfReach is returned when a drag target lies beyond the launch radius.
	ErrOutOfReach = errors.New("scene: drag target outside launch radius")
)

// Entity is one spawned level placement. Its body lives in the physics engine and is reached
// through Handle; the handle changes when a destroyed entity is re-registered on reset.
type Entity struct {
	ID         uuid.UUID
	Name       string
	Descriptor level.Descriptor
	Handle     physics.Handle
	Enabled    bool
	spawn      physics.RigidBody
}

// Circle reports whether the entity was registered as a circle.
func (e *Entity) Circle() bool {
	return e.Descriptor.Circle()
}

// Points is the score awarded when the entity is destroyed.
func (e *Entity) Points() int {
	return e.Descriptor.Points
}

// ShortID is the first block of the entity's UUID, used in log lines.
func (e *Entity) ShortID() string {
	return e.ID.String()[:8]
}

// Scene owns the physics engine and the game state around it: the slingshot, the active
// projectile, the score and the level's entities. It is driven one fixed tick at a time by Update.
type Scene struct {
	lvl    *level.Level
	prefs  engineconfig.Prefs
	log    *logger.Logger
	engine *physics.Engine
	planes []*physics.HalfPlane

	entities []*Entity
	byHandle map[physics.Handle]*Entity
	players  []*Entity
	active   int

	start      rl.Vector2
	idle       rl.Vector2
	onSling    bool
	score      int
	ShowPlanes bool
}

// New spawns every placement of lvl into a fresh physics engine. The first player entity is put
// on the slingshot and the rest wait at the idle point; the world stays paused until the first launch.
func New(lvl *level.Level, prefs engineconfig.Prefs, log *logger.Logger) (*Scene, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewAt("")
	}
	s := &Scene{
		lvl:        lvl,
		prefs:      prefs,
		log:        log,
		engine:     physics.NewEngine(),
		byHandle:   make(map[physics.Handle]*Entity),
		start:      lvl.Slingshot.Start.Vector2(),
		idle:       lvl.Slingshot.Idle.Vector2(),
		onSling:    true,
		ShowPlanes: true,
	}
	for _, p := range lvl.Planes {
		s.planes = append(s.planes, physics.NewHalfPlane(p.Point.Vector2(), p.Angle))
	}
	for i, p := range lvl.Entities {
		if err := s.spawn(p); err != nil {
			return nil, fmt.Errorf("scene: entity %d (%s): %w", i, p.Entity, err)
		}
	}
	if len(s.players) == 0 {
		return nil, fmt.Errorf("scene: level has no player entity")
	}
	s.park()
	s.log.Logf("scene ready: %d entities, %d planes", len(s.entities), len(s.planes))
	return s, nil
}

func (s *Scene) spawn(p level.Placement) error {
	desc := s.lvl.Catalog[p.Entity]
	body, err := desc.Body(p.Position.Vector2())
	if err != nil {
		return err
	}
	if p.Friction != nil {
		body.Friction = *p.Friction
	}
	ent := &Entity{
		ID:         uuid.New(),
		Name:       p.Entity,
		Descriptor: desc,
		Enabled:    true,
		spawn:      body,
	}
	if err := s.register(ent, body); err != nil {
		return err
	}
	s.entities = append(s.entities, ent)
	if body.Category.Player() {
		s.players = append(s.players, ent)
	}
	return nil
}

func (s *Scene) register(ent *Entity, body physics.RigidBody) error {
	var h physics.Handle
	var err error
	if ent.Circle() {
		h, err = s.engine.AddCircleObject(body)
	} else {
		h, err = s.engine.AddRectangleObject(body)
	}
	if err != nil {
		return err
	}
	ent.Handle = h
	s.byHandle[h] = ent
	return nil
}

// park puts the active player on the slingshot, the others at the idle point, and pauses the world.
func (s *Scene) park() {
	for i, p := range s.players {
		b, ok := s.engine.Body(p.Handle)
		if !ok {
			continue
		}
		b.Velocity = rl.Vector2{}
		b.IsColliding = false
		b.IsActive = i == s.active
		if b.IsActive {
			b.Position = s.start
		} else {
			b.Position = s.idle
		}
	}
	s.onSling = true
}

// Update runs one fixed tick: the physics step (paused while the projectile is on the slingshot),
// then scoring and removal of destroyed entities.
func (s *Scene) Update() error {
	if err := s.engine.Step(s.prefs.StepConfig(s.onSling), s.planes...); err != nil {
		return err
	}
	var errs []error
	s.engine.ConsumeKilled(func(h physics.Handle, b *physics.RigidBody) {
		ent, ok := s.byHandle[h]
		if !ok {
			return
		}
		if err := s.engine.Remove(h); err != nil {
			errs = append(errs, fmt.Errorf("scene: destroy %s: %w", ent.Name, err))
			return
		}
		s.score += ent.Points()
		delete(s.byHandle, h)
		ent.Enabled = false
		s.log.Logf("destroyed %s %s (+%d, score %d)", ent.Name, ent.ShortID(), ent.Points(), s.score)
	})
	return errors.Join(errs...)
}

// Drag moves the loaded projectile to p. A target farther than the launch radius from the
// slingshot leaves the projectile where it was and returns false.
func (s *Scene) Drag(p rl.Vector2) bool {
	if !s.onSling {
		return false
	}
	b, ok := s.projectileBody()
	if !ok {
		return false
	}
	if rl.Vector2Distance(p, s.start) > s.prefs.LaunchRadius {
		return false
	}
	b.Position = p
	return true
}

// Release fires the loaded projectile: the world resumes and the projectile gains velocity
// opposite to its pull from the slingshot, scaled by power over mass.
func (s *Scene) Release() error {
	if !s.onSling {
		return ErrNotLoaded
	}
	b, ok := s.projectileBody()
	if !ok {
		return ErrNotLoaded
	}
	pull := rl.Vector2Subtract(b.Position, s.start)
	impulse := rl.Vector2Scale(rl.Vector2Negate(pull), s.prefs.SlingshotPower/b.Mass)
	b.Velocity = rl.Vector2Add(b.Velocity, impulse)
	s.onSling = false
	s.log.Logf("launched %s %s with velocity (%.1f, %.1f)", s.Projectile().Name, s.Projectile().ShortID(), b.Velocity.X, b.Velocity.Y)
	return nil
}

// Launch drags the projectile to the slingshot start plus offset, then releases it.
func (s *Scene) Launch(offset rl.Vector2) error {
	if !s.onSling {
		return ErrNotLoaded
	}
	if !s.Drag(rl.Vector2Add(s.start, offset)) {
		return ErrOutOfReach
	}
	return s.Release()
}

// Reload puts the projectile back on the slingshot at rest and pauses the world.
func (s *Scene) Reload() {
	b, ok := s.projectileBody()
	if !ok {
		return
	}
	b.Position = s.start
	b.Velocity = rl.Vector2{}
	b.IsColliding = false
	s.onSling = true
}

// SelectProjectile makes player i (0-based, level order) the projectile, loading it onto the
// slingshot and sending the others to the idle point. Selecting the active player does nothing.
func (s *Scene) SelectProjectile(i int) error {
	if i < 0 || i >= len(s.players) {
		return fmt.Errorf("scene: projectile %d out of range [0, %d)", i, len(s.players))
	}
	if i == s.active {
		return nil
	}
	s.active = i
	s.park()
	s.log.Logf("selected %s %s", s.players[i].Name, s.players[i].ShortID())
	return nil
}

// Reset restores the level: score zero, destroyed entities re-registered and every body put
// back to its spawn state. The active projectile goes back on the slingshot.
func (s *Scene) Reset() error {
	s.score = 0
	for _, ent := range s.entities {
		if !ent.Enabled {
			if err := s.register(ent, ent.spawn); err != nil {
				return fmt.Errorf("scene: reset %s: %w", ent.Name, err)
			}
			ent.Enabled = true
			continue
		}
		b, ok := s.engine.Body(ent.Handle)
		if !ok {
			continue
		}
		if err := copier.Copy(b, &ent.spawn); err != nil {
			return fmt.Errorf("scene: reset %s: %w", ent.Name, err)
		}
	}
	s.park()
	s.log.Log("level reset")
	return nil
}

// SetGravity changes the gravity constant used from the next tick.
func (s *Scene) SetGravity(g float32) {
	s.prefs.Gravity = g
}

// SetAirFriction changes the per-tick velocity retention factor; it must lie in (0, 1].
func (s *Scene) SetAirFriction(f float32) error {
	next := s.prefs
	next.AirFriction = f
	if err := next.Validate(); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

func (s *Scene) projectileBody() (*physics.RigidBody, bool) {
	return s.engine.Body(s.Projectile().Handle)
}

// Body returns the live body of ent, or false once it has been destroyed.
func (s *Scene) Body(ent *Entity) (*physics.RigidBody, bool) {
	if !ent.Enabled {
		return nil, false
	}
	return s.engine.Body(ent.Handle)
}

// Find looks an entity up by ID.
func (s *Scene) Find(id uuid.UUID) (*Entity, bool) {
	for _, e := range s.entities {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Score returns the points collected since the last reset.
func (s *Scene) Score() int { return s.score }

// OnSlingshot reports whether the projectile is loaded and the world paused.
func (s *Scene) OnSlingshot() bool { return s.onSling }

// Entities returns all spawned entities in level order, destroyed ones included.
func (s *Scene) Entities() []*Entity { return s.entities }

// Projectile returns the active player entity.
func (s *Scene) Projectile() *Entity { return s.players[s.active] }

// Players returns the player entities in level order.
func (s *Scene) Players() []*Entity { return s.players }

// Planes returns the static half-planes.
func (s *Scene) Planes() []*physics.HalfPlane { return s.planes }

// Engine exposes the underlying physics engine.
func (s *Scene) Engine() *physics.Engine { return s.engine }

// Slingshot returns the launch point and the idle point.
func (s *Scene) Slingshot() (start, idle rl.Vector2) { return s.start, s.idle }

// Prefs returns the tunables currently in effect.
func (s *Scene) Prefs() engineconfig.Prefs { return s.prefs }

// SetHalfPlanesVisible sets whether the half-plane boundaries are drawn.
func (s *Scene) SetHalfPlanesVisible(visible bool) {
	s.ShowPlanes = visible
}
