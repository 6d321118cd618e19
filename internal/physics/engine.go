package physics

import "fmt"

// Handle identifies a body registered in an Engine. The zero Handle is never valid.
// A handle goes stale when its body is removed; a later registration reusing the
// slot gets a new generation, so stale handles never alias new bodies.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

type membership uint8

const (
	memberAll membership = iota
	memberCircles
	memberRectangles
	memberCount
)

type slot struct {
	body  RigidBody
	gen   uint32
	live  bool
	shape membership
	// pos is the index of the slot in each membership list, -1 when absent.
	pos [memberCount]int
}

// Engine owns an arena of rigid bodies and the membership lists the passes iterate:
// every registered body (integration and half-plane contacts), circles and rectangles.
// An Engine is not safe for concurrent use.
type Engine struct {
	slots []*slot
	free  []uint32
	lists [memberCount][]Handle
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// AddCircleObject registers body as a circle. The body is copied into the arena;
// use Body to read or mutate it afterwards.
func (e *Engine) AddCircleObject(body RigidBody) (Handle, error) {
	if err := body.Validate(); err != nil {
		return Handle{}, err
	}
	return e.add(body, memberCircles), nil
}

// AddRectangleObject registers body as an axis-aligned box.
func (e *Engine) AddRectangleObject(body RigidBody) (Handle, error) {
	if err := body.validateBox(); err != nil {
		return Handle{}, err
	}
	return e.add(body, memberRectangles), nil
}

func (e *Engine) add(body RigidBody, shape membership) Handle {
	var s *slot
	var idx uint32
	if n := len(e.free); n > 0 {
		idx = e.free[n-1]
		e.free = e.free[:n-1]
		s = e.slots[idx]
	} else {
		idx = uint32(len(e.slots))
		s = &slot{}
		e.slots = append(e.slots, s)
	}
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.body = body
	s.live = true
	s.shape = shape
	for i := range s.pos {
		s.pos[i] = -1
	}
	h := Handle{index: idx, gen: s.gen}
	e.link(s, h, memberAll)
	e.link(s, h, shape)
	return h
}

// RemoveCircleObject unregisters a circle from every list and frees its slot.
// It returns false when h is stale or does not name a circle.
func (e *Engine) RemoveCircleObject(h Handle) bool {
	return e.remove(h, memberCircles)
}

// RemoveRectangleObject unregisters a rectangle from every list and frees its slot.
func (e *Engine) RemoveRectangleObject(h Handle) bool {
	return e.remove(h, memberRectangles)
}

// Remove unregisters the body h names from whichever shape list holds it.
func (e *Engine) Remove(h Handle) error {
	var ok bool
	if e.IsCircle(h) {
		ok = e.RemoveCircleObject(h)
	} else {
		ok = e.RemoveRectangleObject(h)
	}
	if !ok {
		return fmt.Errorf("physics: remove: %w", ErrStaleHandle)
	}
	return nil
}

// RemoveObject takes the body out of integration and half-plane contacts only.
// It keeps its circle or rectangle membership and still collides with other bodies.
func (e *Engine) RemoveObject(h Handle) bool {
	s, ok := e.lookup(h)
	if !ok || s.pos[memberAll] < 0 {
		return false
	}
	e.unlink(s, memberAll)
	return true
}

func (e *Engine) remove(h Handle, shape membership) bool {
	s, ok := e.lookup(h)
	if !ok || s.shape != shape {
		return false
	}
	e.unlink(s, memberAll)
	e.unlink(s, shape)
	s.live = false
	s.body = RigidBody{}
	e.free = append(e.free, h.index)
	return true
}

// Body returns the registered body for h. The pointer stays valid until the body is removed.
func (e *Engine) Body(h Handle) (*RigidBody, bool) {
	s, ok := e.lookup(h)
	if !ok {
		return nil, false
	}
	return &s.body, true
}

// IsCircle reports whether h names a live circle.
func (e *Engine) IsCircle(h Handle) bool {
	s, ok := e.lookup(h)
	return ok && s.shape == memberCircles
}

// Len returns the number of bodies taking part in integration.
func (e *Engine) Len() int {
	return len(e.lists[memberAll])
}

// Circles returns a snapshot of the circle list in pass order.
func (e *Engine) Circles() []Handle {
	return append([]Handle(nil), e.lists[memberCircles]...)
}

// Rectangles returns a snapshot of the rectangle list in pass order.
func (e *Engine) Rectangles() []Handle {
	return append([]Handle(nil), e.lists[memberRectangles]...)
}

// ConsumeKilled calls fn for every live body flagged WasKilled and clears the flag,
// so a kill is reported exactly once. fn may remove the body it is given.
func (e *Engine) ConsumeKilled(fn func(Handle, *RigidBody)) {
	var killed []Handle
	for i, s := range e.slots {
		if s.live && s.body.WasKilled {
			s.body.WasKilled = false
			killed = append(killed, Handle{index: uint32(i), gen: s.gen})
		}
	}
	for _, h := range killed {
		s := e.slots[h.index]
		fn(h, &s.body)
	}
}

func (e *Engine) lookup(h Handle) (*slot, bool) {
	if h.gen == 0 || int(h.index) >= len(e.slots) {
		return nil, false
	}
	s := e.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return s, true
}

func (e *Engine) link(s *slot, h Handle, m membership) {
	s.pos[m] = len(e.lists[m])
	e.lists[m] = append(e.lists[m], h)
}

// unlink removes s from list m by swapping the last entry into its place.
func (e *Engine) unlink(s *slot, m membership) {
	i := s.pos[m]
	if i < 0 {
		return
	}
	items := e.lists[m]
	last := len(items) - 1
	moved := items[last]
	items[i] = moved
	e.slots[moved.index].pos[m] = i
	e.lists[m] = items[:last]
	s.pos[m] = -1
}

func (e *Engine) body(h Handle) *RigidBody {
	return &e.slots[h.index].body
}
