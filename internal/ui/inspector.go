package ui

import "fmt"

// Inspector is a right-side panel showing the physics state of one body (usually the projectile).
// It owns its nodes and updates their text when AppendNodes is called with visible true.
type Inspector struct {
	panel    *Node
	title    *Node
	name     *Node
	position *Node
	velocity *Node
	mass     *Node
	contact  *Node
}

// NewInspector creates an Inspector with nodes styled by the engine's CSS (.inspector, .inspector-title, etc.).
func NewInspector() *Inspector {
	return &Inspector{
		panel:    NewNode("panel", "inspector", "", ""),
		title:    NewNode("label", "inspector-title", "", "Inspector"),
		name:     NewNode("label", "inspector-name", "", ""),
		position: NewNode("label", "inspector-position", "", ""),
		velocity: NewNode("label", "inspector-velocity", "", ""),
		mass:     NewNode("label", "inspector-mass", "", ""),
		contact:  NewNode("label", "inspector-contact", "", ""),
	}
}

// Selection holds the data shown in the inspector. The render layer fills it from the scene;
// ui does not depend on scene or physics.
type Selection struct {
	Name        string
	Category    string
	Position    [2]float32
	Velocity    [2]float32
	Mass        float32
	Restitution float32
	Colliding   bool
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from sel.
// When visible is false, dst is returned unchanged.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection) []*Node {
	if !visible {
		return dst
	}
	in.name.Text = fmt.Sprintf("%s (%s)", sel.Name, sel.Category)
	in.position.Text = fmt.Sprintf("Position: %.1f, %.1f", sel.Position[0], sel.Position[1])
	in.velocity.Text = fmt.Sprintf("Velocity: %.1f, %.1f", sel.Velocity[0], sel.Velocity[1])
	in.mass.Text = fmt.Sprintf("Mass: %.0f  e: %.2f", sel.Mass, sel.Restitution)
	if sel.Colliding {
		in.contact.Text = "Plane contact: yes"
	} else {
		in.contact.Text = "Plane contact: none"
	}
	return append(dst, in.panel, in.title, in.name, in.position, in.velocity, in.mass, in.contact)
}
