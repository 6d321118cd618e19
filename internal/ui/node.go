package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single HUD element: panel or label. It has optional class and id for CSS matching,
// bounds (position and size) resolved from the stylesheet, and optional text.
type Node struct {
	Type   string // "panel" or "label"
	Class  string // e.g. "score" for .score
	ID     string // e.g. "help-keys" for #help-keys
	Bounds rl.Rectangle
	Text   string
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}
