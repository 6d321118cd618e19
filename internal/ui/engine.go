package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached and only recomputed when sheet or nodes change to avoid per-frame allocations.
// If a font is set (SetFont), text is drawn with it; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []Style
	cacheValid   bool
	font         rl.Font
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{sheet: nil, nodes: nil}
}

// LoadCSS parses CSS text (e.g. an embedded HUD stylesheet) and replaces the current stylesheet.
func (e *Engine) LoadCSS(css string) error {
	sheet, err := ParseCSS(css)
	if err != nil {
		return err
	}
	e.sheet = sheet
	e.cacheValid = false
	return nil
}

// SetFont sets the font used for text. Zero texture ID = use raylib default.
func (e *Engine) SetFont(font rl.Font) {
	e.font = font
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.cacheValid = false
}

// resolveProps merges the declarations of every rule matching n, in sheet order.
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		for _, sel := range rule.Selectors {
			if sel.Matches(n) {
				for k, v := range rule.Props {
					merged[k] = v
				}
				break
			}
		}
	}
	return merged
}

// resolveBounds sets n.Bounds from style (left, top, width, height). If style has zero size, Bounds is unchanged.
func resolveBounds(n *Node, style Style) {
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	n.Bounds.X = float32(style.Left)
	n.Bounds.Y = float32(style.Top)
}

// Draw draws all nodes: for each node, resolve style (cached), update bounds from style, then draw background, border, and text.
func (e *Engine) Draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	styles := e.Styles()
	for i, n := range e.nodes {
		style := styles[i]
		w := int32(n.Bounds.Width)
		h := int32(n.Bounds.Height)
		x := int32(n.Bounds.X)
		y := int32(n.Bounds.Y)
		if style.LeftPct >= 0 {
			x = (screenW - w) * style.LeftPct / 100
		}
		if style.TopPct >= 0 {
			y = (screenH - h) * style.TopPct / 100
		}

		// Background
		if style.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, style.Background)
		}
		// Border (1px)
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.Border)
		}
		// Text (for label-type or any node with text)
		if n.Text != "" {
			textX := x + style.Padding
			textY := y + style.Padding
			if e.font.Texture.ID != 0 {
				rl.DrawTextEx(e.font, n.Text, rl.NewVector2(float32(textX), float32(textY)), float32(style.FontSize), 1, style.Color)
			} else {
				rl.DrawText(n.Text, textX, textY, style.FontSize, style.Color)
			}
		}
	}
}

// HasStylesheet returns whether a stylesheet with at least one rule has been loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Styles resolves and caches the style of every node, updating their bounds. Draw calls it.
func (e *Engine) Styles() []Style {
	if !e.cacheValid {
		e.cachedStyles = make([]Style, len(e.nodes))
		for i, n := range e.nodes {
			e.cachedStyles[i] = Resolve(e.resolveProps(n))
			resolveBounds(n, e.cachedStyles[i])
		}
		e.cacheValid = true
	}
	return e.cachedStyles
}
