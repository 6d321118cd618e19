package ui

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// =============================================================================
// Stylesheet parsing
// =============================================================================

func TestParseCSS(t *testing.T) {
	css := `
/* score label */
.score { color: #ff6432; left: 600px; top: 30; }
#help, .tip { color: #fff; }
.score { top: 40; }
`
	sheet, err := ParseCSS(css)
	if err != nil {
		t.Fatalf("ParseCSS: %v", err)
	}
	if len(sheet.Rules) != 3 {
		t.Fatalf("Expected 3 rules, got %d", len(sheet.Rules))
	}
	first := sheet.Rules[0]
	if len(first.Selectors) != 1 || first.Selectors[0].String() != ".score" || first.Props["left"] != "600px" {
		t.Errorf("Unexpected first rule %+v", first)
	}
	group := sheet.Rules[1].Selectors
	if len(group) != 2 || group[0] != (Selector{ID: true, Name: "help"}) || group[1] != (Selector{Name: "tip"}) {
		t.Errorf("Expected #help and .tip, got %v", group)
	}
}

func TestParseCSSRejects(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want string
	}{
		{"element selector", "div { color: #000; }", "unsupported selector"},
		{"descendant selector", ".a .b { color: #000; }", "unsupported selector"},
		{"empty group member", ".a, { color: #000; }", "unsupported selector"},
		{"unknown property", ".a { colour: #000; }", "unknown property"},
		{"missing value", ".a { color; }", "malformed declaration"},
		{"nested block", ".a { .b { color: #000; } }", "nested block"},
		{"unterminated", ".a { color: #000;", "unterminated"},
		{"trailing text", ".a { color: #000; } junk", "trailing text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSS(tt.css)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

// =============================================================================
// Style resolution
// =============================================================================

func TestResolve(t *testing.T) {
	style := Resolve(map[string]string{
		"color":      "#ff6432",
		"background": "#12345680",
		"left":       "50%",
		"top":        "30px",
		"width":      "200",
		"padding":    "8",
		"font-size":  "16",
		"border":     "not-a-color",
	})
	if style.Color != rl.NewColor(255, 100, 50, 255) {
		t.Errorf("Expected orange text, got %v", style.Color)
	}
	if style.Background != rl.NewColor(0x12, 0x34, 0x56, 0x80) {
		t.Errorf("Expected translucent #123456 background, got %v", style.Background)
	}
	if style.LeftPct != 50 || style.Top != 30 || style.TopPct != -1 {
		t.Errorf("Unexpected position %+v", style)
	}
	if style.Width != 200 || style.Padding != 8 || style.FontSize != 16 {
		t.Errorf("Unexpected size/padding/font %+v", style)
	}
	if style.HasBorder {
		t.Error("Expected invalid border color to be ignored")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want rl.Color
		ok   bool
	}{
		{"#123", rl.NewColor(0x11, 0x22, 0x33, 255), true},
		{"#ff6432", rl.NewColor(255, 100, 50, 255), true},
		{"#18181800", rl.NewColor(0x18, 0x18, 0x18, 0), true},
		{"#12", rl.Color{}, false},
		{"#gggggg", rl.Color{}, false},
		{"red", rl.Color{}, false},
	}
	for _, tt := range tests {
		got, ok := parseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseColor(%q): expected %v %v, got %v %v", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}

func TestResolvePositionFallsBack(t *testing.T) {
	style := Resolve(map[string]string{"left": "150%", "top": "abc"})
	if style.LeftPct != -1 || style.Left != 0 || style.TopPct != -1 || style.Top != 0 {
		t.Errorf("Expected defaults for out-of-range positions, got %+v", style)
	}
	if def := DefaultStyle(); def.FontSize != 20 || def.Padding != 4 {
		t.Errorf("Expected default font 20 and padding 4, got %d %d", def.FontSize, def.Padding)
	}
}

func TestStylesMatchClassAndID(t *testing.T) {
	e := New()
	if err := e.LoadCSS(".label { color: #f00; top: 10; } #score, #other { color: #0f0; }"); err != nil {
		t.Fatal(err)
	}
	if !e.HasStylesheet() {
		t.Fatal("Expected stylesheet loaded")
	}
	plain := NewNode("label", "label", "", "a")
	score := NewNode("label", "label", "score", "b")
	e.SetNodes([]*Node{plain, score})

	styles := e.Styles()
	if styles[0].Color != rl.NewColor(255, 0, 0, 255) {
		t.Errorf("Expected class color, got %v", styles[0].Color)
	}
	if styles[1].Color != rl.NewColor(0, 255, 0, 255) {
		t.Errorf("Expected id rule to win, got %v", styles[1].Color)
	}
	if score.Bounds.Y != 10 {
		t.Errorf("Expected bounds from style, got %v", score.Bounds)
	}
}

func TestInspectorAppendNodes(t *testing.T) {
	in := NewInspector()
	if got := in.AppendNodes(nil, false, Selection{}); len(got) != 0 {
		t.Errorf("Expected hidden inspector to add nothing, got %d nodes", len(got))
	}
	nodes := in.AppendNodes(nil, true, Selection{
		Name:     "bird",
		Category: "player",
		Position: [2]float32{180, 400},
		Velocity: [2]float32{2400, -800},
		Mass:     500,
	})
	if len(nodes) != 7 {
		t.Fatalf("Expected 7 nodes, got %d", len(nodes))
	}
	if nodes[2].Text != "bird (player)" || nodes[3].Text != "Position: 180.0, 400.0" {
		t.Errorf("Unexpected labels %q %q", nodes[2].Text, nodes[3].Text)
	}
	if nodes[6].Text != "Plane contact: none" {
		t.Errorf("Expected no contact, got %q", nodes[6].Text)
	}
}
