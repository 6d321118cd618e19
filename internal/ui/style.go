package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	defaultFontSize = 20
	defaultPadding  = 4
)

// Style is the resolved look of one node. A percentage position is kept in LeftPct/TopPct
// (-1 when unset) and placed against the screen size at draw time; the node's width or
// height is subtracted first so 100% keeps it on screen.
type Style struct {
	Background rl.Color
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	FontSize   int32
}

// DefaultStyle is the look of a node no rule matches: transparent, white text, no border.
func DefaultStyle() Style {
	return Style{
		Background: rl.Blank,
		Color:      rl.White,
		Border:     rl.Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    defaultPadding,
		FontSize:   defaultFontSize,
	}
}

// Resolve turns merged declarations into a Style. Values that do not parse leave the default.
func Resolve(props map[string]string) Style {
	out := DefaultStyle()
	for k, v := range props {
		switch k {
		case "background":
			if c, ok := parseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := parseColor(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := parseColor(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := parsePx(v); ok && n >= 0 {
				out.Width = n
			}
		case "height":
			if n, ok := parsePx(v); ok && n >= 0 {
				out.Height = n
			}
		case "left":
			out.Left, out.LeftPct = parsePosition(v, out.Left, out.LeftPct)
		case "top":
			out.Top, out.TopPct = parsePosition(v, out.Top, out.TopPct)
		case "padding":
			if n, ok := parsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := parsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// parseColor accepts #RGB, #RRGGBB and #RRGGBBAA.
func parseColor(s string) (rl.Color, bool) {
	if len(s) < 2 || s[0] != '#' {
		return rl.Color{}, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return rl.Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Color{}, false
	}
	return rl.NewColor(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), true
}

// parsePx parses "N" or "Npx".
func parsePx(s string) (int32, bool) {
	n, err := strconv.Atoi(strings.TrimSuffix(s, "px"))
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// parsePosition parses a pixel offset or a 0-100 percentage; a bad value keeps px and pct.
func parsePosition(s string, px, pct int32) (int32, int32) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 100 {
			return px, pct
		}
		return px, int32(n)
	}
	if n, ok := parsePx(s); ok {
		return n, -1
	}
	return px, pct
}
