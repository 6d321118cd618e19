package ui

import (
	"fmt"
	"strings"
)

// Selector matches a node by class (.name) or by id (#name).
type Selector struct {
	ID   bool
	Name string
}

func (s Selector) String() string {
	if s.ID {
		return "#" + s.Name
	}
	return "." + s.Name
}

// Matches reports whether n carries the selector's class or id.
func (s Selector) Matches(n *Node) bool {
	if s.ID {
		return n.ID == s.Name
	}
	return n.Class == s.Name
}

// Rule applies Props to every node matched by any of its selectors.
type Rule struct {
	Selectors []Selector
	Props     map[string]string
}

// Stylesheet is an ordered rule list. Later rules override earlier ones.
type Stylesheet struct {
	Rules []Rule
}

// properties lists the declarations the HUD understands.
var properties = map[string]bool{
	"background": true,
	"color":      true,
	"border":     true,
	"width":      true,
	"height":     true,
	"left":       true,
	"top":        true,
	"padding":    true,
	"font-size":  true,
}

// ParseCSS reads the HUD stylesheet dialect: comma-separated .class and #id selectors, flat
// blocks of "key: value;" declarations and /* */ comments. Nested blocks, element or compound
// selectors and unknown properties are errors.
func ParseCSS(src string) (*Stylesheet, error) {
	src = stripComments(src)
	sheet := &Stylesheet{}
	for {
		src = strings.TrimSpace(src)
		if src == "" {
			return sheet, nil
		}
		open := strings.IndexByte(src, '{')
		if open < 0 {
			return nil, fmt.Errorf("ui: css: trailing text %q", src)
		}
		end := strings.IndexByte(src[open:], '}')
		if end < 0 {
			return nil, fmt.Errorf("ui: css: unterminated block for %q", strings.TrimSpace(src[:open]))
		}
		end += open

		sels, err := parseSelectors(src[:open])
		if err != nil {
			return nil, err
		}
		body := src[open+1 : end]
		if strings.IndexByte(body, '{') >= 0 {
			return nil, fmt.Errorf("ui: css: nested block in %s", sels[0])
		}
		props, err := parseDeclarations(body)
		if err != nil {
			return nil, fmt.Errorf("ui: css: %s: %w", sels[0], err)
		}
		sheet.Rules = append(sheet.Rules, Rule{Selectors: sels, Props: props})
		src = src[end+1:]
	}
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, "/*")
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		j := strings.Index(s[i+2:], "*/")
		if j < 0 {
			return b.String()
		}
		s = s[i+2+j+2:]
	}
}

func parseSelectors(group string) ([]Selector, error) {
	var sels []Selector
	for _, raw := range strings.Split(group, ",") {
		raw = strings.TrimSpace(raw)
		if len(raw) < 2 || (raw[0] != '.' && raw[0] != '#') || strings.ContainsAny(raw[1:], " \t\n.#:>+~[") {
			return nil, fmt.Errorf("ui: css: unsupported selector %q", raw)
		}
		sels = append(sels, Selector{ID: raw[0] == '#', Name: raw[1:]})
	}
	return sels, nil
}

func parseDeclarations(body string) (map[string]string, error) {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, ":")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || v == "" {
			return nil, fmt.Errorf("malformed declaration %q", part)
		}
		if !properties[k] {
			return nil, fmt.Errorf("unknown property %q", k)
		}
		props[k] = v
	}
	return props, nil
}
