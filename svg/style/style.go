// Package style implements the auto-style rule engine: matching an
// element's tag, classes, and id-colour/numeric suffixes against the
// active theme's rule table to produce implicit style attributes,
// without generating any CSS text (that stays an external, out-of-scope
// concern per the distilled spec).
package style

import (
	"regexp"
	"strings"
)

// Theme names one of the six built-in presets.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeBold    Theme = "bold"
	ThemeFine    Theme = "fine"
	ThemeGlass   Theme = "glass"
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
)

// Rule maps a selector (tag name, class name, or a colour/numeric
// suffix pattern) to the attribute values it implies.
type Rule struct {
	Selector string
	Attrs    map[string]string
}

// Ruleset is the ordered list of rules for one theme; later rules
// override earlier ones on conflicting attribute keys, matching CSS
// cascade semantics in spirit.
type Ruleset struct {
	Theme Theme
	Rules []Rule
}

var colourSuffixRe = regexp.MustCompile(`-([a-z]+|[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
var numericSuffixRe = regexp.MustCompile(`-([0-9]+)$`)

var namedColours = map[string]string{
	"red": "#d32f2f", "green": "#388e3c", "blue": "#1976d2",
	"yellow": "#fbc02d", "orange": "#f57c00", "purple": "#7b1fa2",
	"grey": "#757575", "gray": "#757575", "black": "#000000", "white": "#ffffff",
}

// Resolve computes the implicit attribute set for an element given its
// tag name and classes, by tag rule, then each class rule in order
// (first by plain class name, then by colour suffix, then by numeric
// suffix), later matches overriding earlier ones.
func (rs Ruleset) Resolve(tag string, classes []string) map[string]string {
	out := map[string]string{}
	for _, r := range rs.Rules {
		if r.Selector == tag {
			applyInto(out, r.Attrs)
		}
	}
	for _, cls := range classes {
		for _, r := range rs.Rules {
			if r.Selector == cls {
				applyInto(out, r.Attrs)
			}
		}
		if m := colourSuffixRe.FindStringSubmatch(cls); m != nil {
			colour := m[1]
			if hex, ok := namedColours[colour]; ok {
				applyInto(out, map[string]string{"fill": hex})
			} else if (len(colour) == 3 || len(colour) == 6) && strings.Trim(colour, "0123456789abcdefABCDEF") == "" {
				applyInto(out, map[string]string{"fill": "#" + colour})
			}
		}
		if m := numericSuffixRe.FindStringSubmatch(cls); m != nil {
			applyInto(out, map[string]string{"stroke-width": m[1]})
		}
	}
	return out
}

func applyInto(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// DefaultRuleset returns the built-in rule table for the given theme.
// Unknown themes fall back to ThemeDefault.
func DefaultRuleset(theme Theme) Ruleset {
	base := []Rule{
		{Selector: "rect", Attrs: map[string]string{"rx": "2"}},
		{Selector: "text", Attrs: map[string]string{"text-anchor": "middle", "dominant-baseline": "central"}},
	}
	switch theme {
	case ThemeBold:
		return Ruleset{Theme: theme, Rules: append(base,
			Rule{Selector: "rect", Attrs: map[string]string{"stroke": "#222", "stroke-width": "2"}},
		)}
	case ThemeFine:
		return Ruleset{Theme: theme, Rules: append(base,
			Rule{Selector: "rect", Attrs: map[string]string{"stroke-width": "0.5"}},
		)}
	case ThemeGlass:
		return Ruleset{Theme: theme, Rules: append(base,
			Rule{Selector: "rect", Attrs: map[string]string{"fill-opacity": "0.35", "stroke-opacity": "0.6"}},
		)}
	case ThemeLight:
		return Ruleset{Theme: theme, Rules: append(base,
			Rule{Selector: "rect", Attrs: map[string]string{"fill": "#f5f5f5", "stroke": "#999"}},
		)}
	case ThemeDark:
		return Ruleset{Theme: theme, Rules: append(base,
			Rule{Selector: "rect", Attrs: map[string]string{"fill": "#2b2b2b", "stroke": "#ddd"}},
			Rule{Selector: "text", Attrs: map[string]string{"fill": "#eee"}},
		)}
	default:
		return Ruleset{Theme: ThemeDefault, Rules: base}
	}
}

// CSSRenderer is the out-of-scope surface for turning a Ruleset into
// literal CSS text (the distilled spec excludes markdown-to-span/CSS
// string generation); kept as an interface seam so a future renderer
// can slot in without this package changing.
type CSSRenderer interface {
	Render(Ruleset) (string, error)
}
