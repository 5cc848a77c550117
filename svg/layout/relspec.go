package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codedstructure/svgdx/svg"
)

// sizeAttrDefaultScalar and posAttrDefaultScalar give the scalarspec a
// relspec resolves to when no explicit "~scalar" is present (spec §4.5
// step 4: "default scalar is same axis").
var sizeAttrDefaultScalar = map[string]string{
	"width": "width", "height": "height", "r": "radius", "rx": "radius", "ry": "radius",
}
var posAttrDefaultScalar = map[string]string{
	"x": "x", "y": "y", "x1": "x1", "y1": "y1", "x2": "x2", "y2": "y2", "cx": "cx", "cy": "cy",
}

// ResolveRelspecs runs pipeline step 4: for every size/position attribute
// whose value parses as a relspec (#id/^n/+n optionally followed by
// "~scalar" or "@loc", and an optional trailing "dx[ dy]" Length adjust),
// replace it with the computed numeric value.
func ResolveRelspecs(view svg.ContextView, e *svg.SvgElement) error {
	for attr, scalar := range sizeAttrDefaultScalar {
		if err := resolveOneRelspec(view, e, attr, scalar); err != nil {
			return err
		}
	}
	for attr, scalar := range posAttrDefaultScalar {
		if err := resolveOneRelspec(view, e, attr, scalar); err != nil {
			return err
		}
	}
	return nil
}

// yAxisAttrs names the position attributes whose "@loc" resolution must
// take the loc's y component rather than its x component.
var yAxisAttrs = map[string]bool{"y": true, "y1": true, "y2": true, "cy": true}

func resolveOneRelspec(view svg.ContextView, e *svg.SvgElement, attr, defaultScalar string) error {
	v, ok := e.Get(attr)
	if !ok || len(v) == 0 || (v[0] != '#' && v[0] != '^' && v[0] != '+') {
		return nil
	}
	val, err := evalRelspec(view, v, defaultScalar, e.Name == "text", yAxisAttrs[attr])
	if err != nil {
		return fmt.Errorf("%s: %w", attr, err)
	}
	e.Set(attr, svg.Fstr(val))
	return nil
}

// evalRelspec parses and evaluates "#ref[~scalar|@loc][ dx[ dy]]".
func evalRelspec(view svg.ContextView, s, defaultScalar string, isText, yAxis bool) (float32, error) {
	refPart, rest := s, ""
	for i, c := range s {
		if c == '~' || c == '@' || c == ' ' {
			refPart, rest = s[:i], s[i:]
			break
		}
	}
	ref, err := svg.ParseElRef(refPart)
	if err != nil {
		return 0, err
	}
	box, err := view.ResolveBBox(ref)
	if err != nil {
		return 0, err
	}

	var extra string
	if rest != "" && rest[0] == '~' {
		end := strings.IndexByte(rest, ' ')
		if end < 0 {
			end = len(rest)
		}
		scalarName := rest[1:end]
		extra = strings.TrimSpace(rest[end:])
		k, err := svg.ParseScalarSpec(scalarName)
		if err != nil {
			return 0, err
		}
		return box.ScalarSpec(k) + parseTrailingDelta(extra, yAxis), nil
	}
	if rest != "" && rest[0] == '@' {
		end := strings.IndexByte(rest, ' ')
		if end < 0 {
			end = len(rest)
		}
		locName := rest[1:end]
		extra = strings.TrimSpace(rest[end:])
		loc, err := svg.ParseLocSpec(locName)
		if err != nil {
			return 0, err
		}
		if isText {
			loc = svg.LocSpec{Kind: svg.LocC}
		}
		x, y := box.LocSpec(loc)
		if yAxis {
			return y + parseTrailingDelta(extra, yAxis), nil
		}
		return x + parseTrailingDelta(extra, yAxis), nil
	}
	k, err := svg.ParseScalarSpec(defaultScalar)
	if err != nil {
		return 0, err
	}
	return box.ScalarSpec(k) + parseTrailingDelta(strings.TrimSpace(rest), yAxis), nil
}

// parseTrailingDelta reads a " dx[ dy]" suffix; a y-axis attribute takes
// dy when both values are given.
func parseTrailingDelta(s string, yAxis bool) float32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if f := strings.Fields(s); len(f) == 2 {
		s = f[0]
		if yAxis {
			s = f[1]
		}
	}
	l, err := svg.ParseLength(s)
	if err != nil {
		f, err2 := strconv.ParseFloat(strings.Fields(s)[0], 32)
		if err2 != nil {
			return 0
		}
		return float32(f)
	}
	return l.Value
}
