package layout

import (
	"fmt"
	"strings"

	"github.com/codedstructure/svgdx/svg"
)

// ExpandCompound expands the xy/cxy/wh/dwh/rxy/xy1/xy2/dxy compound-attribute
// shorthands into the individual min/mid/extent/delta attributes Position
// understands, per spec §4.4/§4.5 step 3. It mutates attrs in place
// (removing the compound key and adding the expanded keys) and returns an
// error on a malformed value.
func ExpandCompound(attrs map[string]string) error {
	if v, ok := attrs["xy"]; ok {
		x, y, err := splitPair(v)
		if err != nil {
			return fmt.Errorf("xy: %w", err)
		}
		attrs["x"] = x
		attrs["y"] = y
		delete(attrs, "xy")
	}
	if v, ok := attrs["cxy"]; ok {
		x, y, err := splitPair(v)
		if err != nil {
			return fmt.Errorf("cxy: %w", err)
		}
		attrs["cx"] = x
		attrs["cy"] = y
		delete(attrs, "cxy")
	}
	if v, ok := attrs["xy1"]; ok {
		x, y, err := splitPair(v)
		if err != nil {
			return fmt.Errorf("xy1: %w", err)
		}
		attrs["x1"] = x
		attrs["y1"] = y
		delete(attrs, "xy1")
	}
	if v, ok := attrs["xy2"]; ok {
		x, y, err := splitPair(v)
		if err != nil {
			return fmt.Errorf("xy2: %w", err)
		}
		attrs["x2"] = x
		attrs["y2"] = y
		delete(attrs, "xy2")
	}
	if v, ok := attrs["dxy"]; ok {
		dx, dy, err := splitPair(v)
		if err != nil {
			return fmt.Errorf("dxy: %w", err)
		}
		attrs["dx"] = dx
		attrs["dy"] = dy
		delete(attrs, "dxy")
	}
	if v, ok := attrs["wh"]; ok {
		w, h, err := splitWH(v)
		if err != nil {
			return fmt.Errorf("wh: %w", err)
		}
		attrs["width"] = w
		attrs["height"] = h
		delete(attrs, "wh")
	}
	if v, ok := attrs["dwh"]; ok {
		// dwh: a single size-delta value applied to both width and height.
		attrs["dw"] = v
		attrs["dh"] = v
		delete(attrs, "dwh")
	}
	if v, ok := attrs["rxy"]; ok {
		rx, ry, err := splitPair(v)
		if err != nil {
			return fmt.Errorf("rxy: %w", err)
		}
		attrs["rx"] = rx
		attrs["ry"] = ry
		delete(attrs, "rxy")
	}
	return nil
}

func splitPair(v string) (string, string, error) {
	v = strings.ReplaceAll(v, ",", " ")
	fields := strings.Fields(v)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("expected 2 values, got %d in %q", len(fields), v)
	}
	return fields[0], fields[1], nil
}

// splitWH implements the wh shorthand's split rule (spec §4.5 step 3):
// a value starting with an element-reference prefix (#id/^n/+n) takes a
// single space to separate the reference from 1-2 trailing deltas applied
// per axis ("#abc -2 5" -> width "#abc -2", height "#abc 5"; "#abc -2" ->
// both axes get "-2"); otherwise it's 1-2 plain numbers cycled over the
// two axes ("10" -> both axes get "10"; "10 20" -> width "10", height
// "20").
func splitWH(v string) (string, string, error) {
	if len(v) > 0 && (v[0] == '#' || v[0] == '^' || v[0] == '+') {
		parts := strings.SplitN(v, " ", 2)
		ref := parts[0]
		if len(parts) == 1 {
			return ref, ref, nil
		}
		deltas := strings.Fields(parts[1])
		switch len(deltas) {
		case 1:
			return ref + " " + deltas[0], ref + " " + deltas[0], nil
		case 2:
			return ref + " " + deltas[0], ref + " " + deltas[1], nil
		default:
			return "", "", fmt.Errorf("expected 1 or 2 deltas after reference, got %d in %q", len(deltas), v)
		}
	}
	fields := strings.Fields(strings.ReplaceAll(v, ",", " "))
	switch len(fields) {
	case 1:
		return fields[0], fields[0], nil
	case 2:
		return fields[0], fields[1], nil
	default:
		return "", "", fmt.Errorf("expected 1 or 2 values, got %d in %q", len(fields), v)
	}
}

// BuildPosition assembles a svg.Position from an element's resolved
// attribute map, applying only the constraints actually present.
func BuildPosition(shape svg.Shape, attrs map[string]string) (svg.Position, error) {
	p := svg.Position{Shape: shape}
	if err := setAxis(&p.X, attrs, "x", "x1", "x2", "cx", "width", "dx", "dw"); err != nil {
		return p, err
	}
	if err := setAxis(&p.Y, attrs, "y", "y1", "y2", "cy", "height", "dy", "dh"); err != nil {
		return p, err
	}
	return p, nil
}

// setAxis applies one axis's constraints; its target interface is the
// minimal surface compound.go needs from svg.axis, exposed indirectly
// through the Position value's exported setters.
func setAxis(target interface {
	SetMin(float32)
	SetMax(float32)
	SetMid(float32)
	SetExtent(float32)
	AddDelta(float32)
	AddExtentDelta(float32)
}, attrs map[string]string, minKey, altMinKey, maxKey, midKey, extentKey, deltaKey, extentDeltaKey string) error {
	if v, ok := firstOf(attrs, minKey, altMinKey); ok {
		f, err := parseF32(v)
		if err != nil {
			return err
		}
		target.SetMin(f)
	}
	if v, ok := attrs[maxKey]; ok {
		f, err := parseF32(v)
		if err != nil {
			return err
		}
		target.SetMax(f)
	}
	if v, ok := attrs[midKey]; ok {
		f, err := parseF32(v)
		if err != nil {
			return err
		}
		target.SetMid(f)
	}
	if v, ok := attrs[extentKey]; ok {
		f, err := parseF32(v)
		if err != nil {
			return err
		}
		target.SetExtent(f)
	}
	if v, ok := attrs[deltaKey]; ok {
		f, err := parseF32(v)
		if err != nil {
			return err
		}
		target.AddDelta(f)
	}
	if v, ok := attrs[extentDeltaKey]; ok {
		f, err := parseF32(v)
		if err != nil {
			return err
		}
		target.AddExtentDelta(f)
	}
	return nil
}

func firstOf(attrs map[string]string, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := attrs[k]; ok {
			return v, true
		}
	}
	return "", false
}

func parseF32(s string) (float32, error) {
	var f float64
	_, err := fmt.Sscanf(strings.TrimSpace(s), "%g", &f)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return float32(f), nil
}
