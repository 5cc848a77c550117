package layout

import (
	"fmt"

	"github.com/codedstructure/svgdx/svg"
	"github.com/codedstructure/svgdx/svg/expr"
	"github.com/codedstructure/svgdx/svg/style"
)

// shapeFor maps an element's tag name to the Shape Position resolution
// needs (rect-like default, with circle/line/point special cases).
func shapeFor(name string) svg.Shape {
	switch name {
	case "circle":
		return svg.ShapeCircle
	case "line":
		return svg.ShapeLine
	case "point":
		return svg.ShapePoint
	default:
		return svg.ShapeRect
	}
}

// ResolveElement runs one element through the per-element resolution
// pipeline: attribute expression substitution, containment, compound
// attribute expansion, relspec resolution against referenced elements,
// position build into concrete geometry attributes, and auto-style
// application. Container extent (content bbox aggregation) is the
// caller's responsibility once children are resolved, since it needs the
// whole subtree; the Transmute pass runs separately afterward.
func ResolveElement(view svg.ContextView, e *svg.SvgElement, rules style.Ruleset) error {
	if err := substituteAttrs(e, view); err != nil {
		return fmt.Errorf("element %q: %w", e.Name, err)
	}
	if err := ApplyContainment(view, e); err != nil {
		return fmt.Errorf("element %q: %w", e.Name, err)
	}

	raw := map[string]string{}
	for _, kv := range e.Attrs() {
		raw[kv.Key] = kv.Value
	}
	if err := ExpandCompound(raw); err != nil {
		return fmt.Errorf("element %q: %w", e.Name, err)
	}
	for _, k := range e.AttrNames() {
		if _, kept := raw[k]; !kept {
			e.Remove(k)
		}
	}
	for k, v := range raw {
		e.Set(k, v)
	}

	if err := ResolveRelspecs(view, e); err != nil {
		return fmt.Errorf("element %q: %w", e.Name, err)
	}
	raw = map[string]string{}
	for _, kv := range e.Attrs() {
		raw[kv.Key] = kv.Value
	}

	if hasPositionAttrs(raw) {
		pos, err := BuildPosition(shapeFor(e.Name), raw)
		if err != nil {
			return fmt.Errorf("element %q: %w", e.Name, err)
		}
		box, err := pos.Resolve()
		if err == nil {
			writeResolvedGeometry(e, box)
		}
		// dx/dy/dw/dh only ever feed Position; they have no meaning as
		// literal SVG attributes once resolved.
		e.Remove("dx")
		e.Remove("dy")
		e.Remove("dw")
		e.Remove("dh")
	}

	for k, v := range rules.Resolve(e.Name, e.Classes) {
		if _, present := e.Get(k); !present {
			e.Set(k, v)
		}
	}
	return nil
}

func substituteAttrs(e *svg.SvgElement, view svg.ContextView) error {
	for _, kv := range e.Attrs() {
		out, err := expr.EvalAttr(kv.Value, view)
		if err != nil {
			return fmt.Errorf("attribute %q: %w", kv.Key, err)
		}
		if out != kv.Value {
			e.Set(kv.Key, out)
		}
	}
	return nil
}

func hasPositionAttrs(attrs map[string]string) bool {
	for _, k := range []string{"x", "y", "x1", "y1", "x2", "y2", "cx", "cy", "width", "height", "dx", "dy", "dw", "dh"} {
		if _, ok := attrs[k]; ok {
			return true
		}
	}
	return false
}

// writeResolvedGeometry writes the resolved bounding box back as the
// shape-appropriate concrete attributes, so downstream SVG consumers
// never see a compound/partial attribute.
func writeResolvedGeometry(e *svg.SvgElement, box svg.BoundingBox) {
	switch e.Name {
	case "circle":
		r := (box.Width() + box.Height()) / 4
		e.Set("cx", svg.Fstr(box.CX()))
		e.Set("cy", svg.Fstr(box.CY()))
		e.Set("r", svg.Fstr(r))
	case "line":
		e.Set("x1", svg.Fstr(box.X1))
		e.Set("y1", svg.Fstr(box.Y1))
		e.Set("x2", svg.Fstr(box.X2))
		e.Set("y2", svg.Fstr(box.Y2))
	default:
		e.Set("x", svg.Fstr(box.X1))
		e.Set("y", svg.Fstr(box.Y1))
		e.Set("width", svg.Fstr(box.Width()))
		e.Set("height", svg.Fstr(box.Height()))
	}
}

// AggregateContentBBox unions resolved child boxes into the parent's
// ContentBBox, the "container extent" rule (spec §9): a compound element
// with no geometry of its own takes its bbox from its children.
func AggregateContentBBox(e *svg.SvgElement, childBoxes []svg.BoundingBox) {
	box := svg.NewBoundingBox()
	for _, c := range childBoxes {
		box = box.Combine(c)
	}
	if !box.Empty {
		e.ContentBBox = box
		e.HasContentBB = true
	}
}
