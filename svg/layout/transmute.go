package layout

import (
	"fmt"

	"github.com/codedstructure/svgdx/svg"
	"github.com/codedstructure/svgdx/svg/connector"
)

// Transmute runs the follow-up pass spec §4.5 describes after the
// per-element resolution steps: bearing-command path rewriting,
// connector-endpoint replacement, and rotate consumption. It does not
// set a content bbox on use elements.
func Transmute(view svg.ContextView, e *svg.SvgElement) error {
	if err := transmuteBearing(e); err != nil {
		return err
	}
	if err := transmuteConnector(view, e); err != nil {
		return err
	}
	transmuteRotate(e)
	return nil
}

func transmuteBearing(e *svg.SvgElement) error {
	if e.Name != "path" {
		return nil
	}
	d, ok := e.Get("d")
	if !ok {
		return nil
	}
	rewritten, err := svg.RewriteBearing(d)
	if err != nil {
		return fmt.Errorf("element %q: %w", e.Name, err)
	}
	e.Set("d", rewritten)
	return nil
}

// transmuteConnector replaces an element carrying both "start" and "end"
// (only line/polyline shapes qualify) with the routed connector's points.
func transmuteConnector(view svg.ContextView, e *svg.SvgElement) error {
	if e.Name != "line" && e.Name != "polyline" {
		return nil
	}
	startSpec, hasStart := e.Get("start")
	endSpec, hasEnd := e.Get("end")
	if !hasStart && !hasEnd {
		return nil
	}
	if hasStart != hasEnd {
		return fmt.Errorf("connector element requires both start and end")
	}

	start, startBox, err := resolveEndpoint(view, startSpec)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, endBox, err := resolveEndpoint(view, endSpec)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}

	shape := connector.Shape(e.GetDefault("edge-type", string(connector.ShapeStraight)))
	var d string
	if shape == connector.ShapeElbow {
		var obstacles []svg.BoundingBox
		if startBox != nil {
			obstacles = append(obstacles, *startBox)
		}
		if endBox != nil {
			obstacles = append(obstacles, *endBox)
		}
		d, err = connector.RouteElbow(start, end, obstacles, 4)
	} else {
		var offset *svg.Length
		if v, ok := e.Get("corner-offset"); ok {
			if l, perr := svg.ParseLength(v); perr == nil {
				offset = &l
			}
		}
		d, err = connector.Route(shape, start, end, offset)
	}
	if err != nil {
		return fmt.Errorf("connector: %w", err)
	}

	e.Remove("start")
	e.Remove("end")
	e.Remove("edge-type")
	e.Remove("corner-offset")
	e.Name = "polyline"
	e.Set("points", svg.FormatPoints(pathDToPoints(d)))
	return nil
}

// resolveEndpoint evaluates a connector endpoint spec: either a literal
// "x,y" pair or an element reference (optionally with "@loc").
func resolveEndpoint(view svg.ContextView, spec string) ([2]float32, *svg.BoundingBox, error) {
	if len(spec) > 0 && (spec[0] == '#' || spec[0] == '^' || spec[0] == '+') {
		refPart, loc, _ := splitRefLoc(spec)
		ref, err := svg.ParseElRef(refPart)
		if err != nil {
			return [2]float32{}, nil, err
		}
		box, err := view.ResolveBBox(ref)
		if err != nil {
			return [2]float32{}, nil, err
		}
		locSpec := svg.LocSpec{Kind: svg.LocC}
		if loc != "" {
			if ls, perr := svg.ParseLocSpec(loc); perr == nil {
				locSpec = ls
			}
		}
		x, y := box.LocSpec(locSpec)
		return [2]float32{x, y}, &box, nil
	}
	x, y, err := parseXYPair(spec)
	return [2]float32{x, y}, nil, err
}

func splitRefLoc(spec string) (ref, loc string, ok bool) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == '@' {
			return spec[:i], spec[i+1:], true
		}
	}
	return spec, "", false
}

func parseXYPair(s string) (float32, float32, error) {
	x, y, err := splitPair(s)
	if err != nil {
		return 0, 0, err
	}
	fx, err := parseF32(x)
	if err != nil {
		return 0, 0, err
	}
	fy, err := parseF32(y)
	if err != nil {
		return 0, 0, err
	}
	return fx, fy, nil
}

// pathDToPoints reduces a connector-generated "M../L.." path string back
// to a coordinate list for <polyline points="...">.
func pathDToPoints(d string) [][2]float32 {
	var pts [][2]float32
	var cur string
	flush := func() {
		if cur == "" {
			return
		}
		var x, y float32
		if _, err := fmt.Sscanf(cur, "%g,%g", &x, &y); err == nil {
			pts = append(pts, [2]float32{x, y})
		}
		cur = ""
	}
	for _, r := range d {
		switch r {
		case 'M', 'L':
			flush()
		case ' ':
			flush()
		default:
			cur += string(r)
		}
	}
	flush()
	return pts
}

func transmuteRotate(e *svg.SvgElement) {
	angle, ok := e.Get("rotate")
	if !ok {
		return
	}
	box, hasBox := e.BBox()
	var cx, cy string
	if hasBox {
		cx, cy = svg.Fstr(box.CX()), svg.Fstr(box.CY())
	} else {
		cx, cy = "0", "0"
	}
	rot := fmt.Sprintf("rotate(%s, %s, %s)", angle, cx, cy)
	if existing, ok := e.Get("transform"); ok {
		e.Set("transform", rot+" "+existing)
	} else {
		e.Set("transform", rot)
	}
	e.Remove("rotate")
}
