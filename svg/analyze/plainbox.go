package analyze

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
)

// This file holds the plain-SVG geometry used only by the post-transform
// analyze/verify/security tooling: a naive, regex-driven bbox computation
// over an already-standard SVG document (any file, not just svgdx output).
// It intentionally does NOT share types with the exact, spec-driven
// geometry engine in package svg (svg.BoundingBox et al.) — that engine
// works over the extended-dialect element model with f32 coordinates and
// exact Bezier/arc extrema, while this one is a quick best-effort estimate
// used to print human-readable diagnostics about a finished file.

// BoundingBox is a simple min/max box over float64 coordinates.
type BoundingBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewBoundingBox creates an empty bounding box.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
}

// Width returns the width of the bounding box.
func (b *BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the height of the bounding box.
func (b *BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the X coordinate of the center.
func (b *BoundingBox) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// CenterY returns the Y coordinate of the center.
func (b *BoundingBox) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// IsValid returns true if the bounding box has been expanded with at least one point.
func (b *BoundingBox) IsValid() bool {
	return b.MinX != math.MaxFloat64 && b.MaxX != -math.MaxFloat64
}

// Expand expands the bounding box to include the given point.
func (b *BoundingBox) Expand(x, y float64) {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// Merge merges another bounding box into this one.
func (b *BoundingBox) Merge(other *BoundingBox) {
	if !other.IsValid() {
		return
	}
	b.Expand(other.MinX, other.MinY)
	b.Expand(other.MaxX, other.MaxY)
}

// ViewBox represents an SVG viewBox.
type ViewBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// CenterX returns the X coordinate of the viewBox center.
func (v *ViewBox) CenterX() float64 { return v.X + v.Width/2 }

// CenterY returns the Y coordinate of the viewBox center.
func (v *ViewBox) CenterY() float64 { return v.Y + v.Height/2 }

// String returns the viewBox as a string suitable for an SVG attribute.
func (v *ViewBox) String() string {
	return fmt.Sprintf("%.1f %.1f %.1f %.1f", v.X, v.Y, v.Width, v.Height)
}

// ParseViewBox parses a viewBox string like "0 0 100 100".
func ParseViewBox(s string) (ViewBox, error) {
	parts := strings.Fields(s)
	if len(parts) != 4 {
		return ViewBox{}, fmt.Errorf("invalid viewBox format: %s", s)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return ViewBox{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return ViewBox{}, err
	}
	w, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return ViewBox{}, err
	}
	h, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return ViewBox{}, err
	}
	return ViewBox{X: x, Y: y, Width: w, Height: h}, nil
}

// ParseFloat parses a float with a default value on error.
func ParseFloat(s string, defaultVal float64) float64 {
	if s == "" {
		return defaultVal
	}
	s = strings.TrimSuffix(s, "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

// PathCommand represents a single SVG path command.
type PathCommand struct {
	Command byte
	Params  []float64
}

var pathCmdRe = regexp.MustCompile(`([MmLlHhVvCcSsQqTtAaZz])([^MmLlHhVvCcSsQqTtAaZz]*)`)
var pathNumRe = regexp.MustCompile(`[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParsePath parses an SVG path d attribute into commands. This is a
// best-effort scanner for the plain-SVG diagnostics tools; the exact
// grammar (concatenated numbers, arc flags) is implemented precisely in
// package svg's path parser, which backs the actual compiler.
func ParsePath(d string) []PathCommand {
	var commands []PathCommand
	matches := pathCmdRe.FindAllStringSubmatch(d, -1)
	for _, match := range matches {
		cmd := match[1][0]
		params := pathNumRe.FindAllString(match[2], -1)
		var floatParams []float64
		for _, p := range params {
			if v, err := strconv.ParseFloat(p, 64); err == nil {
				floatParams = append(floatParams, v)
			}
		}
		commands = append(commands, PathCommand{Command: cmd, Params: floatParams})
	}
	return commands
}

// CalculatePathBounds calculates an approximate bounding box from path commands.
func CalculatePathBounds(d string) *BoundingBox {
	box := NewBoundingBox()
	commands := ParsePath(d)

	var curX, curY float64
	var startX, startY float64

	for _, cmd := range commands {
		switch cmd.Command {
		case 'M':
			for i := 0; i+1 < len(cmd.Params); i += 2 {
				curX, curY = cmd.Params[i], cmd.Params[i+1]
				if i == 0 {
					startX, startY = curX, curY
				}
				box.Expand(curX, curY)
			}
		case 'm':
			for i := 0; i+1 < len(cmd.Params); i += 2 {
				curX += cmd.Params[i]
				curY += cmd.Params[i+1]
				if i == 0 {
					startX, startY = curX, curY
				}
				box.Expand(curX, curY)
			}
		case 'L':
			for i := 0; i+1 < len(cmd.Params); i += 2 {
				curX, curY = cmd.Params[i], cmd.Params[i+1]
				box.Expand(curX, curY)
			}
		case 'l':
			for i := 0; i+1 < len(cmd.Params); i += 2 {
				curX += cmd.Params[i]
				curY += cmd.Params[i+1]
				box.Expand(curX, curY)
			}
		case 'H':
			for _, x := range cmd.Params {
				curX = x
				box.Expand(curX, curY)
			}
		case 'h':
			for _, dx := range cmd.Params {
				curX += dx
				box.Expand(curX, curY)
			}
		case 'V':
			for _, y := range cmd.Params {
				curY = y
				box.Expand(curX, curY)
			}
		case 'v':
			for _, dy := range cmd.Params {
				curY += dy
				box.Expand(curX, curY)
			}
		case 'C':
			for i := 0; i+5 < len(cmd.Params); i += 6 {
				box.Expand(cmd.Params[i], cmd.Params[i+1])
				box.Expand(cmd.Params[i+2], cmd.Params[i+3])
				curX, curY = cmd.Params[i+4], cmd.Params[i+5]
				box.Expand(curX, curY)
			}
		case 'c':
			for i := 0; i+5 < len(cmd.Params); i += 6 {
				box.Expand(curX+cmd.Params[i], curY+cmd.Params[i+1])
				box.Expand(curX+cmd.Params[i+2], curY+cmd.Params[i+3])
				curX += cmd.Params[i+4]
				curY += cmd.Params[i+5]
				box.Expand(curX, curY)
			}
		case 'S':
			for i := 0; i+3 < len(cmd.Params); i += 4 {
				box.Expand(cmd.Params[i], cmd.Params[i+1])
				curX, curY = cmd.Params[i+2], cmd.Params[i+3]
				box.Expand(curX, curY)
			}
		case 's':
			for i := 0; i+3 < len(cmd.Params); i += 4 {
				box.Expand(curX+cmd.Params[i], curY+cmd.Params[i+1])
				curX += cmd.Params[i+2]
				curY += cmd.Params[i+3]
				box.Expand(curX, curY)
			}
		case 'Q':
			for i := 0; i+3 < len(cmd.Params); i += 4 {
				box.Expand(cmd.Params[i], cmd.Params[i+1])
				curX, curY = cmd.Params[i+2], cmd.Params[i+3]
				box.Expand(curX, curY)
			}
		case 'q':
			for i := 0; i+3 < len(cmd.Params); i += 4 {
				box.Expand(curX+cmd.Params[i], curY+cmd.Params[i+1])
				curX += cmd.Params[i+2]
				curY += cmd.Params[i+3]
				box.Expand(curX, curY)
			}
		case 'T':
			for i := 0; i+1 < len(cmd.Params); i += 2 {
				curX, curY = cmd.Params[i], cmd.Params[i+1]
				box.Expand(curX, curY)
			}
		case 't':
			for i := 0; i+1 < len(cmd.Params); i += 2 {
				curX += cmd.Params[i]
				curY += cmd.Params[i+1]
				box.Expand(curX, curY)
			}
		case 'A':
			for i := 0; i+6 < len(cmd.Params); i += 7 {
				curX, curY = cmd.Params[i+5], cmd.Params[i+6]
				box.Expand(curX, curY)
			}
		case 'a':
			for i := 0; i+6 < len(cmd.Params); i += 7 {
				curX += cmd.Params[i+5]
				curY += cmd.Params[i+6]
				box.Expand(curX, curY)
			}
		case 'Z', 'z':
			curX, curY = startX, startY
		}
	}

	return box
}

// GetElementBounds calculates bounds for an SVG element, recursing into children.
func GetElementBounds(elem *svgparser.Element) *BoundingBox {
	box := NewBoundingBox()

	switch elem.Name {
	case "path":
		if d, ok := elem.Attributes["d"]; ok {
			box.Merge(CalculatePathBounds(d))
		}
	case "circle":
		cx := ParseFloat(elem.Attributes["cx"], 0)
		cy := ParseFloat(elem.Attributes["cy"], 0)
		r := ParseFloat(elem.Attributes["r"], 0)
		box.Expand(cx-r, cy-r)
		box.Expand(cx+r, cy+r)
	case "ellipse":
		cx := ParseFloat(elem.Attributes["cx"], 0)
		cy := ParseFloat(elem.Attributes["cy"], 0)
		rx := ParseFloat(elem.Attributes["rx"], 0)
		ry := ParseFloat(elem.Attributes["ry"], 0)
		box.Expand(cx-rx, cy-ry)
		box.Expand(cx+rx, cy+ry)
	case "rect":
		x := ParseFloat(elem.Attributes["x"], 0)
		y := ParseFloat(elem.Attributes["y"], 0)
		w := ParseFloat(elem.Attributes["width"], 0)
		h := ParseFloat(elem.Attributes["height"], 0)
		box.Expand(x, y)
		box.Expand(x+w, y+h)
	case "line":
		x1 := ParseFloat(elem.Attributes["x1"], 0)
		y1 := ParseFloat(elem.Attributes["y1"], 0)
		x2 := ParseFloat(elem.Attributes["x2"], 0)
		y2 := ParseFloat(elem.Attributes["y2"], 0)
		box.Expand(x1, y1)
		box.Expand(x2, y2)
	case "polygon", "polyline":
		if points, ok := elem.Attributes["points"]; ok {
			box.Merge(parsePoints(points))
		}
	}

	for _, child := range elem.Children {
		if child.Name == "mask" || child.Name == "clipPath" || child.Name == "defs" {
			continue
		}
		box.Merge(GetElementBounds(child))
	}

	return box
}

var pointsRe = regexp.MustCompile(`-?[\d]+\.?[\d]*`)

func parsePoints(points string) *BoundingBox {
	box := NewBoundingBox()
	matches := pointsRe.FindAllString(points, -1)
	for i := 0; i+1 < len(matches); i += 2 {
		x, _ := strconv.ParseFloat(matches[i], 64)
		y, _ := strconv.ParseFloat(matches[i+1], 64)
		box.Expand(x, y)
	}
	return box
}
