// Package svg provides the geometry and element model shared by the
// layout, expression, connector and transform packages: bounding boxes,
// lengths, location/scalar queries and the mutable SvgElement record.
package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// BoundingBox is an axis-aligned box with X1<=X2 and Y1<=Y2 once valid.
// A zero-value BoundingBox is Empty; Empty boxes are the identity element
// for Combine and propagate through Intersect, mirroring the
// Unknown/BBox split of the original implementation's geometry type.
type BoundingBox struct {
	X1, Y1, X2, Y2 float32
	Empty          bool
}

// NewBoundingBox returns the empty bounding box.
func NewBoundingBox() BoundingBox {
	return BoundingBox{Empty: true}
}

// NewBox builds a normalized bounding box from two corners.
func NewBox(x1, y1, x2, y2 float32) BoundingBox {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Expand grows the box (in place) to include the given point.
func (b *BoundingBox) Expand(x, y float32) {
	if b.Empty {
		*b = BoundingBox{X1: x, Y1: y, X2: x, Y2: y}
		return
	}
	if x < b.X1 {
		b.X1 = x
	}
	if x > b.X2 {
		b.X2 = x
	}
	if y < b.Y1 {
		b.Y1 = y
	}
	if y > b.Y2 {
		b.Y2 = y
	}
}

// Width returns x2-x1, or 0 for an empty box.
func (b BoundingBox) Width() float32 {
	if b.Empty {
		return 0
	}
	return b.X2 - b.X1
}

// Height returns y2-y1, or 0 for an empty box.
func (b BoundingBox) Height() float32 {
	if b.Empty {
		return 0
	}
	return b.Y2 - b.Y1
}

// CX returns the horizontal center.
func (b BoundingBox) CX() float32 { return (b.X1 + b.X2) / 2 }

// CY returns the vertical center.
func (b BoundingBox) CY() float32 { return (b.Y1 + b.Y2) / 2 }

// Area returns the box area, 0 for an empty box.
func (b BoundingBox) Area() float32 {
	if b.Empty {
		return 0
	}
	return b.Width() * b.Height()
}

// Combine returns the union of b and other. Combining with an empty box
// returns the other (non-empty) operand unchanged; b.Combine(b) == b.
func (b BoundingBox) Combine(other BoundingBox) BoundingBox {
	if b.Empty {
		return other
	}
	if other.Empty {
		return b
	}
	return NewBox(
		min32(b.X1, other.X1), min32(b.Y1, other.Y1),
		max32(b.X2, other.X2), max32(b.Y2, other.Y2),
	)
}

// Intersect returns the overlapping region of b and other, or false if
// they do not overlap (or either is empty).
func (b BoundingBox) Intersect(other BoundingBox) (BoundingBox, bool) {
	if b.Empty || other.Empty {
		return BoundingBox{}, false
	}
	x1, y1 := max32(b.X1, other.X1), max32(b.Y1, other.Y1)
	x2, y2 := min32(b.X2, other.X2), min32(b.Y2, other.Y2)
	if x1 > x2 || y1 > y2 {
		return BoundingBox{}, false
	}
	return NewBox(x1, y1, x2, y2), true
}

// Translated returns the box shifted by (dx, dy).
func (b BoundingBox) Translated(dx, dy float32) BoundingBox {
	if b.Empty {
		return b
	}
	return NewBox(b.X1+dx, b.Y1+dy, b.X2+dx, b.Y2+dy)
}

// Scale expands or shrinks the box about its center by the given factor
// in each axis.
func (b BoundingBox) Scale(fx, fy float32) BoundingBox {
	if b.Empty {
		return b
	}
	cx, cy := b.CX(), b.CY()
	hw, hh := b.Width()/2*fx, b.Height()/2*fy
	return NewBox(cx-hw, cy-hh, cx+hw, cy+hh)
}

// ExpandAbs grows the box by an absolute amount on every side.
func (b BoundingBox) ExpandAbs(amount float32) BoundingBox {
	if b.Empty {
		return b
	}
	return NewBox(b.X1-amount, b.Y1-amount, b.X2+amount, b.Y2+amount)
}

// Round expands the box outward to integer coordinates.
func (b BoundingBox) Round() BoundingBox {
	if b.Empty {
		return b
	}
	return NewBox(
		float32(math.Floor(float64(b.X1))), float32(math.Floor(float64(b.Y1))),
		float32(math.Ceil(float64(b.X2))), float32(math.Ceil(float64(b.Y2))),
	)
}

// ExpandTrbl grows the box by a CSS-style top/right/bottom/left margin.
// Percentage components resolve against the larger of width/height.
func (b BoundingBox) ExpandTrbl(t TrblLength) BoundingBox {
	if b.Empty {
		return b
	}
	ref := max32(b.Width(), b.Height())
	return NewBox(
		b.X1-t.Left.adjustAgainst(ref),
		b.Y1-t.Top.adjustAgainst(ref),
		b.X2+t.Right.adjustAgainst(ref),
		b.Y2+t.Bottom.adjustAgainst(ref),
	)
}

// ShrinkTrbl shrinks the box by a CSS-style top/right/bottom/left margin.
// Percentage components resolve against the smaller of width/height.
func (b BoundingBox) ShrinkTrbl(t TrblLength) BoundingBox {
	if b.Empty {
		return b
	}
	ref := min32(b.Width(), b.Height())
	nb := NewBox(
		b.X1+t.Left.adjustAgainst(ref),
		b.Y1+t.Top.adjustAgainst(ref),
		b.X2-t.Right.adjustAgainst(ref),
		b.Y2-t.Bottom.adjustAgainst(ref),
	)
	if nb.X1 > nb.X2 {
		nb.X1, nb.X2 = nb.CX(), nb.CX()
	}
	if nb.Y1 > nb.Y2 {
		nb.Y1, nb.Y2 = nb.CY(), nb.CY()
	}
	return nb
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// clampf is kept tiny and local; generic over constraints.Float so one
// clamp serves both float32 and float64 callers. Its one caller is the
// float64 arc-angle computation in path.go.
func clampf[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// fstr formats a float the way generated SVG attribute values are
// rendered: at most 3 decimal places, trailing zeros stripped, "-0"
// normalized to "0". Used everywhere a number becomes an attribute string,
// guaranteeing the event round-trip property stays idempotent on numeric
// attributes.
func fstr(f float32) string {
	if math.Abs(float64(f)) < 1e-9 {
		return "0"
	}
	s := strconv.FormatFloat(float64(f), 'f', 3, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// Fstr exposes fstr for callers outside this package.
func Fstr(f float32) string { return fstr(f) }

func (b BoundingBox) String() string {
	if b.Empty {
		return "BoundingBox(empty)"
	}
	return fmt.Sprintf("BoundingBox(%s,%s,%s,%s)", fstr(b.X1), fstr(b.Y1), fstr(b.X2), fstr(b.Y2))
}

// snap64 rounds f to the nearest 1/65536, stabilizing arc-extrema output
// across platforms (spec: floating-point stability for arcs).
func snap64(f float32) float32 {
	const grid = 65536.0
	return float32(math.Round(float64(f)*grid) / grid)
}
