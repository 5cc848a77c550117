package svg

import "fmt"

// Shape influences how Position resolves an underdetermined box (line
// degenerates to a point in one axis, circle infers a square, point needs
// only one coordinate per axis).
type Shape int

const (
	ShapeRect Shape = iota
	ShapeLine
	ShapeCircle
	ShapePoint
)

// axis holds the partial constraints for one dimension: at most enough
// of {min, max, mid, extent} to pin down a box, per spec §4.4.
type axis struct {
	min, max, mid, extent  float32
	hasMin, hasMax, hasMid bool
	hasExtent              bool
	hasDelta               bool
	delta                  float32
	hasExtentDelta         bool
	extentDelta            float32
}

// Position accumulates up to two axes of partial constraints and resolves
// them to a concrete BoundingBox.
type Position struct {
	Shape Shape
	X, Y  axis
}

func (a *axis) SetMin(v float32)    { a.min, a.hasMin = v, true }
func (a *axis) SetMax(v float32)    { a.max, a.hasMax = v, true }
func (a *axis) SetMid(v float32)    { a.mid, a.hasMid = v, true }
func (a *axis) SetExtent(v float32) { a.extent, a.hasExtent = v, true }
func (a *axis) AddDelta(v float32)  { a.delta += v; a.hasDelta = true }

// AddExtentDelta grows (or shrinks) the resolved extent by v, anchored at
// the axis's low edge - the "dw"/"dh" size-delta shorthand.
func (a *axis) AddExtentDelta(v float32) { a.extentDelta += v; a.hasExtentDelta = true }

// resolve turns the axis's partial constraints into a concrete [min,max]
// pair following the rule table of spec §4.4.
func (a axis) resolve(shape Shape, other *axis) (lo, hi float32, err error) {
	switch {
	case a.hasMin && a.hasMax:
		lo, hi = a.min, a.max
	case a.hasMin && a.hasMid:
		lo, hi = a.min, 2*a.mid-a.min
	case a.hasMax && a.hasMid:
		lo, hi = 2*a.mid-a.max, a.max
	case a.hasMin && a.hasExtent:
		lo, hi = a.min, a.min+a.extent
	case a.hasMax && a.hasExtent:
		lo, hi = a.max-a.extent, a.max
	case a.hasMid && a.hasExtent:
		lo, hi = a.mid-a.extent/2, a.mid+a.extent/2
	case a.hasMin:
		lo, hi = a.min, a.min
	case a.hasMax:
		lo, hi = a.max, a.max
	case a.hasMid:
		lo, hi = a.mid, a.mid
	case shape == ShapeCircle && other != nil && (other.hasMin || other.hasMid || other.hasMax):
		// square inference deferred to caller once the other axis size is known
		lo, hi = 0, 0
	default:
		lo, hi = 0, 0
	}
	if a.hasExtentDelta {
		hi += a.extentDelta
	}
	if a.hasDelta {
		lo += a.delta
		hi += a.delta
	}
	return lo, hi, nil
}

// Resolve builds a concrete BoundingBox from the accumulated constraints.
func (p Position) Resolve() (BoundingBox, error) {
	x1, x2, err := p.X.resolve(p.Shape, &p.Y)
	if err != nil {
		return BoundingBox{}, err
	}
	y1, y2, err := p.Y.resolve(p.Shape, &p.X)
	if err != nil {
		return BoundingBox{}, err
	}

	if p.Shape == ShapeCircle {
		xDet := p.X.hasMin || p.X.hasMax || p.X.hasMid || p.X.hasExtent
		yDet := p.Y.hasMin || p.Y.hasMax || p.Y.hasMid || p.Y.hasExtent
		w := x2 - x1
		h := y2 - y1
		switch {
		case xDet && !yDet:
			cy := p.Y.fallbackCenter()
			y1, y2 = cy-w/2, cy+w/2
		case yDet && !xDet:
			cx := p.X.fallbackCenter()
			x1, x2 = cx-h/2, cx+h/2
		case !xDet && !yDet:
			x1, x2, y1, y2 = 0, 0, 0, 0
		}
	}

	if p.Shape == ShapeLine {
		// A single value in one axis degenerates to a point in that axis
		// (min==max); nothing further to do, resolve() already does this
		// when only one constraint was given.
	}

	if x1 > x2 {
		return BoundingBox{}, fmt.Errorf("position: inconsistent x constraints (%v > %v)", x1, x2)
	}
	if y1 > y2 {
		return BoundingBox{}, fmt.Errorf("position: inconsistent y constraints (%v > %v)", y1, y2)
	}
	return NewBox(x1, y1, x2, y2), nil
}

// fallbackCenter returns the center implied by whatever constraint is
// present, or 0 if none (circle/point centered at origin per spec).
func (a axis) fallbackCenter() float32 {
	switch {
	case a.hasMid:
		return a.mid
	case a.hasMin:
		return a.min
	case a.hasMax:
		return a.max
	default:
		return 0
	}
}

// PositionAttrs is the subset of SvgElement attributes Position reads
// from and writes back to; kept as a plain map so callers can build it
// from whatever attribute representation they hold.
type PositionAttrs = map[string]string
