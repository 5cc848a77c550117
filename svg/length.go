package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// Length is either an absolute offset or a ratio (percent-of) offset,
// per spec §3's Length type.
type Length struct {
	Value   float32
	IsRatio bool
}

// Absolute builds an absolute Length.
func Absolute(v float32) Length { return Length{Value: v} }

// Ratio builds a ratio (percent-of) Length from a fraction (0.5 == 50%).
func Ratio(v float32) Length { return Length{Value: v, IsRatio: true} }

// adjust returns v+Value for an absolute length, v*Value for a ratio.
func (l Length) adjust(v float32) float32 {
	if l.IsRatio {
		return v * l.Value
	}
	return v + l.Value
}

// adjustAgainst resolves the length against a reference dimension (used
// by TrblLength margins, where percentages resolve against the larger or
// smaller side rather than the length's own "v").
func (l Length) adjustAgainst(ref float32) float32 {
	if l.IsRatio {
		return ref * l.Value
	}
	return l.Value
}

// CalcOffset interpolates Length along the oriented range [start,end].
// Absolute positive counts from start toward end; absolute negative
// counts from end back toward start; ratio is linear (0%=start,
// 100%=end) and is not clamped to [0,1].
func (l Length) CalcOffset(start, end float32) float32 {
	if l.IsRatio {
		return start + (end-start)*l.Value
	}
	if l.Value >= 0 {
		return start + l.Value
	}
	return end + l.Value
}

// ParseLength parses a single length token: a bare number (absolute) or
// a number followed by "%" (ratio, stored as a fraction).
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, fmt.Errorf("empty length")
	}
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 32)
		if err != nil {
			return Length{}, fmt.Errorf("invalid percentage length %q: %w", s, err)
		}
		return Ratio(float32(v) / 100), nil
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", s, err)
	}
	return Absolute(float32(v)), nil
}

func (l Length) String() string {
	if l.IsRatio {
		return fstr(l.Value*100) + "%"
	}
	return fstr(l.Value)
}

// TrblLength is a CSS-style top/right/bottom/left shorthand quadruple.
type TrblLength struct {
	Top, Right, Bottom, Left Length
}

// ParseTrblLength parses 1, 2, 3 or 4 space/comma-separated Length values
// following the CSS shorthand rule: 1 value applies to all sides; 2 are
// (vertical, horizontal); 3 are (top, horizontal, bottom); 4 are
// (top, right, bottom, left).
func ParseTrblLength(s string) (TrblLength, error) {
	fields := splitLengths(s)
	lens := make([]Length, 0, len(fields))
	for _, f := range fields {
		l, err := ParseLength(f)
		if err != nil {
			return TrblLength{}, err
		}
		lens = append(lens, l)
	}
	switch len(lens) {
	case 1:
		return TrblLength{Top: lens[0], Right: lens[0], Bottom: lens[0], Left: lens[0]}, nil
	case 2:
		return TrblLength{Top: lens[0], Bottom: lens[0], Right: lens[1], Left: lens[1]}, nil
	case 3:
		return TrblLength{Top: lens[0], Right: lens[1], Left: lens[1], Bottom: lens[2]}, nil
	case 4:
		return TrblLength{Top: lens[0], Right: lens[1], Bottom: lens[2], Left: lens[3]}, nil
	default:
		return TrblLength{}, fmt.Errorf("margin requires 1-4 values, got %d in %q", len(lens), s)
	}
}

func splitLengths(s string) []string {
	s = strings.ReplaceAll(s, ",", " ")
	return strings.Fields(s)
}

// LocKind names the nine compass points plus the four parameterized
// edge variants of LocSpec.
type LocKind int

const (
	LocTL LocKind = iota
	LocT
	LocTR
	LocR
	LocBR
	LocB
	LocBL
	LocL
	LocC
	LocTopEdge
	LocRightEdge
	LocBottomEdge
	LocLeftEdge
)

// LocSpec is a named location on a bounding box; edge variants carry a
// Length that interpolates along the edge.
type LocSpec struct {
	Kind LocKind
	Edge Length
}

var locNames = map[string]LocKind{
	"tl": LocTL, "t": LocT, "tr": LocTR,
	"r": LocR, "br": LocBR, "b": LocB,
	"bl": LocBL, "l": LocL, "c": LocC,
}

// ParseLocSpec parses a locspec token: one of the nine compass names, or
// "t:"/"r:"/"b:"/"l:" followed by a Length for the parameterized edge form.
func ParseLocSpec(s string) (LocSpec, error) {
	s = strings.TrimSpace(s)
	for prefix, kind := range map[string]LocKind{"t:": LocTopEdge, "r:": LocRightEdge, "b:": LocBottomEdge, "l:": LocLeftEdge} {
		if strings.HasPrefix(s, prefix) {
			l, err := ParseLength(strings.TrimPrefix(s, prefix))
			if err != nil {
				return LocSpec{}, err
			}
			return LocSpec{Kind: kind, Edge: l}, nil
		}
	}
	if kind, ok := locNames[s]; ok {
		return LocSpec{Kind: kind}, nil
	}
	return LocSpec{}, fmt.Errorf("invalid locspec %q", s)
}

// LocSpec evaluates the location on the box. Edge variants interpolate
// via Length.CalcOffset and may escape the box for ratios outside [0,1]
// or negative absolute lengths larger than the edge.
func (b BoundingBox) LocSpec(l LocSpec) (float32, float32) {
	switch l.Kind {
	case LocTL:
		return b.X1, b.Y1
	case LocT:
		return b.CX(), b.Y1
	case LocTR:
		return b.X2, b.Y1
	case LocR:
		return b.X2, b.CY()
	case LocBR:
		return b.X2, b.Y2
	case LocB:
		return b.CX(), b.Y2
	case LocBL:
		return b.X1, b.Y2
	case LocL:
		return b.X1, b.CY()
	case LocC:
		return b.CX(), b.CY()
	case LocTopEdge:
		return l.Edge.CalcOffset(b.X1, b.X2), b.Y1
	case LocRightEdge:
		return b.X2, l.Edge.CalcOffset(b.Y1, b.Y2)
	case LocBottomEdge:
		return l.Edge.CalcOffset(b.X1, b.X2), b.Y2
	case LocLeftEdge:
		return b.X1, l.Edge.CalcOffset(b.Y1, b.Y2)
	}
	return b.CX(), b.CY()
}

// ScalarKind names the nine scalar queries into a BoundingBox.
type ScalarKind int

const (
	ScalarX1 ScalarKind = iota
	ScalarY1
	ScalarX2
	ScalarY2
	ScalarCX
	ScalarCY
	ScalarWidth
	ScalarHeight
	ScalarRadius
)

var scalarNames = map[string]ScalarKind{
	"x1": ScalarX1, "y1": ScalarY1, "x2": ScalarX2, "y2": ScalarY2,
	"cx": ScalarCX, "cy": ScalarCY, "width": ScalarWidth, "height": ScalarHeight,
	"radius": ScalarRadius, "r": ScalarRadius, "rx": ScalarRadius, "ry": ScalarRadius,
	"w": ScalarWidth, "h": ScalarHeight,
	"x": ScalarX1, "y": ScalarY1,
}

// ParseScalarSpec parses a scalarspec token (x1,y1,x2,y2,cx,cy,width,
// height,radius, plus the abbreviations used in relspec grammar: x,y,w,h,
// r,rx,ry).
func ParseScalarSpec(s string) (ScalarKind, error) {
	if k, ok := scalarNames[strings.TrimSpace(s)]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("invalid scalarspec %q", s)
}

// ScalarSpec returns the requested scalar from the box. width/height are
// absolute; radius is max(width,height)/2 (i.e. max(rx,ry) for an
// ellipse-shaped box).
func (b BoundingBox) ScalarSpec(k ScalarKind) float32 {
	switch k {
	case ScalarX1:
		return b.X1
	case ScalarY1:
		return b.Y1
	case ScalarX2:
		return b.X2
	case ScalarY2:
		return b.Y2
	case ScalarCX:
		return b.CX()
	case ScalarCY:
		return b.CY()
	case ScalarWidth:
		return b.Width()
	case ScalarHeight:
		return b.Height()
	case ScalarRadius:
		return max32(b.Width(), b.Height()) / 2
	}
	return 0
}
