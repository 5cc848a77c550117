// Package connector draws the line between two element edges: a direct
// line, one of the fixed elbow shapes (corner/zigzag/u-turn), or an
// orthogonal elbow routed around intervening geometry via Dijkstra.
package connector

import (
	"fmt"

	"github.com/codedstructure/svgdx/svg"
)

// Shape names a connector's routing strategy.
type Shape string

const (
	ShapeStraight Shape = "straight"
	ShapeCorner   Shape = "corner" // L-shaped: one bend
	ShapeZigzag   Shape = "zigzag" // Z-shaped: two bends, midpoint offset
	ShapeUTurn    Shape = "u"      // U-shaped: out, across, back
	ShapeElbow    Shape = "elbow"  // routed around obstacles
)

// defaultCornerOffset is a ratio (50% of the run) used by corner/zigzag
// shapes; defaultUOffset is an absolute offset used by the u-turn shape,
// per spec's stated defaults.
var (
	defaultCornerOffset = svg.Ratio(0.5)
	defaultUOffset      = svg.Absolute(3)
)

// Route computes the path "d" string connecting start to end, excluding
// the elbow-router shape (see RouteElbow).
func Route(shape Shape, start, end [2]float32, offset *svg.Length) (string, error) {
	switch shape {
	case ShapeStraight, "":
		return fmt.Sprintf("M%s,%s L%s,%s", svg.Fstr(start[0]), svg.Fstr(start[1]), svg.Fstr(end[0]), svg.Fstr(end[1])), nil
	case ShapeCorner:
		return cornerPath(start, end, resolveOffset(offset, defaultCornerOffset)), nil
	case ShapeZigzag:
		return zigzagPath(start, end, resolveOffset(offset, defaultCornerOffset)), nil
	case ShapeUTurn:
		return uTurnPath(start, end, resolveOffset(offset, defaultUOffset)), nil
	}
	return "", fmt.Errorf("connector: unknown shape %q (use RouteElbow for elbow routing)", shape)
}

func resolveOffset(offset *svg.Length, def svg.Length) svg.Length {
	if offset != nil {
		return *offset
	}
	return def
}

// cornerPath bends exactly once: horizontally from start to the
// vertical line through end, then down/up to end. offset shifts the
// bend point along the horizontal run instead of always bending at
// end.x.
func cornerPath(start, end [2]float32, offset svg.Length) string {
	bendX := offset.CalcOffset(start[0], end[0])
	return fmt.Sprintf("M%s,%s L%s,%s L%s,%s",
		svg.Fstr(start[0]), svg.Fstr(start[1]),
		svg.Fstr(bendX), svg.Fstr(start[1]),
		svg.Fstr(bendX), svg.Fstr(end[1]),
	) + fmt.Sprintf(" L%s,%s", svg.Fstr(end[0]), svg.Fstr(end[1]))
}

// zigzagPath bends twice, at the run's midpoint by default, producing a
// Z-shaped connector.
func zigzagPath(start, end [2]float32, offset svg.Length) string {
	midX := offset.CalcOffset(start[0], end[0])
	return fmt.Sprintf("M%s,%s L%s,%s L%s,%s L%s,%s",
		svg.Fstr(start[0]), svg.Fstr(start[1]),
		svg.Fstr(midX), svg.Fstr(start[1]),
		svg.Fstr(midX), svg.Fstr(end[1]),
		svg.Fstr(end[0]), svg.Fstr(end[1]),
	)
}

// uTurnPath leaves start, travels out by an absolute offset, crosses,
// and returns to end - used when start and end face the same direction.
func uTurnPath(start, end [2]float32, offset svg.Length) string {
	out := offset.Value
	midY1 := start[1] + out
	midY2 := end[1] + out
	return fmt.Sprintf("M%s,%s L%s,%s L%s,%s L%s,%s",
		svg.Fstr(start[0]), svg.Fstr(start[1]),
		svg.Fstr(start[0]), svg.Fstr(midY1),
		svg.Fstr(end[0]), svg.Fstr(midY2),
		svg.Fstr(end[0]), svg.Fstr(end[1]),
	)
}
