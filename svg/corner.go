package svg

import (
	"fmt"
	"math"
	"strings"
)

// RoundCorners converts a polyline/polygon point list into a path "d"
// string with each interior vertex replaced by a tangent-circle arc of
// the given radius, per the corner-radius attribute. closed selects
// polygon (path returns to the first point) vs polyline (open) endpoint
// handling. Collinear and duplicate consecutive points are filtered
// before rounding so degenerate segments don't produce zero-length arcs.
func RoundCorners(pts [][2]float32, radius float32, closed bool) (string, error) {
	pts = dedupePoints(pts)
	pts = dropCollinear(pts, closed)
	if len(pts) < 2 {
		return "", fmt.Errorf("corner rounding needs at least 2 distinct points")
	}
	if radius <= 0 || len(pts) < 3 {
		return FormatPoints(pts), nil
	}

	n := len(pts)
	// Vertices eligible for rounding: all of them when closed, all but
	// the two endpoints when open.
	rounded := make([]int, 0, n)
	if closed {
		for i := 0; i < n; i++ {
			rounded = append(rounded, i)
		}
	} else {
		for i := 1; i < n-1; i++ {
			rounded = append(rounded, i)
		}
	}

	var b strings.Builder
	if closed {
		v := rounded[len(rounded)-1]
		approach := pointToward(pts[v], pts[(v+1)%n], clampCornerRadius(radius, pts[(v-1+n)%n], pts[v], pts[(v+1)%n]))
		fmt.Fprintf(&b, "M%s,%s", fstr(approach.x()), fstr(approach.y()))
	} else {
		fmt.Fprintf(&b, "M%s,%s", fstr(pts[0][0]), fstr(pts[0][1]))
	}

	for _, i := range rounded {
		prev := pts[(i-1+n)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		r := clampCornerRadius(radius, prev, cur, next)
		p1 := pointToward(cur, prev, r)
		p2 := pointToward(cur, next, r)
		sweep := cornerSweep(prev, cur, next)
		fmt.Fprintf(&b, " L%s,%s", fstr(p1.x()), fstr(p1.y()))
		fmt.Fprintf(&b, " A%s,%s 0 0,%d %s,%s", fstr(r), fstr(r), sweep, fstr(p2.x()), fstr(p2.y()))
	}

	if closed {
		b.WriteString(" Z")
	} else {
		fmt.Fprintf(&b, " L%s,%s", fstr(pts[n-1][0]), fstr(pts[n-1][1]))
	}
	return b.String(), nil
}

type pt [2]float32

func (p pt) x() float32 { return p[0] }
func (p pt) y() float32 { return p[1] }

func dedupePoints(pts [][2]float32) [][2]float32 {
	var out [][2]float32
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func dropCollinear(pts [][2]float32, closed bool) [][2]float32 {
	if len(pts) < 3 {
		return pts
	}
	var out [][2]float32
	n := len(pts)
	for i := 0; i < n; i++ {
		if !closed && (i == 0 || i == n-1) {
			out = append(out, pts[i])
			continue
		}
		prev := pts[(i-1+n)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		if !collinear(prev, cur, next) {
			out = append(out, cur)
		}
	}
	return out
}

func collinear(a, b, c [2]float32) bool {
	cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	return math.Abs(float64(cross)) < 1e-6
}

// clampCornerRadius prevents the rounding distance from exceeding half
// either adjacent edge's length, which would overlap the neighboring arc.
func clampCornerRadius(r float32, prev, cur, next [2]float32) float32 {
	d1 := dist(prev, cur)
	d2 := dist(cur, next)
	maxR := min32(d1, d2) / 2
	return min32(r, maxR)
}

func dist(a, b [2]float32) float32 {
	return float32(math.Hypot(float64(b[0]-a[0]), float64(b[1]-a[1])))
}

// pointToward returns the point on segment cur->toward at distance d from cur.
func pointToward(cur, toward [2]float32, d float32) pt {
	length := dist(cur, toward)
	if length == 0 {
		return pt(cur)
	}
	t := d / length
	return pt{cur[0] + (toward[0]-cur[0])*t, cur[1] + (toward[1]-cur[1])*t}
}

// cornerSweep picks the arc's sweep flag (1 = clockwise) from the sign of
// the turn at cur.
func cornerSweep(prev, cur, next [2]float32) int {
	cross := (cur[0]-prev[0])*(next[1]-cur[1]) - (cur[1]-prev[1])*(next[0]-cur[0])
	if cross < 0 {
		return 0
	}
	return 1
}
