package svg

import (
	"math"
	"strconv"
	"strings"
)

// pathToken is one number or flag scanned out of a path "d" string.
type pathToken struct {
	val  float64
	flag bool // true if this token was scanned in flag position (single 0/1 digit)
}

// pathLexer scans the SVG path number grammar: numbers may omit a
// leading zero (.5), carry an exponent (1e3), and run together without
// whitespace as long as they stay unambiguous (0.6.5 -> 0.6, 0.5).
type pathLexer struct {
	s   string
	pos int
}

func (l *pathLexer) skipSep() {
	for l.pos < len(l.s) {
		c := l.s[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',' {
			l.pos++
			continue
		}
		break
	}
}

func (l *pathLexer) peekCommand() (byte, bool) {
	l.skipSep()
	if l.pos >= len(l.s) {
		return 0, false
	}
	c := l.s[l.pos]
	if strings.IndexByte("MmLlHhVvCcSsQqTtAaZzBb", c) >= 0 {
		return c, true
	}
	return 0, false
}

// nextFlag scans a single 0/1 flag digit (arc large-arc/sweep flags need
// no surrounding whitespace).
func (l *pathLexer) nextFlag() (float64, bool) {
	l.skipSep()
	if l.pos >= len(l.s) {
		return 0, false
	}
	c := l.s[l.pos]
	if c == '0' || c == '1' {
		l.pos++
		return float64(c - '0'), true
	}
	return 0, false
}

// nextNumber scans one number token per the concatenation rule: an
// optional sign, digits, an optional single '.', more digits, an
// optional exponent. A second '.' starts a new number.
func (l *pathLexer) nextNumber() (float64, bool) {
	l.skipSep()
	start := l.pos
	i := l.pos
	if i < len(l.s) && (l.s[i] == '+' || l.s[i] == '-') {
		i++
	}
	digitsBefore := 0
	for i < len(l.s) && l.s[i] >= '0' && l.s[i] <= '9' {
		i++
		digitsBefore++
	}
	hasDot := false
	digitsAfter := 0
	if i < len(l.s) && l.s[i] == '.' {
		hasDot = true
		i++
		for i < len(l.s) && l.s[i] >= '0' && l.s[i] <= '9' {
			i++
			digitsAfter++
		}
	}
	if digitsBefore == 0 && digitsAfter == 0 {
		return 0, false
	}
	if i < len(l.s) && (l.s[i] == 'e' || l.s[i] == 'E') {
		j := i + 1
		if j < len(l.s) && (l.s[j] == '+' || l.s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(l.s) && l.s[j] >= '0' && l.s[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	_ = hasDot
	numStr := l.s[start:i]
	v, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return 0, false
	}
	l.pos = i
	return v, true
}

// pathSeg is one parsed path command with its raw numeric/flag arguments.
type pathSeg struct {
	Cmd    byte
	Params []float64
}

// ParsePathData tokenizes a full "d" attribute into commands, applying
// implicit-L/l continuation after an initial M/m and correctly scanning
// arc flags without requiring surrounding whitespace.
func ParsePathData(d string) []pathSeg {
	l := &pathLexer{s: d}
	var segs []pathSeg
	var cur byte
	for {
		if c, ok := l.peekCommand(); ok {
			cur = c
			l.pos++
			// After consuming the letter, fall through to scan its args.
			args := scanArgs(l, cur)
			segs = append(segs, pathSeg{Cmd: cur, Params: args})
			continue
		}
		// No command letter: either EOF, or an implicit repeat of the
		// previous command (implicit L/l after M/m, or bare repeats for
		// any other command per the SVG grammar).
		l.skipSep()
		if l.pos >= len(l.s) {
			break
		}
		implicit := cur
		if cur == 'M' {
			implicit = 'L'
		} else if cur == 'm' {
			implicit = 'l'
		}
		if implicit == 0 {
			break
		}
		args := scanArgs(l, implicit)
		if len(args) == 0 {
			break
		}
		segs = append(segs, pathSeg{Cmd: implicit, Params: args})
	}
	return segs
}

// argCounts gives the parameter-group size for non-flag commands; arcs
// are handled specially because of the two leading flag arguments.
var argCounts = map[byte]int{
	'M': 2, 'm': 2, 'L': 2, 'l': 2, 'H': 1, 'h': 1, 'V': 1, 'v': 1,
	'C': 6, 'c': 6, 'S': 4, 's': 4, 'Q': 4, 'q': 4, 'T': 2, 't': 2,
	'Z': 0, 'z': 0, 'B': 1, 'b': 1,
}

func scanArgs(l *pathLexer, cmd byte) []float64 {
	if cmd == 'Z' || cmd == 'z' {
		return nil
	}
	if cmd == 'A' || cmd == 'a' {
		var out []float64
		for {
			save := l.pos
			rx, ok1 := l.nextNumber()
			ry, ok2 := l.nextNumber()
			rot, ok3 := l.nextNumber()
			large, ok4 := l.nextFlag()
			sweep, ok5 := l.nextFlag()
			x, ok6 := l.nextNumber()
			y, ok7 := l.nextNumber()
			if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7) {
				l.pos = save
				break
			}
			out = append(out, rx, ry, rot, large, sweep, x, y)
			if c, ok := l.peekCommand(); ok {
				_ = c
				break
			}
		}
		return out
	}
	n := argCounts[cmd]
	if n == 0 {
		return nil
	}
	var out []float64
	for {
		save := l.pos
		group := make([]float64, 0, n)
		ok := true
		for k := 0; k < n; k++ {
			v, got := l.nextNumber()
			if !got {
				ok = false
				break
			}
			group = append(group, v)
		}
		if !ok {
			l.pos = save
			break
		}
		out = append(out, group...)
		if cmd == 'M' || cmd == 'm' {
			// further pairs after a move are implicit L/l segments
			break
		}
		if c, ok := l.peekCommand(); ok {
			_ = c
			break
		}
	}
	return out
}

// PathBBox computes the exact bounding box of a path's "d" attribute,
// including Bezier and elliptical-arc extrema (spec §4.3).
func PathBBox(d string) (BoundingBox, bool) {
	segs := ParsePathData(d)
	if len(segs) == 0 {
		return BoundingBox{}, false
	}
	box := NewBoundingBox()
	var cx, cy, startX, startY float64
	var prevCubicCtrl, prevQuadCtrl *[2]float64
	var prevCmd byte

	expand := func(x, y float64) { box.Expand(float32(x), float32(y)) }

	for _, seg := range segs {
		switch seg.Cmd {
		case 'M':
			for i := 0; i+1 < len(seg.Params); i += 2 {
				cx, cy = seg.Params[i], seg.Params[i+1]
				if i == 0 {
					startX, startY = cx, cy
				}
				expand(cx, cy)
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'm':
			for i := 0; i+1 < len(seg.Params); i += 2 {
				cx += seg.Params[i]
				cy += seg.Params[i+1]
				if i == 0 {
					startX, startY = cx, cy
				}
				expand(cx, cy)
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'L':
			for i := 0; i+1 < len(seg.Params); i += 2 {
				cx, cy = seg.Params[i], seg.Params[i+1]
				expand(cx, cy)
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'l':
			for i := 0; i+1 < len(seg.Params); i += 2 {
				cx += seg.Params[i]
				cy += seg.Params[i+1]
				expand(cx, cy)
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'H':
			for _, x := range seg.Params {
				cx = x
				expand(cx, cy)
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'h':
			for _, dx := range seg.Params {
				cx += dx
				expand(cx, cy)
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'V':
			for _, y := range seg.Params {
				cy = y
				expand(cx, cy)
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'v':
			for _, dy := range seg.Params {
				cy += dy
				expand(cx, cy)
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'C', 'c':
			for i := 0; i+5 < len(seg.Params); i += 6 {
				x1, y1, x2, y2, x3, y3 := seg.Params[i], seg.Params[i+1], seg.Params[i+2], seg.Params[i+3], seg.Params[i+4], seg.Params[i+5]
				if seg.Cmd == 'c' {
					x1, y1, x2, y2, x3, y3 = cx+x1, cy+y1, cx+x2, cy+y2, cx+x3, cy+y3
				}
				cubicExtrema(cx, cy, x1, y1, x2, y2, x3, y3, expand)
				cx, cy = x3, y3
				ctrl := [2]float64{x2, y2}
				prevCubicCtrl = &ctrl
				prevQuadCtrl = nil
			}
		case 'S', 's':
			for i := 0; i+3 < len(seg.Params); i += 4 {
				x2, y2, x3, y3 := seg.Params[i], seg.Params[i+1], seg.Params[i+2], seg.Params[i+3]
				if seg.Cmd == 's' {
					x2, y2, x3, y3 = cx+x2, cy+y2, cx+x3, cy+y3
				}
				x1, y1 := cx, cy
				if prevCubicCtrl != nil && (prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's') {
					x1, y1 = 2*cx-prevCubicCtrl[0], 2*cy-prevCubicCtrl[1]
				}
				cubicExtrema(cx, cy, x1, y1, x2, y2, x3, y3, expand)
				cx, cy = x3, y3
				ctrl := [2]float64{x2, y2}
				prevCubicCtrl = &ctrl
				prevQuadCtrl = nil
			}
		case 'Q', 'q':
			for i := 0; i+3 < len(seg.Params); i += 4 {
				x1, y1, x2, y2 := seg.Params[i], seg.Params[i+1], seg.Params[i+2], seg.Params[i+3]
				if seg.Cmd == 'q' {
					x1, y1, x2, y2 = cx+x1, cy+y1, cx+x2, cy+y2
				}
				quadExtrema(cx, cy, x1, y1, x2, y2, expand)
				cx, cy = x2, y2
				ctrl := [2]float64{x1, y1}
				prevQuadCtrl = &ctrl
				prevCubicCtrl = nil
			}
		case 'T', 't':
			for i := 0; i+1 < len(seg.Params); i += 2 {
				x2, y2 := seg.Params[i], seg.Params[i+1]
				if seg.Cmd == 't' {
					x2, y2 = cx+x2, cy+y2
				}
				x1, y1 := cx, cy
				if prevQuadCtrl != nil && (prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't') {
					x1, y1 = 2*cx-prevQuadCtrl[0], 2*cy-prevQuadCtrl[1]
				}
				quadExtrema(cx, cy, x1, y1, x2, y2, expand)
				cx, cy = x2, y2
				ctrl := [2]float64{x1, y1}
				prevQuadCtrl = &ctrl
				prevCubicCtrl = nil
			}
		case 'A', 'a':
			for i := 0; i+6 < len(seg.Params); i += 7 {
				rx, ry, rot, large, sweep, x, y := seg.Params[i], seg.Params[i+1], seg.Params[i+2], seg.Params[i+3], seg.Params[i+4], seg.Params[i+5], seg.Params[i+6]
				if seg.Cmd == 'a' {
					x, y = cx+x, cy+y
				}
				arcExtrema(cx, cy, rx, ry, rot, large != 0, sweep != 0, x, y, expand)
				cx, cy = x, y
			}
			prevCubicCtrl, prevQuadCtrl = nil, nil
		case 'Z', 'z':
			cx, cy = startX, startY
			expand(cx, cy)
			prevCubicCtrl, prevQuadCtrl = nil, nil
		}
		prevCmd = seg.Cmd
	}
	if box.Empty {
		return BoundingBox{}, false
	}
	box = NewBox(snap64(box.X1), snap64(box.Y1), snap64(box.X2), snap64(box.Y2))
	return box, true
}

func cubicBezier(p0, p1, p2, p3, t float64) float64 {
	u := 1 - t
	return u*u*u*p0 + 3*u*u*t*p1 + 3*u*t*t*p2 + t*t*t*p3
}

// cubicExtrema samples the endpoint plus the (up to two) roots of
// B'(t)=0 per axis, for t in (0,1).
func cubicExtrema(x0, y0, x1, y1, x2, y2, x3, y3 float64, expand func(x, y float64)) {
	expand(x3, y3)
	for _, root := range cubicDerivRoots(x0, x1, x2, x3) {
		expand(cubicBezier(x0, x1, x2, x3, root), cubicBezier(y0, y1, y2, y3, root))
	}
	for _, root := range cubicDerivRoots(y0, y1, y2, y3) {
		expand(cubicBezier(x0, x1, x2, x3, root), cubicBezier(y0, y1, y2, y3, root))
	}
}

// cubicDerivRoots solves a*t^2+b*t+c=0 where [a,b,c] come from
// differentiating the cubic Bezier component, returning roots in (0,1).
func cubicDerivRoots(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0
	var roots []float64
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) > 1e-12 {
			t := -c / b
			if t > 0 && t < 1 {
				roots = append(roots, t)
			}
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return roots
	}
	sq := math.Sqrt(disc)
	for _, t := range []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	return roots
}

func quadBezier(p0, p1, p2, t float64) float64 {
	u := 1 - t
	return u*u*p0 + 2*u*t*p1 + t*t*p2
}

// quadExtrema samples the endpoint plus the single root of B'(t)=0 per axis.
func quadExtrema(x0, y0, x1, y1, x2, y2 float64, expand func(x, y float64)) {
	expand(x2, y2)
	if t, ok := quadDerivRoot(x0, x1, x2); ok {
		expand(quadBezier(x0, x1, x2, t), quadBezier(y0, y1, y2, t))
	}
	if t, ok := quadDerivRoot(y0, y1, y2); ok {
		expand(quadBezier(x0, x1, x2, t), quadBezier(y0, y1, y2, t))
	}
}

func quadDerivRoot(p0, p1, p2 float64) (float64, bool) {
	denom := p0 - 2*p1 + p2
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	t := (p0 - p1) / denom
	return t, t > 0 && t < 1
}

// arcExtrema converts the endpoint-parameterized arc to center form,
// scaling out-of-range radii per the SVG spec first, then samples the
// endpoints plus the cardinal-angle (or rotated-derivative) extrema that
// fall within the swept angle range.
func arcExtrema(x0, y0, rx, ry, rotDeg float64, large, sweep bool, x1, y1 float64, expand func(x, y float64)) {
	expand(x1, y1)
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return
	}
	phi := rotDeg * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx2, dy2 := (x0-x1)/2, (y0-y1)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		scale := math.Sqrt(lambda)
		rx *= scale
		ry *= scale
	}

	sign := 1.0
	if large == sweep {
		sign = -1.0
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	co := 0.0
	if den > 1e-12 && num > 0 {
		co = sign * math.Sqrt(num/den)
	}
	cxp := co * (rx * y1p / ry)
	cyp := co * (-ry * x1p / rx)

	cx := cosPhi*cxp - sinPhi*cyp + (x0+x1)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y0+y1)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lenProd := math.Hypot(ux, uy) * math.Hypot(vx, vy)
		a := math.Acos(clampf(dot/lenProd, -1, 1))
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}
	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dTheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	inSweep := func(theta float64) bool {
		d := theta - theta1
		for d < -math.Pi {
			d += 2 * math.Pi
		}
		for d > math.Pi {
			d -= 2 * math.Pi
		}
		if dTheta >= 0 {
			return d >= 0 && d <= dTheta
		}
		return d <= 0 && d >= dTheta
	}

	pointAt := func(theta float64) (float64, float64) {
		ex := rx * math.Cos(theta)
		ey := ry * math.Sin(theta)
		return cx + cosPhi*ex - sinPhi*ey, cy + sinPhi*ex + cosPhi*ey
	}

	if phi == 0 {
		for _, theta := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
			if inSweep(theta) {
				px, py := pointAt(theta)
				expand(px, py)
			}
		}
		return
	}

	// Rotated ellipse: dx/dtheta=0 and dy/dtheta=0 occur at
	// theta = atan2(-ry*sin(phi), rx*cos(phi)) (+ pi) for x, and the
	// analogous expression with cos/sin swapped for y.
	tx := math.Atan2(-ry*sinPhi, rx*cosPhi)
	ty := math.Atan2(ry*cosPhi, rx*sinPhi)
	for _, theta := range []float64{tx, tx + math.Pi, ty, ty + math.Pi} {
		if inSweep(theta) {
			px, py := pointAt(theta)
			expand(px, py)
		}
	}
}
