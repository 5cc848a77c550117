package svg

import (
	"fmt"
	"math"
	"strings"
)

// RewriteBearing expands the non-standard B/b bearing commands in a path's
// "d" attribute into the plain L/l/M/m commands SVG actually understands.
// A bearing command sets (B, absolute degrees from the +x axis) or adjusts
// (b, relative degrees) a heading; every following relative l/m/h/v, up
// to the next B/b or an M/Z/z (which clears the heading), then travels
// along that heading instead of its literal dx/dy. Applying RewriteBearing twice is
// idempotent: the second pass sees no B/b tokens left to rewrite.
func RewriteBearing(d string) (string, error) {
	if !strings.ContainsAny(d, "Bb") {
		return d, nil
	}
	toks := bearingTokenize(d)
	var out strings.Builder
	heading := 0.0 // degrees, 0 = +x axis (east), clockwise positive
	haveHeading := false

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.cmd {
		case 'B', 'b':
			if len(t.args) != 1 {
				return "", fmt.Errorf("bearing command %c requires exactly one angle argument", t.cmd)
			}
			if t.cmd == 'B' || !haveHeading {
				heading = t.args[0]
			} else {
				heading += t.args[0]
			}
			haveHeading = true
		case 'l', 'm':
			if len(t.args) == 0 || len(t.args)%2 != 0 || !haveHeading {
				out.WriteString(t.raw())
				continue
			}
			out.WriteByte(t.cmd)
			for k := 0; k < len(t.args); k += 2 {
				dx, dy := bearingRotate(heading, t.args[k], t.args[k+1])
				if k > 0 {
					out.WriteByte(' ')
				}
				fmt.Fprintf(&out, "%s,%s", fstrf(dx), fstrf(dy))
			}
		case 'h', 'v':
			if len(t.args) == 0 || !haveHeading {
				out.WriteString(t.raw())
				continue
			}
			out.WriteByte('l')
			for k, dist := range t.args {
				dx, dy := bearingVectorH(heading, dist)
				if t.cmd == 'v' {
					dx, dy = bearingVectorV(heading, dist)
				}
				if k > 0 {
					out.WriteByte(' ')
				}
				fmt.Fprintf(&out, "%s,%s", fstrf(dx), fstrf(dy))
			}
		default:
			out.WriteString(t.raw())
			// M, Z and z clear the heading: later l/m/h/v commands pass
			// through unchanged until the next B/b.
			if t.cmd == 'M' || t.cmd == 'Z' || t.cmd == 'z' {
				haveHeading = false
			}
		}
	}
	return out.String(), nil
}

// bearingVectorH converts a heading (degrees, 0 = +x axis, clockwise
// positive) and distance into the displacement an "h" command travels
// along that heading.
func bearingVectorH(headingDeg, dist float64) (float64, float64) {
	rad := headingDeg * math.Pi / 180
	return dist * math.Cos(rad), dist * math.Sin(rad)
}

// bearingVectorV is bearingVectorH with the axes swapped, matching the
// original's "v" bearing-travel convention.
func bearingVectorV(headingDeg, dist float64) (float64, float64) {
	rad := headingDeg * math.Pi / 180
	return dist * math.Sin(rad), dist * math.Cos(rad)
}

// bearingRotate rotates a relative (dx,dy) vector onto the current
// heading, used by a bearing-context "l" command.
func bearingRotate(headingDeg, dx, dy float64) (float64, float64) {
	rad := headingDeg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return dx*cos + dy*sin, dx*sin + dy*cos
}

func fstrf(f float64) string {
	return fstr(float32(f))
}

type bearingTok struct {
	cmd  byte
	args []float64
	src  string
}

func (t bearingTok) raw() string { return t.src }

// bearingTokenize is a thin reuse of the path lexer's number scanning,
// walking command-by-command so literal (non-bearing) segments can be
// passed through byte-for-byte.
func bearingTokenize(d string) []bearingTok {
	l := &pathLexer{s: d}
	var out []bearingTok
	for {
		start := l.pos
		c, ok := l.peekCommand()
		if !ok {
			l.skipSep()
			break
		}
		l.pos++
		var args []float64
		switch c {
		case 'B', 'b':
			if v, ok := l.nextNumber(); ok {
				args = append(args, v)
			}
		case 'Z', 'z':
		default:
			// every argument up to the next command letter, so implicit
			// repeats of a command stay attached to it
			for {
				v, ok := l.nextNumber()
				if !ok {
					break
				}
				args = append(args, v)
			}
		}
		out = append(out, bearingTok{cmd: c, args: args, src: strings.TrimSpace(d[start:l.pos])})
	}
	return out
}
