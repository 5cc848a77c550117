package svg

import (
	"math"
	"strings"
	"testing"
)

func TestRewriteBearingNoOp(t *testing.T) {
	d := "M0,0 L10,10"
	out, err := RewriteBearing(d)
	if err != nil {
		t.Fatal(err)
	}
	if out != d {
		t.Errorf("RewriteBearing(no bearing) = %q, want unchanged %q", out, d)
	}
}

func TestRewriteBearingEast(t *testing.T) {
	// Heading 0 (+x axis/east) for an "h" travel should move +x by 10.
	out, err := RewriteBearing("M0,0 B0 h10")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "l10,0") {
		t.Errorf("RewriteBearing = %q, want a l10,0 segment", out)
	}
}

func TestRewriteBearingNinety(t *testing.T) {
	// Heading 90 for an "h" travel should move +y (downward) by 10.
	out, err := RewriteBearing("M0,0 B90 h10")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "l0,10") {
		t.Errorf("RewriteBearing = %q, want a l0,10 segment", out)
	}
	box, ok := PathBBox(out)
	if !ok {
		t.Fatal("expected bbox")
	}
	if math.Abs(float64(box.Y2-10)) > 0.01 {
		t.Errorf("heading 90 should move down by 10, got box %v", box)
	}
}

func TestRewriteBearingRotatesLVector(t *testing.T) {
	// A bearing-context "l" rotates its relative vector onto the
	// heading rather than projecting it to a scalar distance.
	out, err := RewriteBearing("M0,0 B45 l10,0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "l7.071,7.071") {
		t.Errorf("RewriteBearing = %q, want a l7.071,7.071 segment", out)
	}
}

func TestRewriteBearingRotatesMVector(t *testing.T) {
	// A bearing-context relative "m" rotates the same as "l".
	out, err := RewriteBearing("M0,0 B45 m10,0")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "m7.071,7.071") {
		t.Errorf("RewriteBearing = %q, want a m7.071,7.071 segment", out)
	}
}

func TestRewriteBearingIdempotent(t *testing.T) {
	d := "M0,0 B45 l10,10"
	once, err := RewriteBearing(d)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := RewriteBearing(once)
	if err != nil {
		t.Fatal(err)
	}
	if once != twice {
		t.Errorf("RewriteBearing not idempotent: %q vs %q", once, twice)
	}
}
