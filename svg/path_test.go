package svg

import "testing"

func TestPathBBoxRectangle(t *testing.T) {
	box, ok := PathBBox("M0,0 L10,0 L10,10 L0,10 Z")
	if !ok {
		t.Fatal("expected bbox")
	}
	want := NewBox(0, 0, 10, 10)
	if box != want {
		t.Errorf("PathBBox = %v, want %v", box, want)
	}
}

func TestPathBBoxConcatenatedNumbers(t *testing.T) {
	// "0.6.5" must tokenize as two numbers: 0.6 and 0.5.
	segs := ParsePathData("M0.6.5")
	if len(segs) != 1 || len(segs[0].Params) != 2 {
		t.Fatalf("ParsePathData(M0.6.5) = %+v", segs)
	}
	if segs[0].Params[0] != 0.6 || segs[0].Params[1] != 0.5 {
		t.Errorf("Params = %v, want [0.6 0.5]", segs[0].Params)
	}
}

func TestPathBBoxImplicitLineAfterMove(t *testing.T) {
	segs := ParsePathData("M0,0 10,10 20,0")
	if len(segs) != 2 {
		t.Fatalf("expected M followed by implicit L, got %+v", segs)
	}
	if segs[1].Cmd != 'L' {
		t.Errorf("expected implicit L, got %c", segs[1].Cmd)
	}
}

func TestPathBBoxQuadraticCurve(t *testing.T) {
	// A single quadratic bulging above its chord; peak y should be
	// captured even though both endpoints sit at y=0.
	box, ok := PathBBox("M0,0 Q50,100 100,0")
	if !ok {
		t.Fatal("expected bbox")
	}
	if box.Y1 != 0 {
		t.Errorf("Y1 = %v, want 0", box.Y1)
	}
	if box.Y2 <= 0 || box.Y2 > 100 {
		t.Errorf("Y2 = %v, want in (0,100]", box.Y2)
	}
}

func TestPathBBoxArcQuarterCircle(t *testing.T) {
	// Quarter circle of radius 10 centered at origin, from (10,0) to
	// (0,10) sweeping through (cos45,sin45)*10 - bbox should be exactly
	// the quarter [0,10]x[0,10].
	box, ok := PathBBox("M10,0 A10,10 0 0,1 0,10")
	if !ok {
		t.Fatal("expected bbox")
	}
	if box.X1 < -0.01 || box.X1 > 0.01 {
		t.Errorf("X1 = %v, want ~0", box.X1)
	}
	if box.X2 < 9.9 || box.X2 > 10.1 {
		t.Errorf("X2 = %v, want ~10", box.X2)
	}
}
