package svg

import "testing"

func TestRoundCornersSquareHasFourArcs(t *testing.T) {
	pts := [][2]float32{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	d, err := RoundCorners(pts, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := countByte(d, 'A'); got != 4 {
		t.Errorf("expected 4 arcs in a rounded square, got %d in %q", got, d)
	}
	box, ok := PathBBox(d)
	if !ok {
		t.Fatal("expected bbox")
	}
	want := NewBox(0, 0, 10, 10)
	if box != want {
		t.Errorf("rounded square bbox = %v, want %v", box, want)
	}
}

func TestRoundCornersOpenPolylineKeepsEndpoints(t *testing.T) {
	pts := [][2]float32{{0, 0}, {10, 0}, {10, 10}}
	d, err := RoundCorners(pts, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := countByte(d, 'A'); got != 1 {
		t.Errorf("expected 1 arc for one interior vertex, got %d in %q", got, d)
	}
}

func TestRoundCornersZeroRadiusIsPlainPoints(t *testing.T) {
	pts := [][2]float32{{0, 0}, {10, 0}, {10, 10}}
	d, err := RoundCorners(pts, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if countByte(d, 'A') != 0 {
		t.Errorf("zero radius should produce no arcs: %q", d)
	}
}

func countByte(s string, b byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			n++
		}
	}
	return n
}
