package svg

import "testing"

func TestBoundingBoxCombine(t *testing.T) {
	b := NewBox(0, 0, 10, 10)
	if got := b.Combine(b); got != b {
		t.Errorf("b.Combine(b) = %v, want %v", got, b)
	}
	c := NewBox(20, 20, 30, 30)
	union := b.Combine(c)
	want := NewBox(0, 0, 30, 30)
	if union != want {
		t.Errorf("Combine = %v, want %v", union, want)
	}
}

func TestBoundingBoxCombineEmpty(t *testing.T) {
	empty := NewBoundingBox()
	b := NewBox(1, 2, 3, 4)
	if got := empty.Combine(b); got != b {
		t.Errorf("empty.Combine(b) = %v, want %v", got, b)
	}
	if got := b.Combine(empty); got != b {
		t.Errorf("b.Combine(empty) = %v, want %v", got, b)
	}
}

func TestBoundingBoxIntersect(t *testing.T) {
	b := NewBox(0, 0, 10, 10)
	c := NewBox(5, 5, 20, 20)
	got, ok := b.Intersect(c)
	if !ok {
		t.Fatal("expected intersection")
	}
	want := NewBox(5, 5, 10, 10)
	if got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}
	if _, ok := b.Intersect(NewBox(100, 100, 200, 200)); ok {
		t.Error("expected no intersection")
	}
}

func TestBoundingBoxCenterAndSize(t *testing.T) {
	b := NewBox(0, 0, 10, 20)
	if b.Width() != 10 || b.Height() != 20 {
		t.Errorf("Width/Height = %v/%v, want 10/20", b.Width(), b.Height())
	}
	if b.CX() != 5 || b.CY() != 10 {
		t.Errorf("CX/CY = %v/%v, want 5/10", b.CX(), b.CY())
	}
}

func TestFstrFormatting(t *testing.T) {
	cases := map[float32]string{
		0:       "0",
		-0.0001: "0",
		1:       "1",
		1.5:     "1.5",
		1.2345:  "1.235",
		-1.2345: "-1.235",
	}
	for in, want := range cases {
		if got := fstr(in); got != want {
			t.Errorf("fstr(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestExpandTrblPercentOfLargerSide(t *testing.T) {
	b := NewBox(0, 0, 100, 50)
	trbl := TrblLength{
		Top:    Ratio(0.1),
		Right:  Ratio(0.1),
		Bottom: Ratio(0.1),
		Left:   Ratio(0.1),
	}
	got := b.ExpandTrbl(trbl)
	// 10% of the larger side (100) == 10 on every edge.
	want := NewBox(-10, -10, 110, 60)
	if got != want {
		t.Errorf("ExpandTrbl = %v, want %v", got, want)
	}
}
