package svg

import "testing"

func TestPositionMinExtent(t *testing.T) {
	var p Position
	p.X.SetMin(10)
	p.X.SetExtent(30)
	p.Y.SetMin(5)
	p.Y.SetExtent(20)
	box, err := p.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	want := NewBox(10, 5, 40, 25)
	if box != want {
		t.Errorf("Resolve() = %v, want %v", box, want)
	}
}

func TestPositionMidExtent(t *testing.T) {
	var p Position
	p.X.SetMid(50)
	p.X.SetExtent(10)
	p.Y.SetMid(50)
	p.Y.SetExtent(10)
	box, err := p.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	want := NewBox(45, 45, 55, 55)
	if box != want {
		t.Errorf("Resolve() = %v, want %v", box, want)
	}
}

func TestPositionInconsistentErrors(t *testing.T) {
	var p Position
	p.X.SetMin(10)
	p.X.SetMax(5)
	if _, err := p.Resolve(); err == nil {
		t.Error("expected error for min > max")
	}
}

func TestPositionCircleSquareInference(t *testing.T) {
	var p Position
	p.Shape = ShapeCircle
	p.X.SetMin(0)
	p.X.SetExtent(10)
	box, err := p.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if box.Width() != 10 || box.Height() != 10 {
		t.Errorf("circle inference = %v, want 10x10", box)
	}
}
