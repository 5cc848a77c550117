package transform

import "testing"

func TestPCG32Deterministic(t *testing.T) {
	a := newPCG32(42, 1)
	b := newPCG32(42, 1)
	for i := 0; i < 10; i++ {
		if a.next32() != b.next32() {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestPCG32DifferentSeedsDiverge(t *testing.T) {
	a := newPCG32(1, 1)
	b := newPCG32(2, 1)
	same := true
	for i := 0; i < 5; i++ {
		if a.next32() != b.next32() {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestPCG32IntRangeStaysInBounds(t *testing.T) {
	g := newPCG32(7, 3)
	for i := 0; i < 200; i++ {
		v := g.intRange(3, 9)
		if v < 3 || v > 9 {
			t.Fatalf("intRange out of bounds: %d", v)
		}
	}
}

func TestPCG32Float32InUnitRange(t *testing.T) {
	g := newPCG32(1, 1)
	for i := 0; i < 200; i++ {
		v := g.float32()
		if v < 0 || v >= 1 {
			t.Fatalf("float32 out of [0,1): %v", v)
		}
	}
}
