package svg

import "testing"

func TestElementSetPreservesSlot(t *testing.T) {
	e := NewElement("rect", []attrEntry{{Key: "x", Value: "1"}, {Key: "y", Value: "2"}})
	e.Set("x", "99")
	if len(e.Attrs()) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(e.Attrs()))
	}
	if e.Attrs()[0].Key != "x" || e.Attrs()[0].Value != "99" {
		t.Errorf("Set did not update in place: %+v", e.Attrs())
	}
}

func TestElementRemoveReindexes(t *testing.T) {
	e := NewElement("rect", []attrEntry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "c", Value: "3"}})
	e.Remove("b")
	if v, ok := e.Get("c"); !ok || v != "3" {
		t.Errorf("Get(c) after remove = %v, %v", v, ok)
	}
	if _, ok := e.Get("b"); ok {
		t.Error("expected b removed")
	}
}

func TestElementClassesFromAttr(t *testing.T) {
	e := NewElement("rect", []attrEntry{{Key: "class", Value: "foo bar"}})
	if !e.HasClass("foo") || !e.HasClass("bar") {
		t.Errorf("Classes = %v", e.Classes)
	}
	if _, ok := e.Get("class"); ok {
		t.Error("class should not appear as a plain attribute")
	}
}

func TestElementRectBBox(t *testing.T) {
	e := NewElement("rect", []attrEntry{{Key: "x", Value: "1"}, {Key: "y", Value: "2"}, {Key: "width", Value: "10"}, {Key: "height", Value: "20"}})
	box, ok := e.BBox()
	if !ok {
		t.Fatal("expected bbox")
	}
	want := NewBox(1, 2, 11, 22)
	if box != want {
		t.Errorf("BBox = %v, want %v", box, want)
	}
}

func TestElementCircleBBox(t *testing.T) {
	e := NewElement("circle", []attrEntry{{Key: "cx", Value: "5"}, {Key: "cy", Value: "5"}, {Key: "r", Value: "3"}})
	box, ok := e.BBox()
	if !ok {
		t.Fatal("expected bbox")
	}
	want := NewBox(2, 2, 8, 8)
	if box != want {
		t.Errorf("BBox = %v, want %v", box, want)
	}
}

func TestElementIndeterminateBBoxOnNonNumeric(t *testing.T) {
	e := NewElement("rect", []attrEntry{{Key: "x", Value: "10%"}, {Key: "y", Value: "0"}, {Key: "width", Value: "10"}, {Key: "height", Value: "10"}})
	if _, ok := e.BBox(); ok {
		t.Error("expected indeterminate bbox for non-numeric x")
	}
}

func TestElementClone(t *testing.T) {
	e := NewElement("rect", []attrEntry{{Key: "x", Value: "1"}})
	c := e.Clone()
	c.Set("x", "2")
	if v, _ := e.Get("x"); v != "1" {
		t.Errorf("clone mutation leaked into original: %v", v)
	}
}
