package layout

import (
	"testing"

	"github.com/codedstructure/svgdx/svg"
)

func TestResolveRelspecDefaultScalar(t *testing.T) {
	view := containmentView{boxes: map[string]svg.BoundingBox{"a": svg.NewBox(0, 0, 10, 20)}}
	e := svg.NewElement("rect", []svg.AttrEntry{{Key: "width", Value: "#a"}})
	if err := ResolveRelspecs(view, e); err != nil {
		t.Fatal(err)
	}
	if v, _ := e.Get("width"); v != "10" {
		t.Errorf("width = %q, want 10", v)
	}
}

func TestResolveRelspecExplicitScalar(t *testing.T) {
	view := containmentView{boxes: map[string]svg.BoundingBox{"a": svg.NewBox(0, 0, 10, 20)}}
	e := svg.NewElement("rect", []svg.AttrEntry{{Key: "width", Value: "#a~height"}})
	if err := ResolveRelspecs(view, e); err != nil {
		t.Fatal(err)
	}
	if v, _ := e.Get("width"); v != "20" {
		t.Errorf("width = %q, want 20", v)
	}
}

func TestResolveRelspecLocation(t *testing.T) {
	view := containmentView{boxes: map[string]svg.BoundingBox{"a": svg.NewBox(0, 0, 10, 20)}}
	e := svg.NewElement("rect", []svg.AttrEntry{{Key: "x", Value: "#a@br"}})
	if err := ResolveRelspecs(view, e); err != nil {
		t.Fatal(err)
	}
	if v, _ := e.Get("x"); v != "10" {
		t.Errorf("x = %q, want 10", v)
	}
}

func TestResolveRelspecTrailingDelta(t *testing.T) {
	view := containmentView{boxes: map[string]svg.BoundingBox{"a": svg.NewBox(0, 0, 10, 20)}}
	e := svg.NewElement("rect", []svg.AttrEntry{{Key: "x", Value: "#a 5"}})
	if err := ResolveRelspecs(view, e); err != nil {
		t.Fatal(err)
	}
	if v, _ := e.Get("x"); v != "5" {
		t.Errorf("x = %q, want 5", v)
	}
}
