package layout

import (
	"testing"

	"github.com/codedstructure/svgdx/svg"
)

type containmentView struct {
	boxes map[string]svg.BoundingBox
}

func (v containmentView) ResolveElement(ref svg.ElRef) (*svg.SvgElement, error) {
	return nil, errNotFound
}
func (v containmentView) ResolveBBox(ref svg.ElRef) (svg.BoundingBox, error) {
	if ref.Kind != svg.RefID {
		return svg.BoundingBox{}, errNotFound
	}
	if b, ok := v.boxes[ref.ID]; ok {
		return b, nil
	}
	return svg.BoundingBox{}, errNotFound
}
func (v containmentView) LookupVar(name string) (string, bool) { return "", false }
func (v containmentView) Random() float32                      { return 0 }
func (v containmentView) RandInt(a, b int) int                 { return a }

func TestApplyContainmentSurroundUnionsAndGrows(t *testing.T) {
	view := containmentView{boxes: map[string]svg.BoundingBox{
		"a": svg.NewBox(0, 0, 10, 10),
		"b": svg.NewBox(20, 20, 30, 30),
	}}
	e := svg.NewElement("rect", []svg.AttrEntry{
		{Key: "surround", Value: "#a #b"},
		{Key: "margin", Value: "2"},
	})
	if err := ApplyContainment(view, e); err != nil {
		t.Fatal(err)
	}
	x, _ := e.Get("x")
	w, _ := e.Get("width")
	if x != "-2" {
		t.Errorf("x = %q, want -2", x)
	}
	if w != "34" {
		t.Errorf("width = %q, want 34", w)
	}
}

func TestApplyContainmentBothAttrsErrors(t *testing.T) {
	e := svg.NewElement("rect", []svg.AttrEntry{
		{Key: "surround", Value: "#a"},
		{Key: "inside", Value: "#b"},
	})
	if err := ApplyContainment(containmentView{}, e); err == nil {
		t.Error("expected an error when both surround and inside are set")
	}
}

func TestApplyContainmentNoneIsNoOp(t *testing.T) {
	e := svg.NewElement("rect", []svg.AttrEntry{{Key: "x", Value: "5"}})
	if err := ApplyContainment(containmentView{}, e); err != nil {
		t.Fatal(err)
	}
	if v, _ := e.Get("x"); v != "5" {
		t.Errorf("x mutated to %q", v)
	}
}
