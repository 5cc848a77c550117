package layout

import (
	"testing"

	"github.com/codedstructure/svgdx/svg"
	"github.com/codedstructure/svgdx/svg/style"
)

type fakeView struct {
	vars map[string]string
}

func (v fakeView) ResolveElement(ref svg.ElRef) (*svg.SvgElement, error) {
	return nil, errNotFound
}
func (v fakeView) ResolveBBox(ref svg.ElRef) (svg.BoundingBox, error) {
	return svg.BoundingBox{}, errNotFound
}
func (v fakeView) LookupVar(name string) (string, bool) {
	s, ok := v.vars[name]
	return s, ok
}
func (v fakeView) Random() float32          { return 0.5 }
func (v fakeView) RandInt(a, b int) int     { return a }

var errNotFound = errNF{}

type errNF struct{}

func (errNF) Error() string { return "not found" }

func TestResolveElementExpandsRectGeometry(t *testing.T) {
	e := svg.NewElement("rect", []svg.AttrEntry{
		{Key: "xy", Value: "10,10"},
		{Key: "wh", Value: "20,30"},
	})
	rules := style.DefaultRuleset(style.ThemeDefault)
	if err := ResolveElement(fakeView{}, e, rules); err != nil {
		t.Fatal(err)
	}
	if v, _ := e.Get("x"); v != "10" {
		t.Errorf("x = %q", v)
	}
	if v, _ := e.Get("width"); v != "20" {
		t.Errorf("width = %q", v)
	}
	if v, _ := e.Get("height"); v != "30" {
		t.Errorf("height = %q", v)
	}
}

func TestResolveElementKeepsTextContent(t *testing.T) {
	e := svg.NewElement("text", []svg.AttrEntry{{Key: "x", Value: "5"}, {Key: "y", Value: "5"}})
	e.Text = "hello"
	rules := style.DefaultRuleset(style.ThemeDefault)
	if err := ResolveElement(fakeView{}, e, rules); err != nil {
		t.Fatal(err)
	}
	if e.Text != "hello" {
		t.Errorf("text was mutated: %q", e.Text)
	}
}

func TestAggregateContentBBoxUnionsChildren(t *testing.T) {
	e := svg.NewElement("g", nil)
	AggregateContentBBox(e, []svg.BoundingBox{
		svg.NewBox(0, 0, 10, 10),
		svg.NewBox(5, 5, 20, 20),
	})
	if !e.HasContentBB {
		t.Fatal("expected HasContentBB to be set")
	}
	if e.ContentBBox.X2 != 20 || e.ContentBBox.Y2 != 20 {
		t.Errorf("box = %+v", e.ContentBBox)
	}
}
