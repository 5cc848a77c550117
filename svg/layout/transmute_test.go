package layout

import (
	"strings"
	"testing"

	"github.com/codedstructure/svgdx/svg"
)

func TestTransmuteBearingRewritesPathData(t *testing.T) {
	e := svg.NewElement("path", []svg.AttrEntry{{Key: "d", Value: "M0,0 B0 l0,10"}})
	if err := Transmute(containmentView{}, e); err != nil {
		t.Fatal(err)
	}
	d, _ := e.Get("d")
	if strings.Contains(d, "B") {
		t.Errorf("bearing command survived rewrite: %q", d)
	}
}

func TestTransmuteRotateConsumesAttribute(t *testing.T) {
	e := svg.NewElement("rect", []svg.AttrEntry{
		{Key: "x", Value: "0"}, {Key: "y", Value: "0"},
		{Key: "width", Value: "10"}, {Key: "height", Value: "10"},
		{Key: "rotate", Value: "45"},
	})
	if err := Transmute(containmentView{}, e); err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Get("rotate"); ok {
		t.Error("rotate should have been removed")
	}
	tr, ok := e.Get("transform")
	if !ok || !strings.HasPrefix(tr, "rotate(45, 5, 5)") {
		t.Errorf("transform = %q", tr)
	}
}

func TestTransmuteConnectorReplacesLineEndpoints(t *testing.T) {
	view := containmentView{boxes: map[string]svg.BoundingBox{
		"a": svg.NewBox(0, 0, 10, 10),
		"b": svg.NewBox(20, 0, 30, 10),
	}}
	e := svg.NewElement("line", []svg.AttrEntry{
		{Key: "start", Value: "#a"},
		{Key: "end", Value: "#b"},
	})
	if err := Transmute(view, e); err != nil {
		t.Fatal(err)
	}
	if e.Name != "polyline" {
		t.Errorf("name = %q, want polyline", e.Name)
	}
	if _, ok := e.Get("points"); !ok {
		t.Error("expected points attribute to be set")
	}
	if _, ok := e.Get("start"); ok {
		t.Error("start should have been removed")
	}
}
