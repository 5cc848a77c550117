package layout

import (
	"testing"

	"github.com/codedstructure/svgdx/svg"
)

func TestExpandCompoundXYAndWH(t *testing.T) {
	attrs := map[string]string{"xy": "10,20", "wh": "30 40"}
	if err := ExpandCompound(attrs); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"x": "10", "y": "20", "width": "30", "height": "40"}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attrs[%q] = %q, want %q", k, attrs[k], v)
		}
	}
	if _, ok := attrs["xy"]; ok {
		t.Error("xy should have been removed")
	}
}

func TestExpandCompoundDWH(t *testing.T) {
	attrs := map[string]string{"dwh": "15"}
	if err := ExpandCompound(attrs); err != nil {
		t.Fatal(err)
	}
	if attrs["dw"] != "15" || attrs["dh"] != "15" {
		t.Errorf("dwh expansion = %v", attrs)
	}
	if _, ok := attrs["width"]; ok {
		t.Error("dwh should not write width/height directly")
	}
}

func TestExpandCompoundWHSingleValue(t *testing.T) {
	attrs := map[string]string{"wh": "10"}
	if err := ExpandCompound(attrs); err != nil {
		t.Fatal(err)
	}
	if attrs["width"] != "10" || attrs["height"] != "10" {
		t.Errorf("wh expansion = %v", attrs)
	}
}

func TestExpandCompoundWHReference(t *testing.T) {
	attrs := map[string]string{"wh": "#abc -2 5"}
	if err := ExpandCompound(attrs); err != nil {
		t.Fatal(err)
	}
	if attrs["width"] != "#abc -2" || attrs["height"] != "#abc 5" {
		t.Errorf("wh reference expansion = %v", attrs)
	}
}

func TestExpandCompoundWHReferenceSingleDelta(t *testing.T) {
	attrs := map[string]string{"wh": "#abc -2"}
	if err := ExpandCompound(attrs); err != nil {
		t.Fatal(err)
	}
	if attrs["width"] != "#abc -2" || attrs["height"] != "#abc -2" {
		t.Errorf("wh reference expansion = %v", attrs)
	}
}

func TestExpandCompoundXY1XY2DXY(t *testing.T) {
	attrs := map[string]string{"xy1": "1 2", "xy2": "3 4", "dxy": "5 6"}
	if err := ExpandCompound(attrs); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"x1": "1", "y1": "2", "x2": "3", "y2": "4", "dx": "5", "dy": "6"}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attrs[%q] = %q, want %q", k, attrs[k], v)
		}
	}
	for _, k := range []string{"xy1", "xy2", "dxy"} {
		if _, ok := attrs[k]; ok {
			t.Errorf("%s should have been removed", k)
		}
	}
}

func TestBuildPositionSizeDelta(t *testing.T) {
	attrs := map[string]string{"x": "1", "y": "2", "width": "3", "height": "4", "dw": "10"}
	pos, err := BuildPosition(svg.ShapeRect, attrs)
	if err != nil {
		t.Fatal(err)
	}
	box, err := pos.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if box.X1 != 1 || box.X2 != 14 {
		t.Errorf("box = %+v, want width extended by dw=10", box)
	}
}

func TestExpandCompoundBadPairErrors(t *testing.T) {
	attrs := map[string]string{"cxy": "10"}
	if err := ExpandCompound(attrs); err == nil {
		t.Error("expected an error for a single-value cxy")
	}
}

func TestBuildPositionRectFromMinExtent(t *testing.T) {
	attrs := map[string]string{"x": "1", "y": "2", "width": "3", "height": "4"}
	pos, err := BuildPosition(svg.ShapeRect, attrs)
	if err != nil {
		t.Fatal(err)
	}
	box, err := pos.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if box.X1 != 1 || box.Y1 != 2 || box.X2 != 4 || box.Y2 != 6 {
		t.Errorf("box = %+v", box)
	}
}

func TestBuildPositionCircleFromCenterRadius(t *testing.T) {
	attrs := map[string]string{"cx": "5", "cy": "5", "width": "10", "height": "10"}
	pos, err := BuildPosition(svg.ShapeCircle, attrs)
	if err != nil {
		t.Fatal(err)
	}
	box, err := pos.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if box.X1 != 0 || box.X2 != 10 || box.Y1 != 0 || box.Y2 != 10 {
		t.Errorf("box = %+v", box)
	}
}
