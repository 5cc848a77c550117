package connector

import (
	"strings"
	"testing"

	"github.com/codedstructure/svgdx/svg"
)

func TestRouteStraight(t *testing.T) {
	d, err := Route(ShapeStraight, [2]float32{0, 0}, [2]float32{10, 10}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d != "M0,0 L10,10" {
		t.Errorf("got %q", d)
	}
}

func TestRouteCornerHasTwoBends(t *testing.T) {
	d, err := Route(ShapeCorner, [2]float32{0, 0}, [2]float32{10, 10}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(d, "L") != 3 {
		t.Errorf("corner path = %q, want 3 line segments", d)
	}
}

func TestRouteElbowAroundObstacle(t *testing.T) {
	obstacle := svg.NewBox(4, -2, 6, 12)
	d, err := RouteElbow([2]float32{0, 0}, [2]float32{10, 0}, []svg.BoundingBox{obstacle}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(d, "M0,0") {
		t.Errorf("expected path to start at origin, got %q", d)
	}
	if !strings.Contains(d, "10,0") {
		t.Errorf("expected path to reach endpoint, got %q", d)
	}
}

func TestRouteElbowUnreachableErrors(t *testing.T) {
	// Obstacle fully enclosing the destination leaves no free endpoint.
	obstacle := svg.NewBox(9, -1, 11, 1)
	if _, err := RouteElbow([2]float32{0, 0}, [2]float32{10, 0}, []svg.BoundingBox{obstacle}, 0); err == nil {
		t.Error("expected an error when the endpoint sits inside an obstacle")
	}
}
