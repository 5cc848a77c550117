package document

import (
	"strings"
	"testing"
)

func TestReadEventsBasic(t *testing.T) {
	events, err := ReadEvents(strings.NewReader(`<svg><rect x="1" y="2"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	var kinds []EventKind
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	want := []EventKind{EventStart, EventStart, EventEnd, EventEnd}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestBuildDocumentOrderIndex(t *testing.T) {
	events, err := ReadEvents(strings.NewReader(`<svg><rect id="a"/><rect id="b"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := BuildDocument(events)
	if err != nil {
		t.Fatal(err)
	}
	a, ok := doc.ByID["a"]
	if !ok {
		t.Fatal("expected element a")
	}
	b, ok := doc.ByID["b"]
	if !ok {
		t.Fatal("expected element b")
	}
	if a.Order.Position != 0 || b.Order.Position != 1 {
		t.Errorf("order positions = %d, %d, want 0, 1", a.Order.Position, b.Order.Position)
	}
	if a.Order.Parent != b.Order.Parent {
		t.Errorf("expected same parent, got %v vs %v", a.Order.Parent, b.Order.Parent)
	}
}

func TestBuildDocumentSiblingContainersDoNotShareChildGroup(t *testing.T) {
	events, err := ReadEvents(strings.NewReader(
		`<svg><g><rect id="a"/></g><g><rect id="b"/></g></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := BuildDocument(events)
	if err != nil {
		t.Fatal(err)
	}
	a := doc.ByID["a"]
	b := doc.ByID["b"]
	if a.Order.Parent == b.Order.Parent {
		t.Errorf("rects under distinct sibling <g> elements got the same parent id: %v", a.Order.Parent)
	}
	if a.Order.Position != 0 || b.Order.Position != 0 {
		t.Errorf("each rect should be position 0 within its own g, got %d, %d", a.Order.Position, b.Order.Position)
	}
}

func TestBuildDocumentUnmatchedEndErrors(t *testing.T) {
	events := []InputEvent{{Kind: EventEnd, Name: "rect"}}
	if _, err := BuildDocument(events); err == nil {
		t.Error("expected error for unmatched end tag")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	src := `<svg><rect x="1" y="2"/></svg>`
	events, err := ReadEvents(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := BuildDocument(events)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := Write(&b, doc); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `x="1"`) || !strings.Contains(b.String(), `y="2"`) {
		t.Errorf("Write output = %q, missing expected attrs", b.String())
	}
}
