package document

import (
	"fmt"

	"github.com/codedstructure/svgdx/svg"
)

// Tag is one node of the parsed tree: a compound (has children) or leaf
// element, or a text/comment passthrough node. Leaf vs compound is
// determined by whether an EventEnd follows before the next sibling.
type Tag struct {
	Element  *svg.SvgElement
	Children []*Tag
	IsText   bool
	IsComment bool
	Text     string

	EventStart, EventEnd int
	Order                OrderIndex

	// serial uniquely identifies this tag as a parent for OrderIndex.Parent
	// (stack depth alone would collide between two sibling containers at
	// the same nesting depth, e.g. two <g> elements next to each other).
	serial int
}

// Document is the parsed tag tree plus the sibling-order index the
// ^N/+N element-reference grammar resolves against.
type Document struct {
	Root    *Tag
	ByOrder map[OrderIndex]*Tag
	ByID    map[string]*Tag
	Events  []InputEvent
}

// BuildDocument parses a flat event stream into a Document, assigning
// each layout-significant element an OrderIndex among its siblings.
func BuildDocument(events []InputEvent) (*Document, error) {
	doc := &Document{
		ByOrder: map[OrderIndex]*Tag{},
		ByID:    map[string]*Tag{},
		Events:  events,
	}
	root := &Tag{Element: svg.NewElement("#root", nil), serial: -1}
	stack := []*Tag{root}
	siblingCount := map[int]int{} // parent serial -> count of layout children seen so far
	nextSerial := 0

	for i, ev := range events {
		switch ev.Kind {
		case EventStart:
			raw := make([]svg.AttrEntry, len(ev.Attrs))
			for j, a := range ev.Attrs {
				raw[j] = svg.AttrEntry{Key: a.Key, Value: a.Value}
			}
			el := svg.NewElement(ev.Name, raw)
			el.Line = ev.Line
			el.HasLine = true
			el.EventStart = i

			parent := stack[len(stack)-1]
			tag := &Tag{Element: el, EventStart: i, serial: nextSerial}
			nextSerial++
			if el.IsLayoutElement() {
				pos := siblingCount[parent.serial]
				siblingCount[parent.serial] = pos + 1
				tag.Order = OrderIndex{Parent: parent.serial, Position: pos}
				doc.ByOrder[tag.Order] = tag
			}
			if id, ok := el.Get("id"); ok {
				doc.ByID[id] = tag
			}
			parent.Children = append(parent.Children, tag)
			stack = append(stack, tag)
		case EventEnd:
			if len(stack) <= 1 {
				return nil, fmt.Errorf("document: unmatched end tag %q at line %d", ev.Name, ev.Line)
			}
			tag := stack[len(stack)-1]
			tag.EventEnd = i
			tag.Element.EventEnd = i
			delete(siblingCount, tag.serial)
			stack = stack[:len(stack)-1]
		case EventText:
			parent := stack[len(stack)-1]
			parent.Element.Text += ev.Text
			parent.Element.HasText = true
			parent.Children = append(parent.Children, &Tag{IsText: true, Text: ev.Text, EventStart: i, EventEnd: i})
		case EventComment:
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &Tag{IsComment: true, Text: ev.Text, EventStart: i, EventEnd: i})
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("document: %d unclosed element(s) at end of input", len(stack)-1)
	}
	doc.Root = root
	return doc, nil
}

