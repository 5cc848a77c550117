package layout

import (
	"testing"

	"github.com/codedstructure/svgdx/svg"
)

func TestExpandTextAttrPlainMultiline(t *testing.T) {
	e := svg.NewElement("rect", []svg.AttrEntry{{Key: "text", Value: `line one\nline two`}})
	lines := ExpandTextAttr(e)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Text != "line one" || lines[1].Text != "line two" {
		t.Errorf("lines = %+v", lines)
	}
}

func TestExpandTextAttrMarkdownBoldItalicMono(t *testing.T) {
	e := svg.NewElement("rect", []svg.AttrEntry{{Key: "md", Value: "a **b** c *d* `e`"}})
	lines := ExpandTextAttr(e)
	var foundBold, foundItalic, foundMono bool
	for _, l := range lines {
		if l.Bold && l.Text == "b" {
			foundBold = true
		}
		if l.Italic && l.Text == "d" {
			foundItalic = true
		}
		if l.Mono && l.Text == "e" {
			foundMono = true
		}
	}
	if !foundBold || !foundItalic || !foundMono {
		t.Errorf("runs = %+v", lines)
	}
}

func TestVisualWidthCountsWideRunesDouble(t *testing.T) {
	if VisualWidth("ab") != 2 {
		t.Errorf("ascii width wrong")
	}
	if w := VisualWidth("ＡＢ"); w != 4 {
		t.Errorf("fullwidth width = %d, want 4", w)
	}
}

func TestStyleClasses(t *testing.T) {
	l := TextLine{Bold: true, Mono: true}
	cls := l.StyleClasses()
	if len(cls) != 2 {
		t.Errorf("classes = %v", cls)
	}
}
