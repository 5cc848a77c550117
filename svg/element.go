package svg

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// attrEntry is one slot in an element's ordered attribute list.
type attrEntry struct {
	Key, Value string
}

// AttrEntry is the external name for attrEntry, for packages (document)
// that build raw attribute lists to hand to NewElement.
type AttrEntry = attrEntry

// SvgElement is the mutable record spec §3 describes: tag name; an
// ordered, key-unique attribute mapping; an ordered class set; optional
// text; optional content bbox; order-index; optional source position;
// optional event span.
type SvgElement struct {
	Name    string
	attrs   []attrEntry
	slot    map[string]int
	Classes []string

	Text    string
	HasText bool

	ContentBBox  BoundingBox
	HasContentBB bool

	Order int

	Line    int
	HasLine bool
	Indent  int

	EventStart, EventEnd int
}

// NewElement constructs an element from a raw (name, attrs) pair,
// separating classes out of the "class" attribute as spec §3 requires.
func NewElement(name string, raw []attrEntry) *SvgElement {
	e := &SvgElement{Name: name, slot: map[string]int{}}
	for _, kv := range raw {
		if kv.Key == "class" {
			e.Classes = append(e.Classes, strings.Fields(kv.Value)...)
			continue
		}
		e.Set(kv.Key, kv.Value)
	}
	return e
}

// Get returns an attribute's value and whether it is present.
func (e *SvgElement) Get(key string) (string, bool) {
	if i, ok := e.slot[key]; ok {
		return e.attrs[i].Value, true
	}
	return "", false
}

// GetDefault returns an attribute's value, or def if absent.
func (e *SvgElement) GetDefault(key, def string) string {
	if v, ok := e.Get(key); ok {
		return v
	}
	return def
}

// Set inserts or updates an attribute, preserving the original slot's
// position on update (spec §3: "in-place update preserving original slot").
func (e *SvgElement) Set(key, value string) {
	if i, ok := e.slot[key]; ok {
		e.attrs[i].Value = value
		return
	}
	e.slot[key] = len(e.attrs)
	e.attrs = append(e.attrs, attrEntry{Key: key, Value: value})
}

// Remove deletes an attribute if present.
func (e *SvgElement) Remove(key string) {
	i, ok := e.slot[key]
	if !ok {
		return
	}
	e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
	delete(e.slot, key)
	for k, idx := range e.slot {
		if idx > i {
			e.slot[k] = idx - 1
		}
	}
}

// Attrs returns the attributes in insertion order.
func (e *SvgElement) Attrs() []attrEntry {
	return e.attrs
}

// AttrNames returns the attribute keys in insertion order.
func (e *SvgElement) AttrNames() []string {
	names := make([]string, len(e.attrs))
	for i, kv := range e.attrs {
		names[i] = kv.Key
	}
	return names
}

// HasClass reports whether the element carries the given class.
func (e *SvgElement) HasClass(c string) bool {
	for _, cl := range e.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// AddClass appends a class if not already present.
func (e *SvgElement) AddClass(c string) {
	if !e.HasClass(c) {
		e.Classes = append(e.Classes, c)
	}
}

// ClassAttr renders the Classes slice back into a single "class" string,
// or "" if there are none.
func (e *SvgElement) ClassAttr() string {
	return strings.Join(e.Classes, " ")
}

// Clone deep-copies the element (used when value-copying into per-pass
// working state, per spec §3 ownership rules).
func (e *SvgElement) Clone() *SvgElement {
	c := &SvgElement{
		Name:         e.Name,
		Classes:      append([]string(nil), e.Classes...),
		Text:         e.Text,
		HasText:      e.HasText,
		ContentBBox:  e.ContentBBox,
		HasContentBB: e.HasContentBB,
		Order:        e.Order,
		Line:         e.Line,
		HasLine:      e.HasLine,
		Indent:       e.Indent,
		EventStart:   e.EventStart,
		EventEnd:     e.EventEnd,
		attrs:        append([]attrEntry(nil), e.attrs...),
		slot:         make(map[string]int, len(e.slot)),
	}
	for k, v := range e.slot {
		c.slot[k] = v
	}
	return c
}

// f32Attr reads an attribute as a float32; ok is false if absent, numeric
// is false if present but not a plain number (e.g. "10%", "40mm" — makes
// the bbox indeterminate rather than failing, per spec §4.3).
func (e *SvgElement) f32Attr(key string) (v float32, ok, numeric bool) {
	s, present := e.Get(key)
	if !present {
		return 0, false, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, true, false
	}
	return float32(f), true, true
}

func (e *SvgElement) f32Default(key string, def float32) (float32, bool) {
	v, present, numeric := e.f32Attr(key)
	if !numeric {
		return 0, false
	}
	if !present {
		return def, true
	}
	return v, true
}

// BBox computes this element's own bounding box from its resolved
// attributes (spec §4.3 "Element bbox (non-path)" and §4.3 "Path bbox").
// Container elements (g/symbol/use with a target) are NOT computed
// here — their extent comes from ContentBBox, set by the layout resolver
// after children are processed (spec §9 "Container extent"). An svg
// element uses its ContentBBox when set and otherwise its own
// x/y/width/height, like a rect.
func (e *SvgElement) BBox() (BoundingBox, bool) {
	if e.HasContentBB {
		return e.ContentBBox, true
	}
	switch e.Name {
	case "rect", "box", "image", "svg", "foreignObject":
		return e.rectLikeBBox()
	case "circle":
		return e.circleBBox()
	case "ellipse":
		return e.ellipseBBox()
	case "line":
		return e.lineBBox()
	case "polyline", "polygon":
		return e.pointsBBox()
	case "point", "text":
		return e.pointBBox()
	case "path":
		if d, ok := e.Get("d"); ok {
			return PathBBox(d)
		}
		return BoundingBox{}, false
	}
	return BoundingBox{}, false
}

func (e *SvgElement) rectLikeBBox() (BoundingBox, bool) {
	x, ok1 := e.f32Default("x", 0)
	y, ok2 := e.f32Default("y", 0)
	w, ok3 := e.f32Attr2("width")
	h, ok4 := e.f32Attr2("height")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return BoundingBox{}, false
	}
	return NewBox(x, y, x+w, y+h), true
}

// f32Attr2 requires the attribute to be present and numeric.
func (e *SvgElement) f32Attr2(key string) (float32, bool) {
	v, present, numeric := e.f32Attr(key)
	return v, present && numeric
}

func (e *SvgElement) circleBBox() (BoundingBox, bool) {
	cx, ok1 := e.f32Default("cx", 0)
	cy, ok2 := e.f32Default("cy", 0)
	r, ok3 := e.f32Attr2("r")
	if !ok1 || !ok2 || !ok3 {
		return BoundingBox{}, false
	}
	return NewBox(cx-r, cy-r, cx+r, cy+r), true
}

func (e *SvgElement) ellipseBBox() (BoundingBox, bool) {
	cx, ok1 := e.f32Default("cx", 0)
	cy, ok2 := e.f32Default("cy", 0)
	rx, ok3 := e.f32Attr2("rx")
	ry, ok4 := e.f32Attr2("ry")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return BoundingBox{}, false
	}
	return NewBox(cx-rx, cy-ry, cx+rx, cy+ry), true
}

func (e *SvgElement) lineBBox() (BoundingBox, bool) {
	x1, ok1 := e.f32Default("x1", 0)
	y1, ok2 := e.f32Default("y1", 0)
	x2, ok3 := e.f32Default("x2", 0)
	y2, ok4 := e.f32Default("y2", 0)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return BoundingBox{}, false
	}
	return NewBox(x1, y1, x2, y2), true
}

func (e *SvgElement) pointBBox() (BoundingBox, bool) {
	x, ok1 := e.f32Default("x", 0)
	y, ok2 := e.f32Default("y", 0)
	if !ok1 || !ok2 {
		return BoundingBox{}, false
	}
	return NewBox(x, y, x, y), true
}

func (e *SvgElement) pointsBBox() (BoundingBox, bool) {
	s, ok := e.Get("points")
	if !ok {
		return BoundingBox{}, false
	}
	pts := ParsePoints(s)
	if len(pts) == 0 {
		return BoundingBox{}, false
	}
	box := NewBoundingBox()
	for _, p := range pts {
		box.Expand(p[0], p[1])
	}
	return box, true
}

// ParsePoints scans a whitespace/comma-separated coordinate-pair list
// (the "points" attribute of polyline/polygon).
func ParsePoints(s string) [][2]float32 {
	fields := splitLengths(s)
	var pts [][2]float32
	for i := 0; i+1 < len(fields); i += 2 {
		x, err1 := strconv.ParseFloat(fields[i], 32)
		y, err2 := strconv.ParseFloat(fields[i+1], 32)
		if err1 != nil || err2 != nil {
			continue
		}
		pts = append(pts, [2]float32{float32(x), float32(y)})
	}
	return pts
}

// FormatPoints renders point pairs back into a "points" attribute value.
func FormatPoints(pts [][2]float32) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fstr(p[0]) + "," + fstr(p[1])
	}
	return strings.Join(parts, " ")
}

// SortedClasses is a convenience for deterministic style-rule matching
// output (does not mutate e.Classes, which stays insertion-ordered).
func (e *SvgElement) SortedClasses() []string {
	out := append([]string(nil), e.Classes...)
	sort.Strings(out)
	return out
}

// IsLayoutElement reports whether this element participates in ^N/+N
// sibling counting: any element with visible geometry, excluding
// structural/metadata elements.
func (e *SvgElement) IsLayoutElement() bool {
	switch e.Name {
	case "defs", "defaults", "_", "var", "config", "specs", "style", "title", "desc", "metadata":
		return false
	default:
		return true
	}
}

func (e *SvgElement) String() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(e.Name)
	for _, kv := range e.attrs {
		fmt.Fprintf(&b, " %s=%q", kv.Key, kv.Value)
	}
	if len(e.Classes) > 0 {
		fmt.Fprintf(&b, " class=%q", e.ClassAttr())
	}
	b.WriteString(">")
	return b.String()
}
