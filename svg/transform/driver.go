// Package transform owns the document-wide state (event array, element
// index, scope stack, RNG) and drives the per-element resolution
// pipeline implemented in svg/layout, presenting itself to that pipeline
// only through the svg.ContextView interface.
package transform

import (
	"fmt"
	"io"
	"sort"

	"github.com/codedstructure/svgdx/svg"
	"github.com/codedstructure/svgdx/svg/document"
	"github.com/codedstructure/svgdx/svg/layout"
	"github.com/codedstructure/svgdx/svg/style"
)

// Config holds the per-run options the driver consults: RNG seed,
// recursion depth cap, and the auto-style theme.
type Config struct {
	Seed           uint64
	DepthLimit     int
	Theme          style.Theme
	UseLocalStyles bool
	Vars           map[string]string
}

const defaultDepthLimit = 64

// containerNames are the elements whose own geometry is the union of
// their resolved children (spec §9 "Container extent").
var containerNames = map[string]bool{
	"g": true, "svg": true, "symbol": true,
}

// Driver owns one document's transformation pass.
type Driver struct {
	cfg   Config
	doc   *document.Document
	rng   *pcg32
	rules style.Ruleset

	rootScope   *layout.Scope
	current     *document.Tag
	currentScope *layout.Scope
	depth       int

	childrenByParent map[int][]*document.Tag
	resolving        map[*document.Tag]bool
}

// NewDriver builds a driver over a parsed document, precomputing the
// sibling index the ^N/+N grammar needs.
func NewDriver(doc *document.Document, cfg Config) *Driver {
	if cfg.DepthLimit == 0 {
		cfg.DepthLimit = defaultDepthLimit
	}
	d := &Driver{
		cfg:              cfg,
		doc:              doc,
		rng:              newPCG32(cfg.Seed, 1),
		rules:            style.DefaultRuleset(cfg.Theme),
		rootScope:        layout.NewRootScope(cfg.Vars),
		childrenByParent: map[int][]*document.Tag{},
		resolving:        map[*document.Tag]bool{},
	}
	for _, tag := range doc.ByOrder {
		d.childrenByParent[tag.Order.Parent] = append(d.childrenByParent[tag.Order.Parent], tag)
	}
	for parent := range d.childrenByParent {
		siblings := d.childrenByParent[parent]
		sort.Slice(siblings, func(i, j int) bool { return siblings[i].Order.Position < siblings[j].Order.Position })
	}
	return d
}

// Run walks the document in document order, resolving every layout
// element and writing the result to w.
func (d *Driver) Run(w io.Writer) error {
	d.currentScope = d.rootScope
	if err := d.walk(d.doc.Root, d.rootScope); err != nil {
		return err
	}
	return document.Write(w, d.doc)
}

func (d *Driver) walk(tag *document.Tag, scope *layout.Scope) error {
	if tag.Element != nil && tag.Element.Name != "#root" {
		prevTag, prevScope := d.current, d.currentScope
		d.current, d.currentScope = tag, scope
		err := layout.ResolveElement(d, tag.Element, d.rules)
		if err == nil {
			err = layout.Transmute(d, tag.Element)
		}
		if err == nil {
			expandTextChildren(tag)
		}
		d.current, d.currentScope = prevTag, prevScope
		if err != nil {
			return err
		}
	}

	if tag.Element != nil && containerNames[tag.Element.Name] {
		d.depth++
		if d.depth > d.cfg.DepthLimit {
			d.depth--
			return fmt.Errorf("transform: recursion depth limit (%d) exceeded at %q", d.cfg.DepthLimit, tag.Element.Name)
		}
		childScope := scope.Push()
		for _, kv := range tag.Element.Attrs() {
			childScope.Set(kv.Key, kv.Value)
		}
		for _, child := range tag.Children {
			if err := d.walk(child, childScope); err != nil {
				d.depth--
				return err
			}
		}
		d.depth--

		var boxes []svg.BoundingBox
		for _, child := range tag.Children {
			if child.Element == nil {
				continue
			}
			if box, ok := child.Element.BBox(); ok {
				boxes = append(boxes, box)
			}
		}
		layout.AggregateContentBBox(tag.Element, boxes)
		return nil
	}

	for _, child := range tag.Children {
		if err := d.walk(child, scope); err != nil {
			return err
		}
	}
	return nil
}

// expandTextChildren realizes a resolved element's "text"/"md" attribute
// as synthetic <text>/<tspan> children, appended alongside the shape in
// its parent's child list (spec §4.5 "Text attribute expansion").
func expandTextChildren(tag *document.Tag) {
	e := tag.Element
	lines := layout.ExpandTextAttr(e)
	if lines == nil {
		return
	}
	textEl := svg.NewElement("text", nil)
	if box, ok := e.BBox(); ok {
		textEl.Set("x", svg.Fstr(box.CX()))
		textEl.Set("y", svg.Fstr(box.CY()))
	}
	textTag := &document.Tag{Element: textEl}
	for _, l := range lines {
		if l.Text == "\x00linebreak" {
			continue
		}
		span := svg.NewElement("tspan", nil)
		span.Text = l.Text
		span.HasText = true
		for _, cls := range l.StyleClasses() {
			span.AddClass(cls)
		}
		textTag.Children = append(textTag.Children, &document.Tag{Element: span})
	}
	tag.Children = append(tag.Children, textTag)
	e.Remove("text")
	e.Remove("md")
}

// --- svg.ContextView ---

func (d *Driver) ResolveElement(ref svg.ElRef) (*svg.SvgElement, error) {
	tag, err := d.lookupTag(ref)
	if err != nil {
		return nil, err
	}
	return tag.Element, nil
}

func (d *Driver) lookupTag(ref svg.ElRef) (*document.Tag, error) {
	switch ref.Kind {
	case svg.RefID:
		tag, ok := d.doc.ByID[ref.ID]
		if !ok {
			return nil, fmt.Errorf("transform: no element with id %q", ref.ID)
		}
		return tag, nil
	case svg.RefPrev, svg.RefNext:
		if d.current == nil {
			return nil, fmt.Errorf("transform: relative reference used outside element resolution")
		}
		delta := ref.N
		if ref.Kind == svg.RefPrev {
			delta = -delta
		}
		siblings := d.childrenByParent[d.current.Order.Parent]
		next, ok := d.current.Order.Step(delta, len(siblings))
		if !ok {
			return nil, fmt.Errorf("transform: reference %s out of range", ref.String())
		}
		for _, s := range siblings {
			if s.Order == next {
				return s, nil
			}
		}
		return nil, fmt.Errorf("transform: reference %s not found", ref.String())
	}
	return nil, fmt.Errorf("transform: invalid element reference")
}

// ResolveBBox resolves a reference to its effective bounding box,
// following a chain of "use" elements (with cycle detection) when the
// referenced element is itself a use/reuse.
func (d *Driver) ResolveBBox(ref svg.ElRef) (svg.BoundingBox, error) {
	tag, err := d.lookupTag(ref)
	if err != nil {
		return svg.BoundingBox{}, err
	}
	return d.resolveTagBBox(tag, 0)
}

func (d *Driver) resolveTagBBox(tag *document.Tag, depth int) (svg.BoundingBox, error) {
	if depth > d.cfg.DepthLimit {
		return svg.BoundingBox{}, fmt.Errorf("transform: circular reference chain exceeds depth limit")
	}
	if d.resolving[tag] {
		return svg.BoundingBox{}, fmt.Errorf("transform: circular element reference")
	}
	d.resolving[tag] = true
	defer delete(d.resolving, tag)

	e := tag.Element
	if e.Name == "use" {
		href, ok := e.Get("href")
		if !ok {
			href, ok = e.Get("xlink:href")
		}
		if ok && len(href) > 0 && href[0] == '#' {
			target, err := svg.ParseElRef(href)
			if err != nil {
				return svg.BoundingBox{}, err
			}
			targetTag, err := d.lookupTag(target)
			if err != nil {
				return svg.BoundingBox{}, err
			}
			box, err := d.resolveTagBBox(targetTag, depth+1)
			if err != nil {
				return svg.BoundingBox{}, err
			}
			dx := e.GetDefault("x", "0")
			dy := e.GetDefault("y", "0")
			x, _ := svg.ParseLength(dx)
			y, _ := svg.ParseLength(dy)
			return box.Translated(x.Value, y.Value), nil
		}
	}
	if box, ok := e.BBox(); ok {
		return box, nil
	}
	return svg.BoundingBox{}, fmt.Errorf("transform: element %q has no resolvable bbox", e.Name)
}

func (d *Driver) LookupVar(name string) (string, bool) {
	if d.currentScope != nil {
		return d.currentScope.Lookup(name)
	}
	return d.rootScope.Lookup(name)
}

func (d *Driver) Random() float32 {
	return d.rng.float32()
}

func (d *Driver) RandInt(a, b int) int {
	return d.rng.intRange(a, b)
}
