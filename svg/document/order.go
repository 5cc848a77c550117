// Package document turns an XML byte stream into the tag/event model the
// layout resolver walks: a flat, depth-annotated event array plus an
// OrderIndex for the ^N/+N sibling-reference grammar.
package document

import "fmt"

// OrderIndex locates a tag within its parent's child sequence, used to
// resolve "^N" (N siblings back) and "+N" (N siblings forward) element
// references. Index counts only layout-significant siblings (see
// svg.SvgElement.IsLayoutElement).
type OrderIndex struct {
	Parent   int // index of the parent tag, -1 for document root
	Position int // 0-based position among layout-significant siblings
}

// down returns the index one level into the first child slot.
func (o OrderIndex) down(parent, pos int) OrderIndex {
	return OrderIndex{Parent: parent, Position: pos}
}

// up returns true if this index has a parent (is not document-root level).
func (o OrderIndex) up() (int, bool) {
	if o.Parent < 0 {
		return 0, false
	}
	return o.Parent, true
}

// step advances or rewinds the position within the same parent by delta,
// returning the new OrderIndex and whether it stayed within [0, siblings).
func (o OrderIndex) step(delta, siblings int) (OrderIndex, bool) {
	next := o.Position + delta
	if next < 0 || next >= siblings {
		return o, false
	}
	return OrderIndex{Parent: o.Parent, Position: next}, true
}

// Step is the exported form of step, used by the transform driver to
// resolve ^N/+N references against a precomputed sibling list.
func (o OrderIndex) Step(delta, siblings int) (OrderIndex, bool) {
	return o.step(delta, siblings)
}

func (o OrderIndex) String() string {
	return fmt.Sprintf("OrderIndex{parent=%d, pos=%d}", o.Parent, o.Position)
}
