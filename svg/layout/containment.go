package layout

import (
	"fmt"
	"strings"

	"github.com/codedstructure/svgdx/svg"
)

// ApplyContainment implements pipeline step 2: if exactly one of
// "surround"/"inside" is present, resolve the referenced elements,
// combine their bboxes (union for surround, intersection for inside),
// grow/shrink by "margin", and write the result back as concrete
// geometry attributes. It is a no-op when neither attribute is set.
func ApplyContainment(view svg.ContextView, e *svg.SvgElement) error {
	surround, hasSurround := e.Get("surround")
	inside, hasInside := e.Get("inside")
	if !hasSurround && !hasInside {
		return nil
	}
	if hasSurround && hasInside {
		return fmt.Errorf("element %q: surround and inside are mutually exclusive", e.Name)
	}

	refs := strings.Fields(surround)
	grow := true
	if hasInside {
		refs = strings.Fields(inside)
		grow = false
	}
	if len(refs) == 0 {
		return fmt.Errorf("%s requires at least one element reference", containmentAttrName(hasSurround))
	}

	var box svg.BoundingBox
	first := true
	for _, token := range refs {
		ref, err := svg.ParseElRef(token)
		if err != nil {
			return fmt.Errorf("%s: %w", containmentAttrName(hasSurround), err)
		}
		rbox, err := view.ResolveBBox(ref)
		if err != nil {
			return fmt.Errorf("%s: %w", containmentAttrName(hasSurround), err)
		}
		if first {
			box = rbox
			first = false
			continue
		}
		if grow {
			box = box.Combine(rbox)
		} else {
			box, _ = box.Intersect(rbox)
		}
	}

	margin := svg.TrblLength{}
	if m, ok := e.Get("margin"); ok {
		parsed, err := svg.ParseTrblLength(m)
		if err != nil {
			return fmt.Errorf("margin: %w", err)
		}
		margin = parsed
	}
	if grow {
		box = box.ExpandTrbl(margin)
	} else {
		box = box.ShrinkTrbl(margin)
	}

	writeResolvedGeometry(e, box)
	e.Remove("surround")
	e.Remove("inside")
	e.Remove("margin")
	return nil
}

func containmentAttrName(surround bool) string {
	if surround {
		return "surround"
	}
	return "inside"
}
