package svgdx

import "fmt"

// Kind categorizes the failure a compile can produce, mirroring the
// distinct error conditions the resolution pipeline can hit.
type Kind int

const (
	// Parse indicates the input could not be read as XML.
	Parse Kind = iota
	// InvalidData indicates a config value or attribute value was
	// malformed (bad theme name, unparsable length, etc).
	InvalidData
	// Reference indicates an element reference (#id, ^n, +n) could
	// not be resolved against the document.
	Reference
	// VarLimit indicates variable substitution exceeded its
	// iteration budget, most likely from a self-referential var.
	VarLimit
	// LoopLimit indicates a repeat/loop construct exceeded its
	// iteration budget.
	LoopLimit
	// DepthLimit indicates container nesting or a use/href chain
	// exceeded the configured recursion depth.
	DepthLimit
	// CircularRef indicates a reference chain (use/href, or relspec)
	// loops back on itself.
	CircularRef
	// Document indicates the event stream could not be assembled
	// into a well-formed tag tree (unmatched end tag, etc).
	Document
	// MissingAttr indicates a required attribute was absent.
	MissingAttr
	// MissingBBox indicates an element's bounding box was needed but
	// could not be computed.
	MissingBBox
	// InternalLogic indicates a failure in the resolution pipeline
	// itself, surfaced rather than swallowed.
	InternalLogic
	// Multi wraps more than one error from independent sources.
	Multi
	// Io indicates a failure reading or writing the underlying
	// stream.
	Io
	// Other covers failures not classified above.
	Other
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case InvalidData:
		return "invalid_data"
	case Reference:
		return "reference"
	case VarLimit:
		return "var_limit"
	case LoopLimit:
		return "loop_limit"
	case DepthLimit:
		return "depth_limit"
	case CircularRef:
		return "circular_ref"
	case Document:
		return "document"
	case MissingAttr:
		return "missing_attr"
	case MissingBBox:
		return "missing_bbox"
	case InternalLogic:
		return "internal_logic"
	case Multi:
		return "multi"
	case Io:
		return "io"
	default:
		return "other"
	}
}

// Error is the error type returned by Compile and its variants. Kind
// lets a caller branch on the failure category without parsing the
// message text.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("svgdx: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("svgdx: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
