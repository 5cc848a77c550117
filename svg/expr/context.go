package expr

import (
	"fmt"

	"github.com/codedstructure/svgdx/svg"
)

// evalContext threads the document ContextView plus a recursion guard
// through a single Eval call.
type evalContext struct {
	view  svg.ContextView
	depth int
}

const maxCallDepth = 64

// Eval parses and evaluates a single expression against the given
// context view.
func Eval(expr string, view svg.ContextView) (Value, error) {
	node, err := Parse(expr)
	if err != nil {
		return Value{}, err
	}
	return node.eval(&evalContext{view: view})
}

// identNode is a bare word used as a primary (not followed by "(").
// The spec's expression grammar only reaches a primary word through
// $name/${name} (tokVar) or a function call, but accepting a bare
// word as an implicit variable lookup is a harmless, documented
// leniency kept for callers that write "x" instead of "$x".
func (n identNode) eval(ctx *evalContext) (Value, error) {
	name := string(n)
	if v, ok := ctx.view.LookupVar(name); ok {
		return Str(v), nil
	}
	return Value{}, fmt.Errorf("expr: undefined variable %q", name)
}

func (n varNode) eval(ctx *evalContext) (Value, error) {
	name := string(n)
	if v, ok := ctx.view.LookupVar(name); ok {
		return Str(v), nil
	}
	return Value{}, fmt.Errorf("expr: undefined variable %q", name)
}

// elementRefNode evaluates one of the three spec §4.1 element-reference
// shapes: "#id"/"^n"/"+n" alone (the box four-tuple [x1,y1,x2,y2]),
// "...~scalarspec" (one scalar), or "...@locspec" (the point [x,y]).
func (n elementRefNode) eval(ctx *evalContext) (Value, error) {
	text := string(n)
	base, sep, arg := splitElementRef(text)
	ref, err := svg.ParseElRef(base)
	if err != nil {
		return Value{}, err
	}
	box, err := ctx.view.ResolveBBox(ref)
	if err != nil {
		return Value{}, err
	}
	switch sep {
	case '~':
		k, err := svg.ParseScalarSpec(arg)
		if err != nil {
			return Value{}, err
		}
		return Num(float64(box.ScalarSpec(k))), nil
	case '@':
		loc, err := svg.ParseLocSpec(arg)
		if err != nil {
			return Value{}, err
		}
		x, y := box.LocSpec(loc)
		return ListOf([]Value{Num(float64(x)), Num(float64(y))}), nil
	default:
		return ListOf([]Value{Num(float64(box.X1)), Num(float64(box.Y1)), Num(float64(box.X2)), Num(float64(box.Y2))}), nil
	}
}

// splitElementRef separates the base reference (#id/^n/+n) from an
// attached "~scalarspec" or "@locspec" suffix, if present.
func splitElementRef(s string) (base string, sep byte, arg string) {
	for i := 1; i < len(s); i++ {
		if s[i] == '~' || s[i] == '@' {
			return s[:i], s[i], s[i+1:]
		}
	}
	return s, 0, ""
}

func (n binOpNode) eval(ctx *evalContext) (Value, error) {
	left, err := n.left.eval(ctx)
	if err != nil {
		return Value{}, err
	}
	// "&&"/"||" are the short-circuit C-style spellings. "and"/"or"/"xor"
	// are the spec's alphabetic logical operators, which are eager: both
	// operands are always evaluated (spec §4.1), so they fall through to
	// the shared right-hand evaluation below rather than short-circuiting.
	if n.op == "&&" {
		if !left.AsBool() {
			return Num(0), nil
		}
		right, err := n.right.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		return boolValue(right.AsBool()), nil
	}
	if n.op == "||" {
		if left.AsBool() {
			return Num(1), nil
		}
		right, err := n.right.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		return boolValue(right.AsBool()), nil
	}
	right, err := n.right.eval(ctx)
	if err != nil {
		return Value{}, err
	}

	switch n.op {
	case "and":
		return boolValue(left.AsBool() && right.AsBool()), nil
	case "or":
		return boolValue(left.AsBool() || right.AsBool()), nil
	case "xor":
		return boolValue(left.AsBool() != right.AsBool()), nil
	}

	if n.op == "+" && (left.Kind == KindString || right.Kind == KindString) {
		_, errL := left.AsNumber()
		_, errR := right.AsNumber()
		if errL != nil || errR != nil {
			return Str(left.AsString() + right.AsString()), nil
		}
	}

	if (n.op == "eq" || n.op == "ne" || n.op == "==" || n.op == "!=") &&
		(left.Kind == KindString || right.Kind == KindString) {
		if _, errL := left.AsNumber(); errL != nil {
			equal := left.AsString() == right.AsString()
			if n.op == "eq" || n.op == "==" {
				return boolValue(equal), nil
			}
			return boolValue(!equal), nil
		}
		if _, errR := right.AsNumber(); errR != nil {
			equal := left.AsString() == right.AsString()
			if n.op == "eq" || n.op == "==" {
				return boolValue(equal), nil
			}
			return boolValue(!equal), nil
		}
	}

	lf, err := left.AsNumber()
	if err != nil {
		return Value{}, err
	}
	rf, err := right.AsNumber()
	if err != nil {
		return Value{}, err
	}
	switch n.op {
	case "+":
		return Num(lf + rf), nil
	case "-":
		return Num(lf - rf), nil
	case "*":
		return Num(lf * rf), nil
	case "/":
		if rf == 0 {
			return Value{}, fmt.Errorf("expr: division by zero")
		}
		return Num(lf / rf), nil
	case "//":
		if rf == 0 {
			return Value{}, fmt.Errorf("expr: division by zero")
		}
		return Num(euclideanDiv(lf, rf)), nil
	case "%":
		if rf == 0 {
			return Value{}, fmt.Errorf("expr: modulo by zero")
		}
		return Num(euclideanMod(lf, rf)), nil
	case "^":
		return Num(powFloat(lf, rf)), nil
	case "==", "eq":
		return boolValue(lf == rf), nil
	case "!=", "ne":
		return boolValue(lf != rf), nil
	case "<", "lt":
		return boolValue(lf < rf), nil
	case ">", "gt":
		return boolValue(lf > rf), nil
	case "<=", "le":
		return boolValue(lf <= rf), nil
	case ">=", "ge":
		return boolValue(lf >= rf), nil
	}
	return Value{}, fmt.Errorf("expr: unknown operator %q", n.op)
}

// euclideanDiv is the Euclidean counterpart to euclideanMod: for all
// b != 0, euclideanDiv(a,b)*b + euclideanMod(a,b) == a (spec §8).
func euclideanDiv(a, b float64) float64 {
	return (a - euclideanMod(a, b)) / b
}

func boolValue(b bool) Value {
	if b {
		return Num(1)
	}
	return Num(0)
}

// euclideanMod follows the spec's Euclidean-division property: the
// result always has the sign of the divisor's magnitude convention
// (non-negative when the divisor is positive), unlike Go's native %.
func euclideanMod(a, b float64) float64 {
	m := mathMod(a, b)
	if m < 0 {
		m += absFloat(b)
	}
	return m
}

func (n unaryNode) eval(ctx *evalContext) (Value, error) {
	v, err := n.expr.eval(ctx)
	if err != nil {
		return Value{}, err
	}
	switch n.op {
	case "-":
		f, err := v.AsNumber()
		if err != nil {
			return Value{}, err
		}
		return Num(-f), nil
	case "!":
		return boolValue(!v.AsBool()), nil
	}
	return Value{}, fmt.Errorf("expr: unknown unary operator %q", n.op)
}

func (n listNode) eval(ctx *evalContext) (Value, error) {
	vals := make([]Value, len(n.items))
	for i, item := range n.items {
		v, err := item.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		vals[i] = v
	}
	return ListOf(vals), nil
}

func (n callNode) eval(ctx *evalContext) (Value, error) {
	ctx.depth++
	defer func() { ctx.depth-- }()
	if ctx.depth > maxCallDepth {
		return Value{}, fmt.Errorf("expr: call depth exceeded (possible recursive macro)")
	}
	fn, ok := builtins[n.name]
	if !ok {
		return Value{}, fmt.Errorf("expr: unknown function %q", n.name)
	}
	args := make([]Value, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(ctx)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return fn(ctx, args)
}
