// Package expr implements the attribute expression language: arithmetic
// and string expressions embedded in `{{ ... }}` spans within attribute
// values, evaluated against a svg.ContextView for variable and element
// lookups.
package expr

import (
	"fmt"
	"strconv"
)

// Kind tags a Value's underlying representation. Values flatten a List
// to its joined text form only at a call boundary (function argument or
// final attribute-string render); internally a multi-element list stays
// a List so functions like "count" can still see its shape.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindList
)

// Value is the tagged union every expression produces.
type Value struct {
	Kind   Kind
	Number float64
	Str    string
	List   []Value
}

func Num(n float64) Value   { return Value{Kind: KindNumber, Number: n} }
func Str(s string) Value    { return Value{Kind: KindString, Str: s} }
func ListOf(v []Value) Value { return Value{Kind: KindList, List: v} }

// AsNumber coerces a value to a float64, parsing strings numerically.
func (v Value) AsNumber() (float64, error) {
	switch v.Kind {
	case KindNumber:
		return v.Number, nil
	case KindString:
		f, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, fmt.Errorf("expr: %q is not a number", v.Str)
		}
		return f, nil
	case KindList:
		if len(v.List) == 1 {
			return v.List[0].AsNumber()
		}
		return 0, fmt.Errorf("expr: cannot use a %d-element list as a number", len(v.List))
	}
	return 0, fmt.Errorf("expr: unknown value kind")
}

// AsString renders the value as its flattened text form.
func (v Value) AsString() string {
	switch v.Kind {
	case KindNumber:
		return formatNumber(v.Number)
	case KindString:
		return v.Str
	case KindList:
		// Comma-space separated so a list evaluates directly into
		// contexts that want comma-joined tuples (e.g. rgb(...)).
		out := ""
		for i, e := range v.List {
			if i > 0 {
				out += ", "
			}
			out += e.AsString()
		}
		return out
	}
	return ""
}

// AsBool follows the language's truthiness rule: 0, "", "0", "false" and
// an empty list are false; everything else is true.
func (v Value) AsBool() bool {
	switch v.Kind {
	case KindNumber:
		return v.Number != 0
	case KindString:
		return v.Str != "" && v.Str != "0" && v.Str != "false"
	case KindList:
		return len(v.List) > 0
	}
	return false
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'f', 3, 64)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
