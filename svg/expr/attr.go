package expr

import (
	"fmt"
	"strings"

	"github.com/codedstructure/svgdx/svg"
)

const maxFixedPointIterations = 10

// EvalVars replaces every "$name"/"${name}" occurrence in s with its
// string value; an unknown variable is left verbatim and "\$" escapes a
// literal dollar sign (spec §4.1 eval_vars).
func EvalVars(s string, view svg.ContextView) string {
	out, _ := substituteVarsOnce(s, view)
	return out
}

// EvalExpr replaces every "{{ ... }}" span in s with its evaluated text
// form (spec §4.1 eval_expr). It does not itself expand $name forms.
func EvalExpr(s string, view svg.ContextView) (string, error) {
	out, _, err := substituteExprOnce(s, view)
	return out, err
}

// EvalAttr alternates EvalVars and EvalExpr up to a fixed iteration cap
// (spec §4.1 eval_attr), terminating as soon as a full vars+expr round
// produces no change. This is what lets an indirect variable ($$a) or a
// variable holding an element reference (#id@tl) become usable inside a
// later {{ }} span.
func EvalAttr(s string, view svg.ContextView) (string, error) {
	cur := s
	for i := 0; i < maxFixedPointIterations; i++ {
		afterVars, varsChanged := substituteVarsOnce(cur, view)
		afterExpr, exprChanged, err := substituteExprOnce(afterVars, view)
		if err != nil {
			return "", err
		}
		if !varsChanged && !exprChanged {
			return afterExpr, nil
		}
		cur = afterExpr
	}
	if strings.Contains(cur, "{{") || strings.ContainsRune(cur, '$') {
		return "", fmt.Errorf("expr: attribute did not converge after %d passes (possible variable cycle): %q", maxFixedPointIterations, s)
	}
	return cur, nil
}

// EvalCondition evaluates s (with or without {{ }} delimiters) as a
// boolean expression, used for attribute-level conditional inclusion.
func EvalCondition(s string, view svg.ContextView) (bool, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{{")
	s = strings.TrimSuffix(s, "}}")
	v, err := Eval(s, view)
	if err != nil {
		return false, err
	}
	return v.AsBool(), nil
}

// EvalList evaluates s (with or without {{ }} delimiters) and flattens
// the result into a string list, splitting on comma-space for a
// multi-element list value or returning a single-element slice
// otherwise.
func EvalList(s string, view svg.ContextView) ([]string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{{")
	s = strings.TrimSuffix(s, "}}")
	v, err := Eval(s, view)
	if err != nil {
		return nil, err
	}
	if v.Kind != KindList {
		return []string{v.AsString()}, nil
	}
	out := make([]string, len(v.List))
	for i, e := range v.List {
		out[i] = e.AsString()
	}
	return out, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// substituteVarsOnce implements one pass of eval_vars: "\$" escapes a
// literal "$"; "${name}" and "$name" substitute the variable's string
// value, or are left verbatim when the name is unknown.
func substituteVarsOnce(s string, view svg.ContextView) (string, bool) {
	var b strings.Builder
	changed := false
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == '$' {
			b.WriteByte('$')
			i += 2
			changed = true
			continue
		}
		if c == '$' && i+1 < len(s) && s[i+1] == '{' {
			if end := strings.IndexByte(s[i+2:], '}'); end >= 0 {
				name := s[i+2 : i+2+end]
				if v, ok := view.LookupVar(name); ok {
					b.WriteString(v)
					changed = true
				} else {
					b.WriteString(s[i : i+2+end+1])
				}
				i = i + 2 + end + 1
				continue
			}
		}
		if c == '$' && i+1 < len(s) && isIdentByte(s[i+1]) {
			j := i + 1
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			name := s[i+1 : j]
			if v, ok := view.LookupVar(name); ok {
				b.WriteString(v)
				changed = true
			} else {
				b.WriteString(s[i:j])
			}
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), changed
}

func substituteExprOnce(s string, view svg.ContextView) (string, bool, error) {
	var b strings.Builder
	changed := false
	rest := s
	for {
		start := strings.Index(rest, "{{")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start
		b.WriteString(rest[:start])
		inner := rest[start+2 : end]
		v, err := Eval(inner, view)
		if err != nil {
			return "", false, fmt.Errorf("expr: %q: %w", inner, err)
		}
		b.WriteString(v.AsString())
		changed = true
		rest = rest[end+2:]
	}
	return b.String(), changed, nil
}
