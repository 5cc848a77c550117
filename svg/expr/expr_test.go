package expr

import (
	"testing"

	"github.com/codedstructure/svgdx/svg"
)

type fakeView struct {
	vars map[string]string
	bbox map[string]svg.BoundingBox
	rnd  float32
}

func (f *fakeView) ResolveElement(ref svg.ElRef) (*svg.SvgElement, error) {
	return nil, nil
}
func (f *fakeView) ResolveBBox(ref svg.ElRef) (svg.BoundingBox, error) {
	if ref.Kind == svg.RefID {
		if b, ok := f.bbox[ref.ID]; ok {
			return b, nil
		}
	}
	return svg.BoundingBox{}, nil
}
func (f *fakeView) LookupVar(name string) (string, bool) {
	v, ok := f.vars[name]
	return v, ok
}
func (f *fakeView) Random() float32          { return f.rnd }
func (f *fakeView) RandInt(a, b int) int     { return a }

func newFakeView() *fakeView {
	return &fakeView{vars: map[string]string{}, bbox: map[string]svg.BoundingBox{}}
}

func TestEvalArithmetic(t *testing.T) {
	v, err := Eval("2 + 3 * 4", newFakeView())
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v.AsNumber(); got != 14 {
		t.Errorf("got %v, want 14", got)
	}
}

func TestEvalPrecedenceAndParens(t *testing.T) {
	v, err := Eval("(2 + 3) * 4", newFakeView())
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v.AsNumber(); got != 20 {
		t.Errorf("got %v, want 20", got)
	}
}

func TestEvalEuclideanModulo(t *testing.T) {
	v, err := Eval("-7 % 3", newFakeView())
	if err != nil {
		t.Fatal(err)
	}
	got, _ := v.AsNumber()
	if got != 2 {
		t.Errorf("-7 %% 3 = %v, want 2 (Euclidean)", got)
	}
}

func TestEvalVariableLookup(t *testing.T) {
	view := newFakeView()
	view.vars["x"] = "42"
	v, err := Eval("x", view)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "42" {
		t.Errorf("got %q, want 42", v.AsString())
	}
}

func TestEvalUndefinedVariableErrors(t *testing.T) {
	if _, err := Eval("undefined_var", newFakeView()); err == nil {
		t.Error("expected error for undefined variable")
	}
}

func TestEvalFunctionCall(t *testing.T) {
	v, err := Eval("max(1, 5, 3)", newFakeView())
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v.AsNumber(); got != 5 {
		t.Errorf("max(1,5,3) = %v, want 5", got)
	}
}

func TestEvalAttrSubstitution(t *testing.T) {
	view := newFakeView()
	view.vars["n"] = "3"
	out, err := EvalAttr("width: {{ n * 10 }}px", view)
	if err != nil {
		t.Fatal(err)
	}
	if out != "width: 30px" {
		t.Errorf("got %q", out)
	}
}

func TestEvalAttrVariableChaining(t *testing.T) {
	view := newFakeView()
	view.vars["a"] = "{{ b + 1 }}"
	view.vars["b"] = "10"
	out, err := EvalAttr("{{ a }}", view)
	if err != nil {
		t.Fatal(err)
	}
	if out != "11" {
		t.Errorf("got %q, want 11", out)
	}
}

func TestEvalExponentVsRefDisambiguation(t *testing.T) {
	v, err := Eval("2^3", newFakeView())
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v.AsNumber(); got != 8 {
		t.Errorf("2^3 = %v, want 8 (exponent, not a ^3 reference)", got)
	}
}

func TestEvalElementReference(t *testing.T) {
	view := newFakeView()
	view.bbox["thing"] = svg.NewBox(0, 0, 10, 10)
	v, err := Eval("#thing", view)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "0, 0, 10, 10" {
		t.Errorf("#thing = %q, want the box tuple \"0, 0, 10, 10\"", v.AsString())
	}
}

func TestEvalElementReferenceScalar(t *testing.T) {
	view := newFakeView()
	view.bbox["thing"] = svg.NewBox(0, 0, 10, 20)
	v, err := Eval("#thing~cx", view)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v.AsNumber(); got != 5 {
		t.Errorf("#thing~cx = %v, want 5", got)
	}
}

func TestEvalElementReferenceLoc(t *testing.T) {
	view := newFakeView()
	view.bbox["thing"] = svg.NewBox(0, 0, 10, 20)
	v, err := Eval("#thing@br", view)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "10, 20" {
		t.Errorf("#thing@br = %q, want \"10, 20\"", v.AsString())
	}
}

func TestEvalAlphabeticComparisonOperator(t *testing.T) {
	v, err := Eval("if(1 gt 0, 'yes', 'no')", newFakeView())
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "yes" {
		t.Errorf("got %q, want yes", v.AsString())
	}
}

func TestEvalIntDivEuclidean(t *testing.T) {
	v, err := Eval("-7 // 3", newFakeView())
	if err != nil {
		t.Fatal(err)
	}
	got, _ := v.AsNumber()
	if got != -3 {
		t.Errorf("-7 // 3 = %v, want -3 (Euclidean)", got)
	}
}

func TestEvalDollarVariable(t *testing.T) {
	view := newFakeView()
	view.vars["x"] = "42"
	v, err := Eval("$x", view)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsString() != "42" {
		t.Errorf("got %q, want 42", v.AsString())
	}
}

func TestEvalAttrDollarVarSubstitution(t *testing.T) {
	view := newFakeView()
	view.vars["n"] = "3"
	out, err := EvalAttr("width: $n px", view)
	if err != nil {
		t.Fatal(err)
	}
	if out != "width: 3 px" {
		t.Errorf("got %q", out)
	}
}

func TestEvalAttrEscapedDollar(t *testing.T) {
	out, err := EvalAttr(`\$n`, newFakeView())
	if err != nil {
		t.Fatal(err)
	}
	if out != "$n" {
		t.Errorf("got %q, want literal $n", out)
	}
}
