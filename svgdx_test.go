package svgdx

import (
	"strings"
	"testing"
)

func TestCompileExpandsCompoundAttrs(t *testing.T) {
	out, err := Compile(strings.NewReader(`<svg><rect xy="1,2" wh="3,4"/></svg>`), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `x="1"`) || !strings.Contains(out, `width="3"`) {
		t.Errorf("output = %q, missing expanded geometry", out)
	}
}

func TestCompileIsDeterministicForAGivenSeed(t *testing.T) {
	src := `<svg><rect wh="10,10" x="{{random(0, 100)}}" y="0"/></svg>`
	a, err := Compile(strings.NewReader(src), Config{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile(strings.NewReader(src), Config{Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same seed produced different output:\n%q\n%q", a, b)
	}
}

func TestCompileRejectsUnknownTheme(t *testing.T) {
	_, err := Compile(strings.NewReader(`<svg/>`), Config{Theme: "not-a-theme"})
	if err == nil {
		t.Fatal("expected an error for an unknown theme")
	}
	var svgErr *Error
	if !asError(err, &svgErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if svgErr.Kind != InvalidData {
		t.Errorf("Kind = %v, want InvalidData", svgErr.Kind)
	}
}

func TestCompileRejectsMalformedXML(t *testing.T) {
	_, err := Compile(strings.NewReader(`<svg><rect`), Config{})
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestCompileAndCheckFlagsEmbeddedData(t *testing.T) {
	src := `<svg><image xlink:href="data:image/png;base64,AAAA"/></svg>`
	result, err := CompileAndCheck(strings.NewReader(src), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Verified {
		t.Error("expected Verified=false for embedded base64 image data")
	}
}

func asError(err error, target **Error) bool {
	svgErr, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = svgErr
	return true
}
