package style

import "testing"

func TestResolveTagRule(t *testing.T) {
	rs := DefaultRuleset(ThemeDefault)
	attrs := rs.Resolve("rect", nil)
	if attrs["rx"] != "2" {
		t.Errorf("attrs = %v, want rx=2", attrs)
	}
}

func TestResolveColourSuffix(t *testing.T) {
	rs := DefaultRuleset(ThemeDefault)
	attrs := rs.Resolve("rect", []string{"box-red"})
	if attrs["fill"] != "#d32f2f" {
		t.Errorf("fill = %q, want #d32f2f", attrs["fill"])
	}
}

func TestResolveHexColourSuffix(t *testing.T) {
	rs := DefaultRuleset(ThemeDefault)
	attrs := rs.Resolve("rect", []string{"box-00ff00"})
	if attrs["fill"] != "#00ff00" {
		t.Errorf("fill = %q, want #00ff00", attrs["fill"])
	}
}

func TestResolveNumericSuffix(t *testing.T) {
	rs := DefaultRuleset(ThemeDefault)
	attrs := rs.Resolve("line", []string{"thick-4"})
	if attrs["stroke-width"] != "4" {
		t.Errorf("stroke-width = %q, want 4", attrs["stroke-width"])
	}
}

func TestResolveUnknownThemeFallsBack(t *testing.T) {
	rs := DefaultRuleset("not-a-theme")
	if rs.Theme != ThemeDefault {
		t.Errorf("Theme = %v, want default", rs.Theme)
	}
}
