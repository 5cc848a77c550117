// Package svgdx compiles an svgdx-dialect SVG document into plain,
// browser-renderable SVG: element references, compound attribute
// shorthand, containment, connectors and auto-styling are all resolved
// away, leaving only standard SVG markup.
package svgdx

import (
	"fmt"
	"io"
	"strings"

	"github.com/codedstructure/svgdx/svg/document"
	"github.com/codedstructure/svgdx/svg/security"
	"github.com/codedstructure/svgdx/svg/style"
	"github.com/codedstructure/svgdx/svg/transform"
	"github.com/codedstructure/svgdx/svg/verify"
)

// Config holds the options that drive a single compilation pass.
type Config struct {
	// Seed seeds the deterministic RNG backing random()/randint().
	// Zero is a valid seed and produces a fixed, repeatable sequence.
	Seed uint64
	// DepthLimit caps container nesting and use/xlink:href reference
	// chains, guarding against runaway recursion. Zero selects the
	// package default.
	DepthLimit int
	// Theme selects the auto-style rule table applied to unstyled
	// elements and class suffixes.
	Theme style.Theme
	// UseLocalStyles is passed to the transform driver, which does not
	// read it: the auto-style ruleset is applied either way.
	UseLocalStyles bool
	// Vars seeds the root variable scope, as if each entry had been
	// set as an attribute on a synthetic enclosing element.
	Vars map[string]string
}

// Result reports what a compile produced, beyond the rendered markup
// itself.
type Result struct {
	Output          string
	SecurityScanned bool
	SecurityThreats []security.Threat
	Verified        bool
	VectorElements  []string
}

// Compile reads an svgdx document from r and returns the compiled
// plain-SVG markup.
func Compile(r io.Reader, cfg Config) (string, error) {
	if err := validateTheme(cfg.Theme); err != nil {
		return "", &Error{Kind: InvalidData, Message: "validating config", Err: err}
	}
	events, err := document.ReadEvents(r)
	if err != nil {
		return "", &Error{Kind: Parse, Message: "reading document", Err: err}
	}
	doc, err := document.BuildDocument(events)
	if err != nil {
		return "", &Error{Kind: Document, Message: "building document tree", Err: err}
	}

	driverCfg := transform.Config{
		Seed:           cfg.Seed,
		DepthLimit:     cfg.DepthLimit,
		Theme:          cfg.Theme,
		UseLocalStyles: cfg.UseLocalStyles,
		Vars:           cfg.Vars,
	}
	driver := transform.NewDriver(doc, driverCfg)

	var out strings.Builder
	if err := driver.Run(&out); err != nil {
		return "", &Error{Kind: InternalLogic, Message: "resolving document", Err: err}
	}
	return out.String(), nil
}

// CompileAndCheck compiles r, then additionally runs the pure-vector
// verifier and the security scanner over the resulting markup,
// reporting their findings in the returned Result rather than failing
// the compile outright - a caller wanting to gate on either check can
// inspect the Result fields.
func CompileAndCheck(r io.Reader, cfg Config) (*Result, error) {
	out, err := Compile(r, cfg)
	if err != nil {
		return nil, err
	}
	result := &Result{Output: out}

	verifyResult := verify.ScanMarkup(out)
	result.Verified = verifyResult.IsSuccess()
	result.VectorElements = verifyResult.VectorElements

	secResult := security.ScanContent(out, nil)
	result.SecurityScanned = true
	result.SecurityThreats = secResult.Threats

	return result, nil
}

// validateTheme rejects a config naming an unknown theme string before
// it reaches the style package, which would otherwise silently fall
// back to the default ruleset.
func validateTheme(t style.Theme) error {
	switch t {
	case "", style.ThemeDefault, style.ThemeBold, style.ThemeFine, style.ThemeGlass, style.ThemeLight, style.ThemeDark:
		return nil
	default:
		return fmt.Errorf("svgdx: unknown theme %q", t)
	}
}
