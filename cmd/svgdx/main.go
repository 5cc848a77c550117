// svgdx is a CLI tool for compiling the svgdx SVG dialect to plain SVG,
// and for analyzing, verifying and security-scanning the result.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	svgdx "github.com/codedstructure/svgdx"
	"github.com/codedstructure/svgdx/svg"
	"github.com/codedstructure/svgdx/svg/analyze"
	"github.com/codedstructure/svgdx/svg/security"
	"github.com/codedstructure/svgdx/svg/style"
	"github.com/codedstructure/svgdx/svg/verify"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "svgdx",
	Short:   "Compile the svgdx SVG dialect to plain SVG",
	Long:    `A CLI tool for compiling, analyzing, verifying and security-scanning SVG documents.`,
	Version: version,
}

// build command
var (
	buildOutput string
	buildSeed   uint64
	buildTheme  string
	buildNoAuto bool
	buildCheck  bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input>",
	Short: "Compile an svgdx document to plain SVG",
	Long: `Compile an svgdx document to plain SVG, resolving element
references, compound attributes, containment, connectors and
auto-styling.

Examples:
  svgdx build diagram.xml -o diagram.svg
  svgdx build diagram.xml --theme bold -o diagram.svg
  svgdx build diagram.xml --seed 7 -o diagram.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func runBuild(_ *cobra.Command, args []string) error {
	inputPath := args[0]

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	defer f.Close()

	cfg := svgdx.Config{
		Seed:           buildSeed,
		Theme:          style.Theme(buildTheme),
		UseLocalStyles: buildNoAuto,
	}

	out := ""
	if buildCheck {
		result, err := svgdx.CompileAndCheck(f, cfg)
		if err != nil {
			return fmt.Errorf("compile failed: %w", err)
		}
		out = result.Output
		if !result.Verified {
			fmt.Fprintln(os.Stderr, "⚠ output is not pure vector")
		}
		for _, t := range result.SecurityThreats {
			fmt.Fprintf(os.Stderr, "⚠ [%s/%s] %s\n", t.Type.Severity(), t.Type, t.Description)
		}
	} else {
		var err error
		out, err = svgdx.Compile(f, cfg)
		if err != nil {
			return fmt.Errorf("compile failed: %w", err)
		}
	}

	if buildOutput == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(buildOutput, []byte(out), 0600); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("✓ Compiled %s → %s\n", filepath.Base(inputPath), filepath.Base(buildOutput))
	return nil
}

// analyze command
var analyzeShowFix bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze SVG files for centering and padding",
	Long: `Analyze SVG files to check:
- ViewBox dimensions
- Content centering
- Padding percentages
- Suggested viewBox fixes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(_ *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	info, err := svg.GetPathInfo(path)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	var results []*analyze.Result
	if info.IsDir {
		results, err = analyze.Directory(path)
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	} else {
		result, err := analyze.SVG(path)
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
		results = []*analyze.Result{result}
	}

	hasAnyIssues := false
	for _, r := range results {
		status := "✓"
		if r.HasIssues {
			status = "✗"
			hasAnyIssues = true
		}

		fmt.Printf("%s %s\n", status, filepath.Base(r.FilePath))
		if r.ViewBox.Width > 0 {
			fmt.Printf("  ViewBox: %.1f %.1f %.1f %.1f\n", r.ViewBox.X, r.ViewBox.Y, r.ViewBox.Width, r.ViewBox.Height)
			fmt.Printf("  Content: %.1f,%.1f to %.1f,%.1f (%.1fx%.1f)\n",
				r.ContentBox.MinX, r.ContentBox.MinY, r.ContentBox.MaxX, r.ContentBox.MaxY,
				r.ContentBox.Width(), r.ContentBox.Height())
			fmt.Printf("  Padding: L:%.1f%% R:%.1f%% T:%.1f%% B:%.1f%%\n",
				r.PaddingLeft, r.PaddingRight, r.PaddingTop, r.PaddingBottom)
			fmt.Printf("  Center offset: X:%.1f Y:%.1f\n", r.CenterOffsetX, r.CenterOffsetY)
		}
		fmt.Printf("  Assessment: %s\n", r.Assessment)
		if analyzeShowFix && r.HasIssues && r.SuggestedViewBox != "" {
			fmt.Printf("  Suggested viewBox: %s\n", r.SuggestedViewBox)
		}
		fmt.Println()
	}

	if hasAnyIssues {
		return fmt.Errorf("one or more files have issues")
	}
	return nil
}

// verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify SVG files are pure vector",
	Long: `Verify SVG files are pure vector images without:
- Embedded binary data (base64 images)
- Data URIs
- External binary image references`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

// verify-all command (recursive verification for CI)
var verifyAllCmd = &cobra.Command{
	Use:   "verify-all [path]",
	Short: "Recursively verify all SVG files are pure vector",
	Long: `Recursively verify all SVG files in a directory tree are pure vector images.

This command is designed for CI pipelines to ensure generated SVG
output remains pure vector without embedded binary data.

Examples:
  svgdx verify-all output/
  svgdx verify-all .`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerifyAll,
}

func runVerifyAll(_ *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	results, err := verify.DirectoryRecursive(path)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	allValid := true
	validCount := 0
	for _, r := range results {
		if !r.IsSuccess() {
			allValid = false
			fmt.Printf("✗ %s\n", r.FilePath)
			for _, e := range r.Errors {
				fmt.Printf("  Error: %s\n", e)
			}
		} else {
			validCount++
		}
	}

	fmt.Printf("\n✓ Verified %d/%d SVG files as pure vector\n", validCount, len(results))

	if !allValid {
		return fmt.Errorf("one or more files failed verification")
	}
	return nil
}

func runVerify(_ *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	info, err := svg.GetPathInfo(path)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	var results []*verify.Result
	if info.IsDir {
		results, err = verify.Directory(path)
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	} else {
		result, err := verify.SVG(path)
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
		results = []*verify.Result{result}
	}

	allValid := true
	for _, r := range results {
		status := "✓"
		if !r.IsSuccess() {
			status = "✗"
			allValid = false
		}

		fmt.Printf("%s %s\n", status, filepath.Base(r.FilePath))
		if len(r.VectorElements) > 0 {
			fmt.Printf("  Vector elements: %s\n", strings.Join(r.VectorElements, ", "))
		}
		if len(r.Errors) > 0 {
			for _, e := range r.Errors {
				fmt.Printf("  Error: %s\n", e)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("one or more files failed verification")
	}
	return nil
}

// security command
var securityStandard bool

var securityCmd = &cobra.Command{
	Use:   "security [path]",
	Short: "Scan SVG files for embedded scripts and other threats",
	Long: `Scan SVG files for security threats:
- Script elements and javascript: URIs
- Inline event handler attributes
- External references
- Animation elements
- Style blocks and anchor elements
- DOCTYPE/ENTITY declarations (XXE risk)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSecurity,
}

func runSecurity(_ *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	info, err := svg.GetPathInfo(path)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	var results []*security.Result
	if info.IsDir {
		results, err = security.Directory(path)
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	} else {
		level := security.ScanLevelStrict
		if securityStandard {
			level = security.ScanLevelStandard
		}
		result, err := security.SVGWithLevel(path, level)
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
		results = []*security.Result{result}
	}

	allSecure := true
	for _, r := range results {
		status := "✓"
		if !r.IsSuccess() {
			status = "✗"
			allSecure = false
		}
		fmt.Printf("%s %s\n", status, filepath.Base(r.FilePath))
		for _, threat := range r.Threats {
			fmt.Printf("  [%s/%s] %s: %s\n", threat.Type.Severity(), threat.Type, threat.Description, threat.Match)
		}
		for _, e := range r.Errors {
			fmt.Printf("  Error: %s\n", e)
		}
	}

	if !allSecure {
		return fmt.Errorf("one or more files contain security threats")
	}
	return nil
}

// sanitize command
var sanitizeOutput string

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize <input>",
	Short: "Remove unsafe content from an SVG file",
	Long: `Strip script elements, event handler attributes and external
references from an SVG file, writing the cleaned result to a new file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSanitize,
}

func runSanitize(_ *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath := sanitizeOutput
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + ".sanitized" + ext
	}

	result, err := security.Sanitize(inputPath, outputPath, security.DefaultSanitizeOptions())
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	if !result.Sanitized {
		fmt.Printf("✓ %s already clean, wrote unchanged copy to %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
		return nil
	}

	fmt.Printf("✓ Sanitized %s → %s (%d threat(s) removed)\n", filepath.Base(inputPath), filepath.Base(outputPath), len(result.ThreatsRemoved))
	for _, t := range result.ThreatsRemoved {
		fmt.Printf("  [%s/%s] %s\n", t.Type.Severity(), t.Type, t.Description)
	}
	return nil
}

func init() {
	// build command
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Output file path (default: stdout)")
	buildCmd.Flags().Uint64Var(&buildSeed, "seed", 0, "Seed for random()/RandInt() determinism")
	buildCmd.Flags().StringVar(&buildTheme, "theme", "", "Auto-style theme (default, bold, fine, glass, light, dark)")
	buildCmd.Flags().BoolVar(&buildNoAuto, "no-auto-style", false, "Set Config.UseLocalStyles (the auto-style ruleset is still applied)")
	buildCmd.Flags().BoolVar(&buildCheck, "check", false, "Run pure-vector and security checks on the compiled output")
	rootCmd.AddCommand(buildCmd)

	// analyze command
	analyzeCmd.Flags().BoolVar(&analyzeShowFix, "fix", false, "Show suggested viewBox fixes")
	rootCmd.AddCommand(analyzeCmd)

	// verify command
	rootCmd.AddCommand(verifyCmd)

	// verify-all command
	rootCmd.AddCommand(verifyAllCmd)

	// security command
	securityCmd.Flags().BoolVar(&securityStandard, "standard", false, "Use standard scan level (skip animation/style/link checks)")
	rootCmd.AddCommand(securityCmd)

	// sanitize command
	sanitizeCmd.Flags().StringVarP(&sanitizeOutput, "output", "o", "", "Output file path (default: <input>.sanitized.<ext>)")
	rootCmd.AddCommand(sanitizeCmd)
}
