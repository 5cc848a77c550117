package layout

import (
	"strings"

	"github.com/huandu/xstrings"
	"golang.org/x/text/width"

	"github.com/codedstructure/svgdx/svg"
)

// TextLine is one rendered line of a text/md expansion, carrying the
// inline style classes a commonmark-subset run produced.
type TextLine struct {
	Text    string
	Bold    bool
	Italic  bool
	Mono    bool
}

// ExpandTextAttr turns a "text"/"md" attribute into a sequence of lines
// ready to become <tspan> children of a synthesized <text> element (spec
// §4.5 "Text attribute expansion"). md runs a commonmark-subset inline
// parser; text does \n-escape processing and collapses runs of spaces.
func ExpandTextAttr(e *svg.SvgElement) []TextLine {
	if md, ok := e.Get("md"); ok {
		return expandMarkdown(unescapeNewlines(md))
	}
	if text, ok := e.Get("text"); ok {
		lines := strings.Split(unescapeNewlines(text), "\n")
		out := make([]TextLine, len(lines))
		for i, l := range lines {
			// plain text runs aren't reflowed, but runs of literal spaces
			// from source indentation would otherwise throw off VisualWidth
			out[i] = TextLine{Text: xstrings.Squeeze(l, " ")}
		}
		return out
	}
	return nil
}

func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// expandMarkdown parses a tiny commonmark subset: **bold**, *italic* (or
// _italic_), and `monospace` inline spans, one TextLine per run (the
// spec's driver is expected to merge same-line runs into consecutive
// tspans sharing a line's y coordinate; that merge is the caller's job).
func expandMarkdown(s string) []TextLine {
	var lines []TextLine
	for _, raw := range strings.Split(s, "\n") {
		lines = append(lines, markdownLineRuns(raw)...)
		lines = append(lines, TextLine{Text: "\x00linebreak"})
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func markdownLineRuns(line string) []TextLine {
	var out []TextLine
	i := 0
	for i < len(line) {
		switch {
		case strings.HasPrefix(line[i:], "**"):
			if end := strings.Index(line[i+2:], "**"); end >= 0 {
				out = append(out, TextLine{Text: line[i+2 : i+2+end], Bold: true})
				i += 2 + end + 2
				continue
			}
		case line[i] == '*' || line[i] == '_':
			marker := line[i]
			if end := strings.IndexByte(line[i+1:], marker); end >= 0 {
				out = append(out, TextLine{Text: line[i+1 : i+1+end], Italic: true})
				i += 1 + end + 1
				continue
			}
		case line[i] == '`':
			if end := strings.IndexByte(line[i+1:], '`'); end >= 0 {
				out = append(out, TextLine{Text: line[i+1 : i+1+end], Mono: true})
				i += 1 + end + 1
				continue
			}
		}
		j := i
		for j < len(line) && line[j] != '*' && line[j] != '_' && line[j] != '`' {
			j++
		}
		if j == i {
			j++
		}
		out = append(out, TextLine{Text: line[i:j]})
		i = j
	}
	return out
}

// VisualWidth estimates a line's rendered width in character cells,
// counting east-asian wide/fullwidth runes as 2 and everything else as 1
// - used to pick a text-anchor offset for multi-line blocks without a
// real font metrics table.
func VisualWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

// StyleClasses returns the d-text-* class names a run's markdown styling
// implies.
func (l TextLine) StyleClasses() []string {
	var cls []string
	if l.Bold {
		cls = append(cls, "d-text-bold")
	}
	if l.Italic {
		cls = append(cls, "d-text-italic")
	}
	if l.Mono {
		cls = append(cls, "d-text-monospace")
	}
	return cls
}
