package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// EventKind distinguishes the four XML token kinds the resolver cares
// about; processing instructions and directives are skipped.
type EventKind int

const (
	EventStart EventKind = iota
	EventEnd
	EventText
	EventComment
)

// InputEvent is one flat XML token, annotated with the source line it
// started on (best-effort, derived from the decoder's byte offset) so
// error messages can point at a location.
type InputEvent struct {
	Kind  EventKind
	Name  string
	Attrs []Attr
	Text  string
	Line  int
}

// Attr is an ordered (key, value) pair, preserving the source document's
// attribute order — encoding/xml's Decoder is the only XML reader in
// reach that keeps this order (see DESIGN.md); svgparser, used elsewhere
// in this module for read-only analysis, does not.
type Attr struct {
	Key, Value string
}

// ReadEvents decodes an XML document into a flat event stream. Input
// encoding is sniffed via golang.org/x/net/html/charset so documents
// declaring non-UTF-8 encodings still decode correctly.
func ReadEvents(r io.Reader) ([]InputEvent, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: read input: %w", err)
	}
	utf8Reader, err := charset.NewReader(bytes.NewReader(raw), "application/xml")
	if err != nil {
		return nil, fmt.Errorf("document: charset detection: %w", err)
	}
	dec := xml.NewDecoder(utf8Reader)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var events []InputEvent
	lineOf := lineCounter(raw)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document: parse error near offset %d: %w", dec.InputOffset(), err)
		}
		line := lineOf(int(dec.InputOffset()))
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]Attr, len(t.Attr))
			for i, a := range t.Attr {
				attrs[i] = Attr{Key: a.Name.Local, Value: a.Value}
			}
			events = append(events, InputEvent{Kind: EventStart, Name: t.Name.Local, Attrs: attrs, Line: line})
		case xml.EndElement:
			events = append(events, InputEvent{Kind: EventEnd, Name: t.Name.Local, Line: line})
		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" {
				continue
			}
			events = append(events, InputEvent{Kind: EventText, Text: text, Line: line})
		case xml.Comment:
			events = append(events, InputEvent{Kind: EventComment, Text: string(t), Line: line})
		}
	}
	return events, nil
}

// lineCounter returns a function mapping a byte offset into raw to a
// 1-based source line number.
func lineCounter(raw []byte) func(offset int) int {
	newlines := make([]int, 0, bytes.Count(raw, []byte("\n")))
	for i, b := range raw {
		if b == '\n' {
			newlines = append(newlines, i)
		}
	}
	return func(offset int) int {
		line := 1
		for _, pos := range newlines {
			if pos < offset {
				line++
			} else {
				break
			}
		}
		return line
	}
}
