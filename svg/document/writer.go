package document

import (
	"fmt"
	"io"
	"strings"
)

// Write serializes the tag tree back to standard SVG/XML, in document
// order. Attribute values are already formatted (via svg.Fstr) by the
// resolver when it calls SvgElement.Set, so Write itself does no numeric
// formatting.
func Write(w io.Writer, doc *Document) error {
	return writeTag(w, doc.Root, 0)
}

func writeTag(w io.Writer, t *Tag, depth int) error {
	if t.IsText {
		_, err := io.WriteString(w, escapeText(t.Text))
		return err
	}
	if t.IsComment {
		_, err := fmt.Fprintf(w, "<!--%s-->", t.Text)
		return err
	}
	if t.Element == nil || t.Element.Name == "#root" {
		// synthetic root: emit children only
		for _, c := range t.Children {
			if err := writeTag(w, c, depth); err != nil {
				return err
			}
		}
		return nil
	}

	var b strings.Builder
	b.WriteString("<")
	b.WriteString(t.Element.Name)
	for _, kv := range t.Element.Attrs() {
		fmt.Fprintf(&b, " %s=%q", kv.Key, escapeAttr(kv.Value))
	}
	if cls := t.Element.ClassAttr(); cls != "" {
		fmt.Fprintf(&b, " class=%q", cls)
	}
	if len(t.Children) == 0 && !t.Element.HasText {
		b.WriteString("/>")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString(">")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range t.Children {
		if err := writeTag(w, c, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "</%s>", t.Element.Name)
	return err
}

func escapeAttr(s string) string {
	r := strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")
	return r.Replace(s)
}

func escapeText(s string) string {
	r := strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;")
	return r.Replace(s)
}
