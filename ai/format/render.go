package format

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// PlainText renders the document without structural markers. Blocks are separated by a
// blank line and paragraph lines by a single newline.
func (d Document) PlainText() string {
	parts := make([]string, 0, len(d))
	for _, b := range d {
		switch b.Kind {
		case KindTitle, KindHeading:
			parts = append(parts, b.Text)
		case KindParagraph:
			lines := make([]string, len(b.Lines))
			for i, l := range b.Lines {
				lines[i] = l.Text()
			}
			parts = append(parts, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

// Markdown renders the document as CommonMark. Source punctuation is backslash-escaped so
// that nothing the model wrote is read as markup.
func (d Document) Markdown() string {
	parts := make([]string, 0, len(d))
	for _, b := range d {
		switch b.Kind {
		case KindTitle:
			parts = append(parts, "## "+escapeMarkdown(b.Text))
		case KindHeading:
			parts = append(parts, "### "+escapeMarkdown(b.Text))
		case KindParagraph:
			lines := make([]string, len(b.Lines))
			for i, l := range b.Lines {
				var sb strings.Builder
				for _, s := range l {
					if s.Emphasis {
						sb.WriteString("**" + escapeMarkdown(s.Text) + "**")
					} else {
						sb.WriteString(escapeMarkdown(s.Text))
					}
				}
				lines[i] = sb.String()
			}
			parts = append(parts, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

func escapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && isASCIIPunct(byte(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// RenderHTML converts the document to an HTML fragment.
func RenderHTML(d Document) (string, error) {
	if len(d) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(d.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
