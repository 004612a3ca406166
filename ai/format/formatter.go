// Package format turns raw model output into structured, display-ready blocks.
//
// The formatter never trusts markup produced by the model. It strips a fixed set of
// characters and then infers the title, section headings and emphasised words from
// plain-text heuristics.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind is the structural class of a Block.
type Kind int

const (
	// KindTitle is the single document title.
	KindTitle Kind = iota
	// KindHeading is a section heading.
	KindHeading
	// KindParagraph is a group of consecutive text lines.
	KindParagraph
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so kinds serialise by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind := KindTitle; kind <= KindParagraph; kind++ {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("format: unknown block kind %q", text)
}

// Span is a run of text inside a paragraph line.
type Span struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

// Line is one source line of a paragraph.
type Line []Span

// Text returns the line content without emphasis markers.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Block is one structurally classified unit of output text.
// Title and heading blocks carry Text; paragraph blocks carry Lines.
type Block struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text,omitempty"`
	Lines []Line `json:"lines,omitempty"`
}

// Document is the ordered result of Format.
type Document []Block

// Title returns the title text, if any.
func (d Document) Title() (string, bool) {
	for _, b := range d {
		if b.Kind == KindTitle {
			return b.Text, true
		}
	}
	return "", false
}

const (
	titleMinLen   = 3
	titleMaxLen   = 200
	headingMaxLen = 80
	headingWords  = 6
)

var sanitizer = strings.NewReplacer(
	"#", "",
	"*", "",
	"`", "",
	"'", "",
	"â€”", " - ",
)

// Sanitize removes the characters the formatter never lets through and repairs the
// mojibake em-dash sequence.
func Sanitize(raw string) string {
	return strings.TrimSpace(sanitizer.Replace(raw))
}

var (
	headingKeywordRe = regexp.MustCompile(`(?i)^(` + alternation(HeadingKeywords) + `)\b`)
	emphasisRe       = regexp.MustCompile(`(?i)\b(` + alternation(EmphasisWords) + `)\b`)
)

func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

// Format classifies raw generated text into a Document. It is pure and total:
// empty input yields an empty Document.
func Format(raw string) Document {
	cleaned := Sanitize(raw)
	if cleaned == "" {
		return Document{}
	}

	lines := strings.Split(cleaned, "\n")
	doc := Document{}
	var para *Block
	flush := func() {
		if para != nil {
			doc = append(doc, *para)
			para = nil
		}
	}

	titled := false
	for i, rawLine := range lines {
		line := strings.TrimSpace(strings.TrimSuffix(rawLine, "\r"))
		if line == "" {
			flush()
			continue
		}

		n := utf8.RuneCountInString(line)
		if !titled && n > titleMinLen && n < titleMaxLen {
			titled = true
			flush()
			doc = append(doc, Block{Kind: KindTitle, Text: line})
			continue
		}

		prevBlank := i > 0 && strings.TrimSpace(lines[i-1]) == ""
		if isHeading(line, n, prevBlank) {
			flush()
			doc = append(doc, Block{Kind: KindHeading, Text: line})
			continue
		}

		if para == nil {
			para = &Block{Kind: KindParagraph}
		}
		para.Lines = append(para.Lines, emphasize(line))
	}
	flush()

	return doc
}

func isHeading(line string, n int, prevBlank bool) bool {
	if n >= headingMaxLen || strings.HasSuffix(line, ",") {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	if headingKeywordRe.MatchString(line) {
		return true
	}
	if n > 2 && !strings.ContainsFunc(line, unicode.IsLower) {
		return true
	}
	first, _ := utf8.DecodeRuneInString(line)
	return prevBlank &&
		unicode.IsUpper(first) &&
		len(strings.Split(line, " ")) <= headingWords &&
		!strings.HasSuffix(line, ".")
}

func emphasize(line string) Line {
	matches := emphasisRe.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return Line{{Text: line}}
	}

	out := make(Line, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			out = append(out, Span{Text: line[last:m[0]]})
		}
		out = append(out, Span{Text: line[m[0]:m[1]], Emphasis: true})
		last = m[1]
	}
	if last < len(line) {
		out = append(out, Span{Text: line[last:]})
	}
	return out
}
