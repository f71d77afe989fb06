package mathjax

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/alnah/mdbook-inline-mathjax/internal/codespan"
)

// DiagnosticKind classifies a suspicious delimiter.
type DiagnosticKind int

const (
	// UnpairedDelimiter marks the last delimiter of a text with an odd count.
	// It is still rewritten as an opening marker.
	UnpairedDelimiter DiagnosticKind = iota

	// DelimiterInCode marks a delimiter inside a code span or code block.
	// It is still rewritten; the author probably meant a literal dollar.
	DelimiterInCode
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnpairedDelimiter:
		return "unpaired-delimiter"
	case DelimiterInCode:
		return "delimiter-in-code"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic points at a delimiter whose rewrite is likely unintended.
// Line and Column are 1-based; Column counts runes.
type Diagnostic struct {
	Kind   DiagnosticKind
	Offset int
	Line   int
	Column int
}

// Message describes the diagnostic for humans.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case UnpairedDelimiter:
		return "unpaired inline math delimiter will be rewritten as an opening marker"
	case DelimiterInCode:
		return `inline math delimiter inside code will be rewritten (escape it as \$)`
	default:
		return d.Kind.String()
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message())
}

// DiagnosticFunc receives the diagnostics of one chapter.
type DiagnosticFunc func(chapter string, d Diagnostic)

// Diagnose reports delimiters of content whose rewrite is likely unintended.
// It never affects what Rewrite produces.
func Diagnose(content string) []Diagnostic {
	return diagnose(content, Scan(content))
}

// diagnose works on delimiters already returned by Scan(content).
func diagnose(content string, delims []Delimiter) []Diagnostic {
	if len(delims) == 0 {
		return nil
	}

	var out []Diagnostic
	code := codespan.Find([]byte(content))
	for _, d := range delims {
		if code.Contains(d.Offset) {
			out = append(out, newDiagnostic(content, DelimiterInCode, d.Offset))
		}
	}

	if len(delims)%2 == 1 {
		out = append(out, newDiagnostic(content, UnpairedDelimiter, delims[len(delims)-1].Offset))
	}

	slices.SortStableFunc(out, func(a, b Diagnostic) int {
		return a.Offset - b.Offset
	})
	return out
}

func newDiagnostic(content string, kind DiagnosticKind, offset int) Diagnostic {
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	return Diagnostic{
		Kind:   kind,
		Offset: offset,
		Line:   strings.Count(content[:offset], "\n") + 1,
		Column: utf8.RuneCountInString(content[lineStart:offset]) + 1,
	}
}
