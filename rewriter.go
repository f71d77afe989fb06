package mathjax

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// inlineDelimiterExpr matches a '$' that is not escaped and has no '$' neighbor.
// Both halves of a "$$" pair are rejected, so block math never matches.
const inlineDelimiterExpr = `(?<!\\)(?<!\$)\$(?!\$)`

// delimiterPattern is compiled on first use and shared read-only afterwards.
// The expression is a constant; MustCompile panics if it is ever broken.
var delimiterPattern = sync.OnceValue(func() *regexp2.Regexp {
	return regexp2.MustCompile(inlineDelimiterExpr, regexp2.None)
})

// Role tells whether a delimiter opens or closes an inline expression.
type Role int

const (
	Opening Role = iota
	Closing
)

func (r Role) String() string {
	if r == Closing {
		return "closing"
	}
	return "opening"
}

// Delimiter is one inline math candidate.
type Delimiter struct {
	Offset int // byte offset of the '$' in the scanned text
	Role   Role
}

// Markers are written in place of inline delimiters.
type Markers struct {
	Open  string
	Close string
}

// DefaultMarkers is the MathJax inline pair.
var DefaultMarkers = Markers{Open: `\(`, Close: `\)`}

// Validate reports an error if either marker is empty.
func (m Markers) Validate() error {
	if m.Open == "" || m.Close == "" {
		return ErrEmptyMarker
	}
	return nil
}

// withDefaults fills empty fields from DefaultMarkers.
func (m Markers) withDefaults() Markers {
	if m.Open == "" {
		m.Open = DefaultMarkers.Open
	}
	if m.Close == "" {
		m.Close = DefaultMarkers.Close
	}
	return m
}

// Rewriter converts inline delimiters to a fixed marker pair.
// A Rewriter holds no mutable state and is safe for concurrent use.
type Rewriter struct {
	markers     Markers
	opening     string // Open followed by a space
	closing     string // a space followed by Close
	maxReplaced int
}

// NewRewriter creates a Rewriter. Empty marker fields fall back to DefaultMarkers.
func NewRewriter(m Markers) *Rewriter {
	m = m.withDefaults()
	r := &Rewriter{
		markers: m,
		opening: m.Open + " ",
		closing: " " + m.Close,
	}
	r.maxReplaced = max(len(r.opening), len(r.closing))
	return r
}

// Markers returns the marker pair in use.
func (r *Rewriter) Markers() Markers {
	return r.markers
}

var defaultRewriter = NewRewriter(DefaultMarkers)

// Rewrite converts every inline delimiter in content using DefaultMarkers.
func Rewrite(content string) string {
	return defaultRewriter.Rewrite(content)
}

// Rewrite converts every inline delimiter in content.
// Text without candidates is returned unchanged.
func (r *Rewriter) Rewrite(content string) string {
	return r.apply(content, Scan(content))
}

// apply writes the markers at the scanned positions.
// delims must come from Scan(content).
func (r *Rewriter) apply(content string, delims []Delimiter) string {
	if len(delims) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content) + len(delims)*r.maxReplaced)

	last := 0
	for _, d := range delims {
		b.WriteString(content[last:d.Offset])
		if d.Role == Opening {
			b.WriteString(r.opening)
		} else {
			b.WriteString(r.closing)
		}
		last = d.Offset + 1
	}
	b.WriteString(content[last:])
	return b.String()
}

// Scan returns the inline delimiters of content in order of appearance.
// Roles alternate strictly: an odd count leaves the last one Opening.
func Scan(content string) []Delimiter {
	if !strings.Contains(content, "$") {
		return nil
	}

	re := delimiterPattern()
	cur := runeCursor{s: content}

	var delims []Delimiter
	// Errors only come from match timeouts, which are never set on this pattern.
	m, err := re.FindStringMatch(content)
	for err == nil && m != nil {
		role := Opening
		if len(delims)%2 == 1 {
			role = Closing
		}
		delims = append(delims, Delimiter{Offset: cur.byteOffset(m.Index), Role: role})
		m, err = re.FindNextMatch(m)
	}
	return delims
}

// runeCursor maps the rune indexes reported by regexp2 to byte offsets.
// Lookups must be made in increasing order.
type runeCursor struct {
	s     string
	runes int
	bytes int
}

func (c *runeCursor) byteOffset(runeIndex int) int {
	for c.runes < runeIndex && c.bytes < len(c.s) {
		_, w := utf8.DecodeRuneInString(c.s[c.bytes:])
		c.bytes += w
		c.runes++
	}
	return c.bytes
}
