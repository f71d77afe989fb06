// Package codespan locates code spans and code blocks in Markdown source.
// Offsets are bytes into the source passed to Find.
package codespan

import (
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Region is a half-open byte range [Start, Stop) of code content.
type Region struct {
	Start int
	Stop  int
}

// Regions is sorted by Start and non-overlapping.
type Regions []Region

// Contains reports whether offset falls inside any region.
func (rs Regions) Contains(offset int) bool {
	i := sort.Search(len(rs), func(i int) bool { return rs[i].Stop > offset })
	return i < len(rs) && rs[i].Start <= offset
}

// newMarkdown builds a parser per call. Parsing is the only work done, and
// callers run Find from several goroutines at once.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

// Find returns the content ranges of every code span, fenced code block and
// indented code block in source.
func Find(source []byte) Regions {
	doc := newMarkdown().Parser().Parse(text.NewReader(source))

	var regions Regions
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindCodeSpan:
			if r, ok := spanRegion(n); ok {
				regions = append(regions, r)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				regions = append(regions, Region{Start: seg.Start, Stop: seg.Stop})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	sort.Slice(regions, func(i, j int) bool { return regions[i].Start < regions[j].Start })
	return regions
}

// spanRegion covers the text segments of an inline code span.
func spanRegion(n ast.Node) (Region, bool) {
	r := Region{Start: -1}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			continue
		}
		if r.Start < 0 {
			r.Start = t.Segment.Start
		}
		r.Stop = t.Segment.Stop
	}
	return r, r.Start >= 0
}
