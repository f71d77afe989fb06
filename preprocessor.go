package mathjax

import (
	"context"
	"fmt"
)

// Name identifies the preprocessor in book.toml ([preprocessor.inline-mathjax]).
const Name = "inline-mathjax"

// UnsupportedRenderer is the one renderer name SupportsRenderer rejects.
// It exists to exercise the negative path of the supports handshake.
const UnsupportedRenderer = "not-supported"

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithMarkers sets the marker pair. Panics if either marker is empty.
func WithMarkers(m Markers) Option {
	if err := m.Validate(); err != nil {
		panic("mathjax: WithMarkers: " + err.Error())
	}
	return func(p *Preprocessor) {
		p.rewriter = NewRewriter(m)
	}
}

// WithWorkers sets how many chapters are rewritten concurrently.
// Zero selects a GOMAXPROCS-based count. Panics if n is negative.
func WithWorkers(n int) Option {
	if n < 0 {
		panic("mathjax: WithWorkers count must not be negative")
	}
	return func(p *Preprocessor) {
		p.workers = n
	}
}

// WithDiagnostics enables diagnostics. fn is called from the goroutine
// running Run, in document order.
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(p *Preprocessor) {
		p.onDiagnostic = fn
	}
}

// Preprocessor rewrites the inline math delimiters of every chapter of a book.
type Preprocessor struct {
	rewriter     *Rewriter
	workers      int
	onDiagnostic DiagnosticFunc
}

// NewPreprocessor creates a Preprocessor using DefaultMarkers unless overridden.
func NewPreprocessor(opts ...Option) *Preprocessor {
	p := &Preprocessor{rewriter: defaultRewriter}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the preprocessor name.
func (p *Preprocessor) Name() string {
	return Name
}

// SupportsRenderer reports whether the preprocessor works with renderer.
func (p *Preprocessor) SupportsRenderer(renderer string) bool {
	return renderer != UnsupportedRenderer
}

// Markers returns the marker pair in use.
func (p *Preprocessor) Markers() Markers {
	return p.rewriter.Markers()
}

// Workers returns the resolved number of chapter workers.
func (p *Preprocessor) Workers() int {
	return ResolveWorkers(p.workers)
}

// Report summarizes a Run.
type Report struct {
	Chapters    int // chapters with content
	Changed     int // chapters whose content was rewritten
	Delimiters  int // delimiters converted across all chapters
	Diagnostics int // diagnostics passed to the DiagnosticFunc
}

type chapterResult struct {
	content     string
	delimiters  int
	diagnostics []Diagnostic
}

// Run rewrites every chapter of book and returns the updated book JSON.
// Only chapter contents change. Cancellation of ctx aborts the run.
func (p *Preprocessor) Run(ctx context.Context, book []byte) ([]byte, *Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	chapters := Chapters(book)
	results := make([]chapterResult, len(chapters))

	err := forEachChapter(ctx, len(chapters), p.Workers(), func(idx int) {
		results[idx] = p.rewriteChapter(chapters[idx].Content)
	})
	if err != nil {
		return nil, nil, err
	}

	report := &Report{Chapters: len(chapters)}
	changed := make([]Chapter, 0, len(chapters))
	for i, res := range results {
		report.Delimiters += res.delimiters
		for _, d := range res.diagnostics {
			p.onDiagnostic(chapters[i].Name, d)
			report.Diagnostics++
		}
		if res.delimiters == 0 {
			continue
		}
		ch := chapters[i]
		ch.Content = res.content
		changed = append(changed, ch)
	}
	report.Changed = len(changed)

	out, err := ApplyChapters(book, changed)
	if err != nil {
		return nil, nil, fmt.Errorf("applying rewritten chapters: %w", err)
	}
	return out, report, nil
}

func (p *Preprocessor) rewriteChapter(content string) chapterResult {
	delims := Scan(content)
	res := chapterResult{
		content:    p.rewriter.apply(content, delims),
		delimiters: len(delims),
	}
	if p.onDiagnostic != nil {
		res.diagnostics = diagnose(content, delims)
	}
	return res
}
