package mathjax

import (
	"fmt"
	"io"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Context is the first element of the [context, book] pair mdBook sends on stdin.
type Context struct {
	Root          string
	Renderer      string
	MDBookVersion string
	Config        gjson.Result // book.toml, as JSON
}

// Settings holds the [preprocessor.inline-mathjax] table of book.toml.
// Zero fields were not set.
type Settings struct {
	Markers Markers
	Workers int
}

// Settings reads this preprocessor's table from the book configuration.
func (c *Context) Settings() Settings {
	table := c.Config.Get("preprocessor." + Name)
	if !table.IsObject() {
		return Settings{}
	}
	return Settings{
		Markers: Markers{
			Open:  table.Get("open-marker").String(),
			Close: table.Get("close-marker").String(),
		},
		Workers: int(table.Get("workers").Int()),
	}
}

// Chapter is a book section that carries Markdown content.
type Chapter struct {
	Name    string
	Path    string // sjson path of the content field
	Content string
}

// ParseInput reads the [context, book] JSON pair.
// It returns the parsed context and the raw book bytes, untouched.
func ParseInput(r io.Reader) (*Context, []byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading preprocessor input: %w", err)
	}
	return parseInput(data)
}

func parseInput(data []byte) (*Context, []byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, fmt.Errorf("%w: invalid JSON", ErrMalformedInput)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, nil, fmt.Errorf("%w: expected a [context, book] array", ErrMalformedInput)
	}

	items := root.Array()
	if len(items) == 0 || !items[0].IsObject() {
		return nil, nil, fmt.Errorf("%w: missing context object", ErrMalformedInput)
	}
	if len(items) < 2 || !items[1].IsObject() {
		return nil, nil, ErrMissingBook
	}
	if len(items) > 2 {
		return nil, nil, fmt.Errorf("%w: expected 2 elements, got %d", ErrMalformedInput, len(items))
	}

	ctx := items[0]
	return &Context{
		Root:          ctx.Get("root").String(),
		Renderer:      ctx.Get("renderer").String(),
		MDBookVersion: ctx.Get("mdbook_version").String(),
		Config:        ctx.Get("config"),
	}, []byte(items[1].Raw), nil
}

// sectionsKey returns the top-level list key: "sections" before mdBook 0.5, "items" after.
func sectionsKey(book gjson.Result) string {
	if book.Get("items").IsArray() {
		return "items"
	}
	return "sections"
}

// Chapters lists every chapter of book, depth first, in document order.
// Separators, part titles and chapters without content are skipped.
func Chapters(book []byte) []Chapter {
	root := gjson.ParseBytes(book)
	key := sectionsKey(root)

	var chapters []Chapter
	collectChapters(root.Get(key), key, &chapters)
	return chapters
}

func collectChapters(items gjson.Result, prefix string, out *[]Chapter) {
	if !items.IsArray() {
		return
	}

	i := 0
	items.ForEach(func(_, item gjson.Result) bool {
		ch := item.Get("Chapter")
		if ch.IsObject() {
			base := prefix + "." + strconv.Itoa(i) + ".Chapter"
			if content := ch.Get("content"); content.Type == gjson.String {
				*out = append(*out, Chapter{
					Name:    ch.Get("name").String(),
					Path:    base + ".content",
					Content: content.String(),
				})
			}
			collectChapters(ch.Get("sub_items"), base+".sub_items", out)
		}
		i++
		return true
	})
}

// ApplyChapters writes chapter contents back into book.
// Every other byte of the book passes through as it was.
func ApplyChapters(book []byte, chapters []Chapter) ([]byte, error) {
	out := book
	for _, ch := range chapters {
		var err error
		out, err = sjson.SetBytes(out, ch.Path, ch.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: chapter %q: %v", ErrApplyContent, ch.Name, err)
		}
	}
	return out, nil
}
