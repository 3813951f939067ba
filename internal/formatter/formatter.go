// Package formatter validates raw input and assembles the formatted page:
// parsed tree, breadcrumb tracker, interaction handler and stylesheet.
package formatter

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"unicode/utf8"

	"github.com/rebeliceyang/lazyjson/internal/breadcrumb"
	"github.com/rebeliceyang/lazyjson/internal/interaction"
	"github.com/rebeliceyang/lazyjson/internal/jsonv"
	"github.com/rebeliceyang/lazyjson/internal/theme"
	"github.com/rebeliceyang/lazyjson/internal/tree"
)

// MaxLength is the largest input, in characters, that will be formatted
const MaxLength = 3_000_000

// Result notes
const (
	NoteNoContent  = "no content"
	NoteTooLong    = "too long"
	NoteBadStart   = "does not start with { or ["
	NoteNotJSON    = "does not parse as JSON"
	NoteNotObject  = "technically JSON but not an object or array"
	NoteUnexpected = "unexpected error"
	NoteDone       = "done"
)

var startPattern = regexp.MustCompile(`^\s*[{\[]`)

// Result reports whether the input was formatted and why not
type Result struct {
	Formatted bool
	Note      string
	// RawLength is nil only when formatting failed unexpectedly
	RawLength *int
}

func result(formatted bool, note string, length int) Result {
	return Result{Formatted: formatted, Note: note, RawLength: &length}
}

// Options configure a Formatter
type Options struct {
	Builder   *tree.Builder
	Themes    *theme.Service
	Clipboard interaction.Clipboard
	Notices   *interaction.Notices
	Logger    *slog.Logger
}

// Formatter turns raw text into a Page
type Formatter struct {
	builder   *tree.Builder
	themes    *theme.Service
	clipboard interaction.Clipboard
	notices   *interaction.Notices
	logger    *slog.Logger
}

// New creates a formatter. Nil options fall back to an eager builder, a
// theme service without a store and a discarding logger.
func New(opts Options) *Formatter {
	f := &Formatter{
		builder:   opts.Builder,
		themes:    opts.Themes,
		clipboard: opts.Clipboard,
		notices:   opts.Notices,
		logger:    opts.Logger,
	}
	if f.logger == nil {
		f.logger = slog.New(slog.DiscardHandler)
	}
	if f.builder == nil {
		f.builder = tree.NewBuilder(false, tree.DefaultMaxDepth)
	}
	if f.themes == nil {
		f.themes = theme.NewService(nil, nil, f.logger)
	}
	return f
}

// Format checks raw and, when it is a JSON object or array, builds the
// page. Rejections are reported in the Result; the page is nil unless
// Formatted is true.
func (f *Formatter) Format(ctx context.Context, raw string) (page *Page, res Result) {
	value, res := f.check(raw)
	if !res.Formatted {
		return nil, res
	}

	defer func() {
		if rec := recover(); rec != nil {
			f.logger.Error("failed to set up formatted view", "panic", fmt.Sprint(rec))
			page = nil
			res = Result{Formatted: false, Note: NoteUnexpected}
		}
	}()

	return f.setup(ctx, raw, value), res
}

// check runs the input gate in order and parses the accepted input
func (f *Formatter) check(raw string) (*jsonv.Value, Result) {
	if raw == "" {
		return nil, result(false, NoteNoContent, 0)
	}

	length := utf8.RuneCountInString(raw)
	if length > MaxLength {
		return nil, result(false, NoteTooLong, length)
	}

	if !startPattern.MatchString(raw) {
		return nil, result(false, NoteBadStart, length)
	}

	value, err := jsonv.Parse([]byte(raw))
	if err != nil {
		f.logger.Debug("input rejected", "error", err)
		return nil, result(false, NoteNotJSON, length)
	}

	if !value.Kind().IsCollection() {
		return nil, result(false, NoteNotObject, length)
	}

	return value, result(true, NoteDone, length)
}

func (f *Formatter) setup(ctx context.Context, raw string, value *jsonv.Value) *Page {
	doc := tree.NewDocument(value, f.builder)
	tracker := breadcrumb.NewTracker(doc.Root)
	handler := interaction.NewHandler(doc, tracker, interaction.Deps{
		Clipboard: f.clipboard,
		Notices:   f.notices,
		Logger:    f.logger,
	})

	setting := f.themes.Setting(ctx)
	return &Page{
		Raw:      raw,
		Doc:      doc,
		Tracker:  tracker,
		Observer: breadcrumb.NewObserver(tracker),
		Handler:  handler,
		Setting:  setting,
		CSS:      f.themes.CSS(ctx, setting),
		logger:   f.logger,
	}
}

// Reformat checks raw again and rebuilds page's tree in place, keeping the
// collapse state of entries whose IDs survive. A rejected input leaves the
// page untouched.
func (f *Formatter) Reformat(page *Page, raw string) (res Result) {
	value, res := f.check(raw)
	if !res.Formatted {
		return res
	}

	defer func() {
		if rec := recover(); rec != nil {
			f.logger.Error("failed to rebuild formatted view", "panic", fmt.Sprint(rec))
			res = Result{Formatted: false, Note: NoteUnexpected}
		}
	}()

	page.Raw = raw
	page.Doc.Rebuild(value)
	page.Handler.Reset()
	return res
}
