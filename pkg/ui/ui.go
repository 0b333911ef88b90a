// Package ui writes console output. When the destination is a terminal,
// headings are styled with lipgloss and markdown is rendered with glamour;
// otherwise text passes through verbatim.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	lipgloss "github.com/charmbracelet/lipgloss"
	termenv "github.com/muesli/termenv"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Writer struct {
	w        io.Writer
	tty      bool
	width    int
	renderer *glamour.TermRenderer
}

type Opt func(*Writer)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultWidth = 80
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewWriter returns a writer to w. Styling is enabled when w is a terminal.
func NewWriter(w io.Writer, opts ...Opt) *Writer {
	self := &Writer{w: w, width: defaultWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		self.tty = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			self.width = width
		}
	}
	for _, opt := range opts {
		opt(self)
	}
	if self.tty {
		stylePath := "dark"
		if !termenv.HasDarkBackground() {
			stylePath = "light"
		}
		if r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(stylePath),
			glamour.WithWordWrap(self.width),
		); err == nil {
			self.renderer = r
		}
	}
	return self
}

// WithPlain disables styling regardless of the destination.
func WithPlain() Opt {
	return func(w *Writer) {
		w.tty = false
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsTerminal returns true if output is styled
func (w *Writer) IsTerminal() bool {
	return w.tty
}

// Width returns the output width in columns
func (w *Writer) Width() int {
	return w.width
}

func (w *Writer) Println(args ...any) {
	fmt.Fprintln(w.w, args...)
}

func (w *Writer) Printf(format string, args ...any) {
	fmt.Fprintf(w.w, format, args...)
}

// Heading writes a single line of text, in bold on a terminal.
func (w *Writer) Heading(text string) {
	if w.tty {
		text = headingStyle.Render(text)
	}
	fmt.Fprintln(w.w, text)
}

// Rule writes a separator line such as "--- response ---", dimmed on a terminal.
func (w *Writer) Rule(text string) {
	if w.tty {
		text = dimStyle.Render(text)
	}
	fmt.Fprintln(w.w, text)
}

// Markdown writes markdown text, rendered on a terminal. The output always
// ends with a newline.
func (w *Writer) Markdown(text string) {
	if w.renderer != nil {
		if rendered, err := w.renderer.Render(text); err == nil {
			text = strings.Trim(rendered, "\n")
		}
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	fmt.Fprint(w.w, text)
}
