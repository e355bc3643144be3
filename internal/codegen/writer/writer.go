// Package writer builds generated source text line by line. Lines are indented
// with one tab per level; output units convert tabs to the configured width.
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates lines of generated source at a tracked depth
type Writer struct {
	buf         strings.Builder
	depth       int
	atLineStart bool
}

// New creates an empty writer at depth zero
func New() *Writer {
	return &Writer{atLineStart: true}
}

// Indent opens one level
func (w *Writer) Indent() {
	w.depth++
}

// Dedent closes one level; it stops at zero
func (w *Writer) Dedent() {
	if w.depth > 0 {
		w.depth--
	}
}

// Write appends text, indenting it when it starts a line. Empty text never
// indents, so blank lines carry no trailing tabs.
func (w *Writer) Write(s string) {
	if s == "" {
		return
	}
	if w.atLineStart {
		w.buf.WriteString(strings.Repeat("\t", w.depth))
		w.atLineStart = false
	}
	w.buf.WriteString(s)
}

// WriteLine appends s and ends the line
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.buf.WriteByte('\n')
	w.atLineStart = true
}

// WriteLinef is WriteLine with fmt formatting
func (w *Writer) WriteLinef(format string, args ...any) {
	w.WriteLine(fmt.Sprintf(format, args...))
}

// BlankLine separates declarations. It never doubles a blank line and does
// nothing on an empty writer.
func (w *Writer) BlankLine() {
	if w.buf.Len() > 0 && !strings.HasSuffix(w.buf.String(), "\n\n") {
		w.WriteLine("")
	}
}

// WriteIndented writes a multi-line fragment at the current depth. Trailing
// newlines of the fragment are dropped.
func (w *Writer) WriteIndented(fragment string) {
	fragment = strings.TrimRight(fragment, "\n")
	if fragment == "" {
		return
	}
	for _, line := range strings.Split(fragment, "\n") {
		w.WriteLine(line)
	}
}

// WriteBlock writes opener, the body one level deeper, then closer
func (w *Writer) WriteBlock(opener, closer string, body func()) {
	w.WriteLine(opener)
	w.Indent()
	body()
	w.Dedent()
	w.WriteLine(closer)
}

// WriteDocComment writes doc as // lines; empty doc writes nothing
func (w *Writer) WriteDocComment(doc string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		w.WriteLine("// " + strings.TrimSpace(line))
	}
}

// String returns the text written so far
func (w *Writer) String() string {
	return w.buf.String()
}
