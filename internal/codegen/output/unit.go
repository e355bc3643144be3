package output

import (
	"bytes"
	"strings"
)

// Formatter post-processes a finalized unit, e.g. go/format for Go sources
type Formatter func(name string, src []byte) ([]byte, error)

// Unit is the buffer for one generated file. Generators append to it
// sequentially; the Emitter finalizes and writes it exactly once.
type Unit struct {
	name      string
	raw       bool
	buf       bytes.Buffer
	formatter Formatter
	closed    bool
}

// Name returns the logical file name of the unit
func (u *Unit) Name() string {
	return u.name
}

// Write appends text to the unit
func (u *Unit) Write(s string) {
	u.buf.WriteString(s)
}

// WriteLine appends text followed by a newline
func (u *Unit) WriteLine(s string) {
	u.buf.WriteString(s)
	u.buf.WriteByte('\n')
}

// WriteBytes appends raw bytes, used for binary units
func (u *Unit) WriteBytes(b []byte) {
	u.buf.Write(b)
}

// SetFormatter installs a formatter that runs after indentation is normalized
func (u *Unit) SetFormatter(f Formatter) {
	u.formatter = f
}

// Len returns the number of bytes buffered so far
func (u *Unit) Len() int {
	return u.buf.Len()
}

// Normalize replaces every tab with indent spaces (indent 0 keeps tabs) and
// trims a single trailing blank line.
func Normalize(content string, indent int) string {
	if indent > 0 {
		content = strings.ReplaceAll(content, "\t", strings.Repeat(" ", indent))
	}
	if strings.HasSuffix(content, "\n\n") {
		content = content[:len(content)-1]
	}
	return content
}
