package trace

import (
	"io"
	"strings"
)

// LineWriter writes trace lines so that every line except the last ends in
// a newline. The most recent line is held back until a newer one arrives or
// Flush is called.
type LineWriter struct {
	w       io.Writer
	pending string
	has     bool
	err     error
}

// NewLineWriter wraps w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// WriteRecord queues the rendering of r.
func (lw *LineWriter) WriteRecord(r Record) error {
	return lw.WriteLine(r.String())
}

// WriteLine queues line, writing the previously queued line followed by a newline.
// After the first write error every call returns that error.
func (lw *LineWriter) WriteLine(line string) error {
	if lw.err != nil {
		return lw.err
	}
	if lw.has {
		if _, err := io.WriteString(lw.w, lw.pending+"\n"); err != nil {
			lw.err = err
			return err
		}
	}
	lw.pending = strings.TrimRight(line, "\n")
	lw.has = true
	return nil
}

// Flush writes the held-back line without a terminator. Flushing twice is a no-op.
func (lw *LineWriter) Flush() error {
	if lw.err != nil {
		return lw.err
	}
	if !lw.has {
		return nil
	}
	lw.has = false
	if _, err := io.WriteString(lw.w, lw.pending); err != nil {
		lw.err = err
		return err
	}
	return nil
}
