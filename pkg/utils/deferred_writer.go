package utils

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// DeferredWriter holds writes in memory until Flush is called. It is used to
// park stderr output while a full screen program owns the terminal.
// Safe for concurrent use.
type DeferredWriter struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	limit   int
	dropped int
}

// NewDeferredWriter returns a writer that keeps at most limit bytes. Writes
// that do not fit are dropped whole and counted. A limit of 0 is unbounded.
func NewDeferredWriter(limit int) *DeferredWriter {
	return &DeferredWriter{limit: limit}
}

// Write stores p, or drops it when the buffer is full. It never fails.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.limit > 0 && d.buf.Len()+len(p) > d.limit {
		d.dropped += len(p)
		return len(p), nil
	}
	return d.buf.Write(p)
}

// Len returns the number of buffered bytes.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Len()
}

// Flush writes all buffered data to w, followed by a note when writes were
// dropped, and resets the writer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	dropped := d.dropped
	d.dropped = 0

	if d.buf.Len() > 0 {
		if _, err := d.buf.WriteTo(w); err != nil {
			return err
		}
	}

	if dropped > 0 {
		_, err := fmt.Fprintf(w, "(%d bytes of output dropped)\n", dropped)
		return err
	}
	return nil
}
