// Package testhelpers contains helpers shared by the package tests and the end-to-end tests.
package testhelpers

import (
	"io"
	"strings"
	"testing"
)

// Writer is an [io.Writer] forwarding to t.Log so that logs show up only for failing tests.
type Writer struct {
	t        testing.TB
	testDone chan struct{}
}

// NewWriter creates a Writer bound to t.
//
// Writing after the test has completed panics. This catches servers and timers that outlive their test.
func NewWriter(t testing.TB) io.Writer {
	w := &Writer{
		t:        t,
		testDone: make(chan struct{}),
	}
	t.Cleanup(func() {
		close(w.testDone)
	})
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	select {
	case <-w.testDone:
		panic("testwriter: write after test completion, is something missing a t.Cleanup?")
	default:
		if output := strings.TrimSuffix(string(p), "\n"); output != "" {
			w.t.Log(output)
		}
		return len(p), nil
	}
}
