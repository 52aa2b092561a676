// Package errors wraps the standard library errors package with errors that carry structured log attributes and the
// source location where they were annotated.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

type annotatedError struct {
	msg   string
	err   error
	attrs []slog.Attr
	pc    uintptr
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// Wrap annotates err with msg and attrs. The attributes are emitted under error.annotations by [SlogError].
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) //nolint:mnd // skip runtime.Callers and Wrap.
	return &annotatedError{
		msg:   msg,
		err:   err,
		attrs: attrs,
		pc:    pcs[0],
	}
}

// NewSentinel creates a comparable error for use with [Is].
func NewSentinel(msg string) error {
	return errors.New(msg) //nolint:err113 // sentinels are created here.
}

// DecoratePanic converts a recovered panic value into an error pointing at the panicking line.
//
// Use it inside a deferred function: errors.DecoratePanic(recover()).
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	var cause error
	switch v := excp.(type) {
	case error:
		cause = v
	case string:
		cause = errors.New(v) //nolint:err113 // dynamic panic message.
	default:
		cause = fmt.Errorf("%v", v) //nolint:err113 // dynamic panic message.
	}
	return &annotatedError{
		msg:   "panic",
		err:   cause,
		attrs: nil,
		pc:    panicSite(),
	}
}

// panicSite returns the program counter of the frame that called panic, falling back to the caller of
// DecoratePanic's caller.
func panicSite() uintptr {
	const depth = 32
	pcs := make([]uintptr, depth)
	n := runtime.Callers(3, pcs) //nolint:mnd // skip runtime.Callers, panicSite and DecoratePanic.
	frames := runtime.CallersFrames(pcs[:n])
	afterPanic := false
	for {
		frame, more := frames.Next()
		if afterPanic {
			return frame.PC
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			break
		}
	}
	return pcs[0]
}

// SlogError builds an "error" attribute group with the message, the annotations of every wrapped layer, and the
// source of the innermost annotation.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}

	var (
		annotations []any
		pc          uintptr
	)
	for e := err; e != nil; e = errors.Unwrap(e) {
		var ae *annotatedError
		if !errors.As(e, &ae) {
			break
		}
		for _, a := range ae.attrs {
			annotations = append(annotations, a)
		}
		if ae.pc != 0 {
			pc = ae.pc
		}
		e = ae
	}

	attrs := []any{slog.String("message", err.Error())}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	if pc != 0 {
		attrs = append(attrs, slog.String("source", source(pc)))
	}
	return slog.Group("error", attrs...)
}

func source(pc uintptr) string {
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(frame.File)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(frame.Line))
	return b.String()
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

func New(text string) error {
	return errors.New(text) //nolint:err113 // thin wrapper.
}

// ErrUnsupported indicates that an operation is not available in the current environment.
var ErrUnsupported = errors.ErrUnsupported //nolint:gochecknoglobals // re-export.
