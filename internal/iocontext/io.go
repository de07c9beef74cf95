// Package iocontext carries command I/O streams through context for testable output.
package iocontext

import (
	"context"
	"io"
	"os"
)

type ctxKey struct{}

// IO bundles the streams a command reads and writes.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// With attaches the streams to the context.
func With(ctx context.Context, streams IO) context.Context {
	return context.WithValue(ctx, ctxKey{}, streams)
}

// From returns the streams from the context, defaulting any unset stream to
// the process-level one.
func From(ctx context.Context) IO {
	streams, _ := ctx.Value(ctxKey{}).(IO)
	if streams.Stdin == nil {
		streams.Stdin = os.Stdin
	}
	if streams.Stdout == nil {
		streams.Stdout = os.Stdout
	}
	if streams.Stderr == nil {
		streams.Stderr = os.Stderr
	}
	return streams
}
