// Package streams provides IOStreams adapters for the confstack Loader. It
// offers ready-to-use implementations that can write to stdout/stderr,
// discard output, capture output in memory buffers, or forward messages to
// structured loggers like slog.
package streams

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
)

// IOStreams defines the minimal contract for user-facing streams used by the
// confstack Loader. Types that implement these three methods can be passed to
// confstack.WithStreams(...) even if they are defined in a different package.
type IOStreams interface {
	In() io.Reader
	Out() io.Writer
	ErrOut() io.Writer
}

// BasicIOStreams is a simple implementation of IOStreams that forwards writes
// to the supplied io.Writer targets. Use the helpers DefaultIOStreams,
// Writers, Discard, and Slog to construct values quickly.
type BasicIOStreams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (s BasicIOStreams) In() io.Reader     { return s.in }
func (s BasicIOStreams) Out() io.Writer    { return s.out }
func (s BasicIOStreams) ErrOut() io.Writer { return s.errOut }

// DefaultIOStreams returns a BasicIOStreams backed by os.Stdin, os.Stdout and os.Stderr.
func DefaultIOStreams() BasicIOStreams {
	return BasicIOStreams{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// Writers returns a BasicIOStreams that writes Out to out and ErrOut to err.
// In is set to os.Stdin.
func Writers(out, err io.Writer) BasicIOStreams {
	return BasicIOStreams{in: os.Stdin, out: out, errOut: err}
}

// Discard returns a BasicIOStreams that drops all output.
func Discard() BasicIOStreams {
	return Writers(io.Discard, io.Discard)
}

// ---------- Buffers (capture then inspect) ----------

// BuffersStreams captures output into bytes.Buffers. Use it to accumulate
// notices and inspect them after a Build completes. It is not safe for
// concurrent writers; the Loader itself never writes concurrently.
type BuffersStreams struct {
	InR    io.Reader
	OutBuf *bytes.Buffer
	ErrBuf *bytes.Buffer
}

// Buffers creates a new BuffersStreams with fresh buffers for Out and ErrOut.
func Buffers() *BuffersStreams {
	return &BuffersStreams{
		InR:    os.Stdin,
		OutBuf: &bytes.Buffer{},
		ErrBuf: &bytes.Buffer{},
	}
}

func (b *BuffersStreams) In() io.Reader     { return b.InR }
func (b *BuffersStreams) Out() io.Writer    { return b.OutBuf }
func (b *BuffersStreams) ErrOut() io.Writer { return b.ErrBuf }

// Strings returns the current contents of the Out and ErrOut buffers.
func (b *BuffersStreams) Strings() (out, err string) {
	return b.OutBuf.String(), b.ErrBuf.String()
}

// Reset clears both Out and ErrOut buffers.
func (b *BuffersStreams) Reset() {
	b.OutBuf.Reset()
	b.ErrBuf.Reset()
}

// ---------- slog adapter ----------

// slogWriter adapts slog.Logger to io.Writer and trims trailing newlines.
type slogWriter struct {
	l     *slog.Logger
	level slog.Level
}

func (w slogWriter) Write(p []byte) (int, error) {
	// trim trailing newline so each Write is one log record
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.l.Log(context.Background(), w.level, string(p))
	return n, nil
}

// Slog returns a BasicIOStreams that writes Loader notices to a slog.Logger.
// Out messages are logged at the info level, ErrOut messages at the err
// level.
func Slog(l *slog.Logger, info, err slog.Level) BasicIOStreams {
	return BasicIOStreams{
		in:     os.Stdin,
		out:    slogWriter{l: l, level: info},
		errOut: slogWriter{l: l, level: err},
	}
}
