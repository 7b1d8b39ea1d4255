// Package decorator layers behavior onto a file writer one wrapper at a
// time.
//
// Every decorator is an io.WriteCloser that forwards to the next one, so
// checksumming, encryption, logging, and counting compose freely and the
// consumer still sees a plain writer. Close propagates down the whole chain.
package decorator

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"log/slog"

	"github.com/starford/mannaz/adapter"
)

// Decorator wraps a writer with additional behavior.
type Decorator func(io.WriteCloser) io.WriteCloser

// Chain applies decorators so that the first argument becomes the outermost
// layer: Chain(w, A, B) writes through A, then B, then w.
func Chain(w io.WriteCloser, ds ...Decorator) io.WriteCloser {
	for i := len(ds) - 1; i >= 0; i-- {
		w = ds[i](w)
	}
	return w
}

// NopCloser turns a bare io.Writer into an io.WriteCloser with a no-op
// Close, mirroring io.NopCloser for readers.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// ChecksumWriter hashes everything written through it.
type ChecksumWriter struct {
	next io.WriteCloser
	h    hash.Hash
}

// Checksum decorates next with SHA-256 hashing of the passing bytes.
func Checksum(next io.WriteCloser) io.WriteCloser {
	return &ChecksumWriter{next: next, h: sha256.New()}
}

func (c *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := c.next.Write(p)
	if n > 0 {
		c.h.Write(p[:n])
	}
	return n, err
}

func (c *ChecksumWriter) Close() error { return c.next.Close() }

// Sum returns the hex-encoded SHA-256 digest of the bytes written so far.
func (c *ChecksumWriter) Sum() string {
	return hex.EncodeToString(c.h.Sum(nil))
}

// CountingWriter tracks the number of bytes written through it.
type CountingWriter struct {
	next io.WriteCloser
	n    int64
}

// Counting decorates next with a byte counter.
func Counting(next io.WriteCloser) io.WriteCloser {
	return &CountingWriter{next: next}
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.next.Write(p)
	c.n += int64(n)
	return n, err
}

func (c *CountingWriter) Close() error { return c.next.Close() }

// Count returns the total bytes written so far.
func (c *CountingWriter) Count() int64 { return c.n }

// Cipher decorates a writer with XOR scrambling through the adapter chapter's
// legacy cipher.
func Cipher(c *adapter.Cipher) Decorator {
	return func(next io.WriteCloser) io.WriteCloser {
		return &cipherWriter{w: adapter.NewCipherWriter(next, c), next: next}
	}
}

type cipherWriter struct {
	w    io.Writer
	next io.WriteCloser
}

func (c *cipherWriter) Write(p []byte) (int, error) { return c.w.Write(p) }
func (c *cipherWriter) Close() error                { return c.next.Close() }

// Logging decorates a writer with slog events: a debug line per write and an
// info line with the running total on Close.
func Logging(logger *slog.Logger, name string) Decorator {
	return func(next io.WriteCloser) io.WriteCloser {
		return &loggingWriter{next: next, logger: logger, name: name}
	}
}

type loggingWriter struct {
	next   io.WriteCloser
	logger *slog.Logger
	name   string
	total  int64
}

func (l *loggingWriter) Write(p []byte) (int, error) {
	n, err := l.next.Write(p)
	l.total += int64(n)
	l.logger.Debug("write",
		slog.String("writer", l.name),
		slog.Int("bytes", n))
	if err != nil {
		l.logger.Warn("write failed",
			slog.String("writer", l.name),
			slog.String("error", err.Error()))
	}
	return n, err
}

func (l *loggingWriter) Close() error {
	err := l.next.Close()
	l.logger.Info("closed",
		slog.String("writer", l.name),
		slog.Int64("total_bytes", l.total))
	return err
}
