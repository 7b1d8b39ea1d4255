// Package iterator reads colon-delimited records from a stream with an
// explicit end-of-input condition.
//
// The Go rendition of the pattern is the io contract itself: Next returns
// io.EOF when the stream is exhausted, exactly like the readers in the
// standard library, and All adapts the same stream to a range-over-func
// sequence for Go 1.23+ callers.
package iterator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Record is one key/value pair parsed from a line of the form "key: value".
type Record struct {
	Key   string
	Value string
}

// ParseError reports a malformed line. The stream is still usable after a
// ParseError; only the offending line is lost.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("iterator: line %d: malformed record %q", e.Line, e.Text)
}

// RecordReader iterates records from an io.Reader, one line at a time.
// Blank lines and lines starting with '#' are skipped.
type RecordReader struct {
	sc   *bufio.Scanner
	line int
	err  error
}

// NewRecordReader creates a reader over r.
func NewRecordReader(r io.Reader) *RecordReader {
	return &RecordReader{sc: bufio.NewScanner(r)}
}

// Next returns the next record. At the end of input it returns io.EOF; any
// later call keeps returning io.EOF. A *ParseError on one line does not end
// the iteration.
func (r *RecordReader) Next() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return Record{}, &ParseError{Line: r.line, Text: text}
		}
		return Record{Key: strings.TrimSpace(key), Value: strings.TrimSpace(value)}, nil
	}
	if scanErr := r.sc.Err(); scanErr != nil {
		r.err = fmt.Errorf("iterator: read: %w", scanErr)
	} else {
		r.err = io.EOF
	}
	return Record{}, r.err
}

// All returns a range-over-func view of the remaining records. Iteration
// ends at io.EOF. A *ParseError is yielded with a zero Record and iteration
// continues on the next line; a read error is sticky in Next, so it is
// yielded once and the sequence ends.
func (r *RecordReader) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) {
				return
			}
			var perr *ParseError
			if err != nil && !errors.As(err, &perr) {
				return
			}
		}
	}
}
