// Package adapter plugs a legacy byte-scrambling API into the io stream
// interfaces.
//
// Cipher predates any notion of streaming: it scrambles whole buffers and
// keeps a rolling key position between calls, so it cannot be handed to code
// that expects an io.Writer or io.Reader. CipherWriter and CipherReader are
// the adapters that bridge that gap without touching the legacy type.
package adapter

import (
	"errors"
	"io"
)

// Cipher is the legacy scrambling API: a symmetric XOR keystream with a
// rolling key index. Scrambling the scrambled bytes with a Cipher in the
// same starting state restores the original.
//
// The rolling index is what makes the type stateful: two Scramble calls
// continue the keystream where the previous call stopped. A Cipher value is
// not safe for concurrent use.
type Cipher struct {
	key []byte
	idx int
}

// NewCipher creates a cipher for key. The key must be non-empty.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, errors.New("adapter: empty cipher key")
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Cipher{key: k}, nil
}

// Scramble XORs p against the keystream and returns a new slice, advancing
// the rolling key position by len(p).
func (c *Cipher) Scramble(p []byte) []byte {
	out := make([]byte, len(p))
	for i, b := range p {
		out[i] = b ^ c.key[c.idx]
		c.idx = (c.idx + 1) % len(c.key)
	}
	return out
}

// Reset rewinds the keystream to the start of the key.
func (c *Cipher) Reset() { c.idx = 0 }

// CipherWriter adapts a Cipher to io.Writer: bytes written are scrambled
// before being forwarded to the underlying writer.
type CipherWriter struct {
	w io.Writer
	c *Cipher
}

// NewCipherWriter wraps w so that all writes pass through c.
func NewCipherWriter(w io.Writer, c *Cipher) *CipherWriter {
	return &CipherWriter{w: w, c: c}
}

// Write scrambles p and forwards it. The keystream position only advances
// for bytes actually accepted downstream, so a short write leaves the
// cipher consistent with what reached the underlying writer.
func (cw *CipherWriter) Write(p []byte) (int, error) {
	scrambled := cw.c.Scramble(p)
	n, err := cw.w.Write(scrambled)
	if n < len(p) {
		// Rewind the keystream past the bytes that never made it out.
		cw.c.idx = ((cw.c.idx-(len(p)-n))%len(cw.c.key) + len(cw.c.key)) % len(cw.c.key)
		if err == nil {
			err = io.ErrShortWrite
		}
	}
	return n, err
}

// CipherReader adapts a Cipher to io.Reader: bytes read from the underlying
// reader are unscrambled in place.
type CipherReader struct {
	r io.Reader
	c *Cipher
}

// NewCipherReader wraps r so that all reads pass through c.
func NewCipherReader(r io.Reader, c *Cipher) *CipherReader {
	return &CipherReader{r: r, c: c}
}

func (cr *CipherReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		copy(p, cr.c.Scramble(p[:n]))
	}
	return n, err
}
