package decorator

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/mannaz/adapter"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChain_OrderIsOutsideIn(t *testing.T) {
	var buf bytes.Buffer
	var order []string
	tag := func(name string) Decorator {
		return func(next io.WriteCloser) io.WriteCloser {
			return writeFunc(func(p []byte) (int, error) {
				order = append(order, name)
				return next.Write(p)
			})
		}
	}
	w := Chain(NopCloser(&buf), tag("outer"), tag("inner"))
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
	if buf.String() != "x" {
		t.Errorf("buf = %q", buf.String())
	}
}

type writeFunc func([]byte) (int, error)

func (f writeFunc) Write(p []byte) (int, error) { return f(p) }
func (writeFunc) Close() error                  { return nil }

func TestChecksumWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := Checksum(NopCloser(&buf)).(*ChecksumWriter)
	payload := []byte("hello checksum")
	if _, err := cw.Write(payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := sha256.Sum256(payload)
	if got := cw.Sum(); got != hex.EncodeToString(want[:]) {
		t.Errorf("Sum = %s, want %s", got, hex.EncodeToString(want[:]))
	}
	if !bytes.Equal(buf.Bytes(), payload) {
		t.Error("checksum layer must pass bytes through unchanged")
	}
}

func TestCountingWriter(t *testing.T) {
	var buf bytes.Buffer
	cw := Counting(NopCloser(&buf)).(*CountingWriter)
	_, _ = cw.Write([]byte("12345"))
	_, _ = cw.Write([]byte("678"))
	if cw.Count() != 8 {
		t.Errorf("Count = %d, want 8", cw.Count())
	}
}

func TestCipherDecorator_ChecksumOutsideSeesPlaintext(t *testing.T) {
	key := []byte("sigil")
	cipher, _ := adapter.NewCipher(key)

	var ciphertext bytes.Buffer
	encrypted := Cipher(cipher)(NopCloser(&ciphertext))
	checksummed := Checksum(encrypted).(*ChecksumWriter)

	plain := []byte("decorators compose")
	if _, err := checksummed.Write(plain); err != nil {
		t.Fatalf("write: %v", err)
	}
	if bytes.Equal(ciphertext.Bytes(), plain) {
		t.Fatal("cipher layer did not transform output")
	}
	want := sha256.Sum256(plain)
	if checksummed.Sum() != hex.EncodeToString(want[:]) {
		t.Error("checksum outside the cipher must hash plaintext")
	}
}

func TestEncryptDecryptFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.txt")
	enc := filepath.Join(dir, "cipher.bin")
	dec := filepath.Join(dir, "restored.txt")

	plain := []byte("guard this file with an old trick\n")
	if err := os.WriteFile(src, plain, 0o644); err != nil {
		t.Fatal(err)
	}

	n, digest, err := EncryptFile(src, enc, []byte("key"), discardLogger())
	if err != nil {
		t.Fatalf("EncryptFile: %v", err)
	}
	if n != int64(len(plain)) {
		t.Errorf("n = %d, want %d", n, len(plain))
	}
	want := sha256.Sum256(plain)
	if digest != hex.EncodeToString(want[:]) {
		t.Errorf("digest = %s", digest)
	}

	encrypted, _ := os.ReadFile(enc)
	if bytes.Equal(encrypted, plain) {
		t.Fatal("encrypted file equals plaintext")
	}

	if _, err := DecryptFile(enc, dec, []byte("key")); err != nil {
		t.Fatalf("DecryptFile: %v", err)
	}
	restored, _ := os.ReadFile(dec)
	if !bytes.Equal(restored, plain) {
		t.Errorf("restored = %q, want %q", restored, plain)
	}
}

func TestEncryptFile_EmptyKey(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "p")
	_ = os.WriteFile(src, []byte("x"), 0o644)
	if _, _, err := EncryptFile(src, filepath.Join(dir, "c"), nil, discardLogger()); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestEncryptFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := EncryptFile(filepath.Join(dir, "absent"), filepath.Join(dir, "c"), []byte("k"), discardLogger()); err == nil {
		t.Error("expected error for missing source")
	}
}
