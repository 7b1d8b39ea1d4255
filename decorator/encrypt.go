package decorator

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/mannaz/adapter"
)

// EncryptFile copies src to dst through a decorated writer chain:
// logging over counting over checksumming over XOR encryption. It returns
// the number of plaintext bytes processed and the hex SHA-256 digest of the
// plaintext (the checksum layer sits outside the cipher).
func EncryptFile(src, dst string, key []byte, logger *slog.Logger) (int64, string, error) {
	cipher, err := adapter.NewCipher(key)
	if err != nil {
		return 0, "", err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, "", fmt.Errorf("decorator: open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, "", fmt.Errorf("decorator: create destination: %w", err)
	}

	encrypted := Cipher(cipher)(out)
	checksummed := Checksum(encrypted).(*ChecksumWriter)
	counted := Counting(checksummed).(*CountingWriter)
	w := Logging(logger, "encrypt")(counted)

	if _, err := io.Copy(w, in); err != nil {
		_ = w.Close()
		return 0, "", fmt.Errorf("decorator: encrypt copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, "", fmt.Errorf("decorator: close: %w", err)
	}
	return counted.Count(), checksummed.Sum(), nil
}

// DecryptFile reverses EncryptFile, writing the recovered plaintext to dst.
func DecryptFile(src, dst string, key []byte) (int64, error) {
	cipher, err := adapter.NewCipher(key)
	if err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("decorator: open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("decorator: create destination: %w", err)
	}
	defer out.Close()

	n, err := io.Copy(out, adapter.NewCipherReader(in, cipher))
	if err != nil {
		return n, fmt.Errorf("decorator: decrypt copy: %w", err)
	}
	return n, nil
}
