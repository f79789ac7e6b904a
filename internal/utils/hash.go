package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// HashReader computes the SHA-1 digest of everything read from r and returns
// it hex-encoded. This is the digest the photo server reports as a photo's
// hash, so local files can be matched against remote photos.
//
// Example usage:
//
//	sum, err := utils.HashReader(strings.NewReader("data"))
func HashReader(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile computes the hex-encoded SHA-1 digest of the file at path.
//
// Returns:
//
//	string - hex-encoded SHA-1 digest
//	error  - non-nil if the file cannot be opened or read
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sum, err := HashReader(f)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return sum, nil
}
