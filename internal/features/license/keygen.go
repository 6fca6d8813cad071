package license

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	keyAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	keyBlockCount = 5
	keyBlockSize  = 5
)

// GenerateKey produces a new key of five dash-separated blocks of five
// uppercase alphanumeric characters, e.g. X7K2P-9QRTM-AB3CD-EF8GH-JK4LM.
func GenerateKey() (string, error) {
	chars, err := randomKeyChars(keyBlockCount * keyBlockSize)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(keyBlockCount*keyBlockSize + keyBlockCount - 1)

	for i, ch := range chars {
		if i > 0 && i%keyBlockSize == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(ch)
	}

	return sb.String(), nil
}

// randomKeyChars draws n characters uniformly from the key alphabet. Bytes
// beyond the largest multiple of the alphabet size are rejected so no
// character is over-represented.
func randomKeyChars(n int) ([]byte, error) {
	limit := 256 - 256%len(keyAlphabet)

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, keyAlphabet[int(b)%len(keyAlphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return out, nil
}
