package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint computes a BLAKE2b-128 hex digest of file content.
// Identical uploads produce identical fingerprints, which the intake
// pipeline uses for duplicate detection.
func Fingerprint(data []byte) string {
	h, _ := blake2b.New(16, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
