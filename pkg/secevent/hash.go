package secevent

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// MaxSampleBytes is how much of the input HashSample looks at.
const MaxSampleBytes = 256

// HashSample returns the hex BLAKE2b-256 digest of the first MaxSampleBytes
// bytes of s. Equal payloads hash equally, so repeated attacks can be grouped
// in logs without storing them.
func HashSample(s string) string {
	b := []byte(s)
	if len(b) > MaxSampleBytes {
		b = b[:MaxSampleBytes]
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
