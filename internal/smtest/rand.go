package smtest

import (
	"crypto/sha256"
	"math/rand/v2"
	"testing"
)

// RandomDataForTest returns a byte slice of size sz
// containing pseudorandom data, derived from a seed based on the test name.
func RandomDataForTest(t *testing.T, sz int) []byte {
	out := make([]byte, sz)
	if _, err := newChaCha(t).Read(out); err != nil {
		panic(err)
	}

	return out
}

// RandomChunksForTest splits n pseudorandom payloads off a single stream
// seeded by the test name.
// Each payload is between 1 and maxSize bytes long.
func RandomChunksForTest(t *testing.T, n, maxSize int) [][]byte {
	if maxSize < 1 {
		panic("BUG: maxSize must be positive")
	}

	chacha := newChaCha(t)
	r := rand.New(chacha)

	out := make([][]byte, n)
	for i := range out {
		out[i] = make([]byte, 1+r.IntN(maxSize))
		if _, err := chacha.Read(out[i]); err != nil {
			panic(err)
		}
	}
	return out
}

func newChaCha(t *testing.T) *rand.ChaCha8 {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and this fits well anyway since that means
	// we are not limited by the length of any particular test name.
	seed := sha256.Sum256([]byte(t.Name()))
	return rand.NewChaCha8(seed)
}
