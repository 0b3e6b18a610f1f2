package project

import "crypto/sha256"

// Digest is a fixed 256-bit hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine hashes parts into one digest: H(d1 || d2 || ...). Callers
// must pass parts in a deterministic order.
func Combine(parts ...Digest) Digest {
	h := sha256.New()
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Sum digests raw bytes.
func Sum(data []byte) Digest {
	return sha256.Sum256(data)
}
