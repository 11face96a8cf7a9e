package protocol

import (
	"bytes"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/cross_escrow/model"
)

// SecretLen is the required secret length. Shorter preimages are rejected
// before hashing so a truncated secret can never unlock anything.
const SecretLen = 32

// HashLen is the length of every 32-byte commitment (order hash, hashlock,
// Merkle root).
const HashLen = 32

// CheckSecret verifies keccak256(secret) == hashlock.
func CheckSecret(secret, hashlock []byte) error {
	if len(secret) < SecretLen {
		return model.ErrInvalidSecret
	}
	if !bytes.Equal(crypto.Keccak256(secret), hashlock) {
		return model.ErrInvalidSecret
	}
	return nil
}

// SecretHash returns keccak256(secret), the per-secret commitment used both
// as the single-fill hashlock and as the Merkle leaf preimage.
func SecretHash(secret []byte) []byte {
	return crypto.Keccak256(secret)
}

// ValidHash reports whether b is a well-formed, non-zero 32-byte value.
func ValidHash(b []byte) bool {
	if len(b) != HashLen {
		return false
	}
	for _, v := range b {
		if v != 0 {
			return true
		}
	}
	return false
}
