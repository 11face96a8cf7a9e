package protocol

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"

	"github.com/cross_escrow/model"
)

func testSecret(fill byte) []byte {
	s := make([]byte, SecretLen)
	for i := range s {
		s[i] = fill
	}
	return s
}

func TestCheckSecret(t *testing.T) {
	secret := testSecret(0x11)
	hashlock := crypto.Keccak256(secret)

	assert.NoError(t, CheckSecret(secret, hashlock))
	assert.Equal(t, model.ErrInvalidSecret, CheckSecret(testSecret(0x22), hashlock))
	assert.Equal(t, model.ErrInvalidSecret, CheckSecret(secret[:31], hashlock))
	assert.Equal(t, model.ErrInvalidSecret, CheckSecret(nil, hashlock))
}

func TestSecretHashMatchesKeccak(t *testing.T) {
	secret := testSecret(0xab)
	assert.True(t, bytes.Equal(crypto.Keccak256(secret), SecretHash(secret)))
}

func TestValidHash(t *testing.T) {
	assert.True(t, ValidHash(crypto.Keccak256([]byte("x"))))
	assert.False(t, ValidHash(make([]byte, HashLen)), "all-zero hash is invalid")
	assert.False(t, ValidHash(make([]byte, 31)))
	assert.False(t, ValidHash(nil))
}
