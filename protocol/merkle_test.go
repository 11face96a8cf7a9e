package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cross_escrow/model"
)

func secretHashes(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = crypto.Keccak256(testSecret(byte(i + 1)))
	}
	return out
}

func TestLeafEncoding(t *testing.T) {
	sh := crypto.Keccak256(testSecret(0x01))

	// index is encoded as u64 little-endian, then the secret hash; the
	// whole preimage is keccak-hashed. This is the cross-chain contract.
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, 3)
	want := crypto.Keccak256(append(buf, sh...))

	assert.Equal(t, want, Leaf(3, sh))
}

func TestTreeRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 11} {
		hashes := secretHashes(n)
		tree := BuildTree(hashes)
		root := tree.Root()
		require.Len(t, root, HashLen)

		for i := 0; i < n; i++ {
			proof := tree.Proof(uint64(i))
			leaf := Leaf(uint64(i), hashes[i])
			assert.NoError(t, VerifyProof(leaf, proof, root), "n=%d leaf=%d", n, i)
		}
	}
}

func TestVerifyProofRejectsTampering(t *testing.T) {
	hashes := secretHashes(5)
	tree := BuildTree(hashes)
	root := tree.Root()

	// wrong index for a valid secret hash
	err := VerifyProof(Leaf(2, hashes[1]), tree.Proof(1), root)
	assert.Equal(t, model.ErrInvalidMerkleProof, err)

	// wrong secret hash for a valid index
	err = VerifyProof(Leaf(1, hashes[2]), tree.Proof(1), root)
	assert.Equal(t, model.ErrInvalidMerkleProof, err)

	// truncated proof
	proof := tree.Proof(1)
	require.NotEmpty(t, proof)
	err = VerifyProof(Leaf(1, hashes[1]), proof[:len(proof)-1], root)
	assert.Equal(t, model.ErrInvalidMerkleProof, err)
}

func TestSortedPairIsOrderIndependent(t *testing.T) {
	a := crypto.Keccak256([]byte("a"))
	b := crypto.Keccak256([]byte("b"))
	assert.Equal(t, hashPair(a, b), hashPair(b, a))
}
