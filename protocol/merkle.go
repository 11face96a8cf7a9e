package protocol

import (
	"bytes"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/cross_escrow/model"
)

// Leaf computes keccak256(index_as_u64_little_endian ‖ secretHash). The
// little-endian encoding and the sorted-pair node hashing below are part of
// the cross-chain wire contract; changing either silently breaks proof
// compatibility with the counterparty chain.
func Leaf(index uint64, secretHash []byte) []byte {
	buf := make([]byte, 8, 8+len(secretHash))
	binary.LittleEndian.PutUint64(buf, index)
	buf = append(buf, secretHash...)
	return crypto.Keccak256(buf)
}

// hashPair hashes the sorted pair: keccak256(min(a,b) ‖ max(a,b)).
func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256(a, b)
}

// VerifyProof walks the proof from leaf to root.
func VerifyProof(leaf []byte, proof [][]byte, root []byte) error {
	node := leaf
	for _, sibling := range proof {
		node = hashPair(node, sibling)
	}
	if !bytes.Equal(node, root) {
		return model.ErrInvalidMerkleProof
	}
	return nil
}

// Tree is a sorted-pair Merkle tree over secret-hash leaves. Built by
// resolver tooling and tests; the on-ledger side only ever verifies.
type Tree struct {
	levels [][][]byte // levels[0] = leaves, last level = [root]
}

// BuildTree constructs the tree for leaves 0..len(secretHashes)-1. An odd
// node at any level is carried up unchanged.
func BuildTree(secretHashes [][]byte) *Tree {
	leaves := make([][]byte, len(secretHashes))
	for i, sh := range secretHashes {
		leaves[i] = Leaf(uint64(i), sh)
	}

	levels := [][][]byte{leaves}
	cur := leaves
	for len(cur) > 1 {
		next := make([][]byte, 0, (len(cur)+1)/2)
		for i := 0; i < len(cur); i += 2 {
			if i+1 < len(cur) {
				next = append(next, hashPair(cur[i], cur[i+1]))
			} else {
				next = append(next, cur[i])
			}
		}
		levels = append(levels, next)
		cur = next
	}
	return &Tree{levels: levels}
}

// Root returns the tree root (the stored hashlock in partial-fill mode).
func (t *Tree) Root() []byte {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Proof returns the sibling path for leaf index.
func (t *Tree) Proof(index uint64) [][]byte {
	var proof [][]byte
	i := int(index)
	for _, level := range t.levels[:len(t.levels)-1] {
		var sibling int
		if i%2 == 0 {
			sibling = i + 1
		} else {
			sibling = i - 1
		}
		if sibling >= 0 && sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		i /= 2
	}
	return proof
}
