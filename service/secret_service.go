package service

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"

	"github.com/cross_escrow/protocol"
)

// SecretService provisions swap secrets for resolver clients. All N+1
// secrets of an order derive from a single bip39 mnemonic through hardened
// HD child keys, so a resolver only has to back up one phrase to be able to
// re-derive every partial-fill secret later.
//
// Secrets never touch the escrow objects: the ledger side only ever sees
// their keccak256 commitments.
type SecretService struct{}

func NewSecretService() *SecretService {
	return &SecretService{}
}

type OrderSecrets struct {
	Mnemonic string
	// Secrets[i] is the 32-byte preimage for index i. Single-fill orders
	// have exactly one; an order of N parts has N+1.
	Secrets [][]byte
	// SecretHashes[i] = keccak256(Secrets[i]).
	SecretHashes [][]byte
	// Hashlock is SecretHashes[0] in single-fill mode, the Merkle root
	// otherwise.
	Hashlock []byte
	// Proofs[i] opens leaf i against the root (partial-fill mode only).
	Proofs [][][]byte
}

// Generate creates a fresh mnemonic and derives the secrets for an order of
// partsAmount parts (0 = single fill).
func (s *SecretService) Generate(partsAmount uint64) (*OrderSecrets, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}
	return s.Derive(mnemonic, partsAmount)
}

// Derive re-derives the full secret set from an existing mnemonic.
func (s *SecretService) Derive(mnemonic string, partsAmount uint64) (*OrderSecrets, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}

	count := partsAmount + 1
	if partsAmount == 0 {
		count = 1
	}

	out := &OrderSecrets{Mnemonic: mnemonic}
	for i := uint64(0); i < count; i++ {
		child, err := master.Derive(hdkeychain.HardenedKeyStart + uint32(i))
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", i, err)
		}
		priv, err := child.ECPrivKey()
		if err != nil {
			return nil, fmt.Errorf("child %d private key: %w", i, err)
		}
		secret := priv.Serialize()
		out.Secrets = append(out.Secrets, secret)
		out.SecretHashes = append(out.SecretHashes, protocol.SecretHash(secret))
	}

	if partsAmount == 0 {
		out.Hashlock = out.SecretHashes[0]
		return out, nil
	}

	tree := protocol.BuildTree(out.SecretHashes)
	out.Hashlock = tree.Root()
	for i := uint64(0); i < count; i++ {
		out.Proofs = append(out.Proofs, tree.Proof(i))
	}
	return out, nil
}
