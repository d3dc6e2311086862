package sui

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"golang.org/x/crypto/blake2b"
)

const (
	// PrivateKeyPrefix is the bech32 human readable part of exported secret keys.
	PrivateKeyPrefix = "suiprivkey"

	// SignatureSchemeED25519 is the signature scheme flag of Ed25519 keys.
	SignatureSchemeED25519 byte = 0x00
)

// intentTransactionData is the intent prefix of a signed TransactionData:
// scope TransactionData, version V0, app id Sui.
var intentTransactionData = [3]byte{0, 0, 0}

// Keypair is an Ed25519 signing key.
type Keypair struct {
	key ed25519.PrivateKey
}

func GenerateKeypair() (*Keypair, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "can't generate ed25519 key")
	}
	return &Keypair{key: key}, nil
}

// NewKeypairFromSeed creates a keypair from a 32-byte Ed25519 seed.
func NewKeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errs.InvalidArgument, "seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &Keypair{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// ParseSecretKey decodes a bech32 `suiprivkey1...` string.
func ParseSecretKey(s string) (*Keypair, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid bech32 secret key: %v", err)
	}
	if hrp != PrivateKeyPrefix {
		return nil, errors.Wrapf(errs.InvalidArgument, "unexpected secret key prefix %q", hrp)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid secret key payload: %v", err)
	}
	if len(raw) != 1+ed25519.SeedSize {
		return nil, errors.Wrapf(errs.InvalidArgument, "invalid secret key length %d", len(raw))
	}
	if raw[0] != SignatureSchemeED25519 {
		return nil, errors.Wrapf(errs.Unsupported, "signature scheme flag 0x%02x", raw[0])
	}
	return NewKeypairFromSeed(raw[1:])
}

// SecretKey returns the bech32 `suiprivkey1...` export of the keypair.
func (k *Keypair) SecretKey() (string, error) {
	payload := append([]byte{SignatureSchemeED25519}, k.key.Seed()...)
	conv, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.WithStack(err)
	}
	s, err := bech32.Encode(PrivateKeyPrefix, conv)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return s, nil
}

func (k *Keypair) PublicKey() ed25519.PublicKey {
	return k.key.Public().(ed25519.PublicKey)
}

// Address derives the account address: blake2b-256(flag || public key).
func (k *Keypair) Address() Address {
	return AddressFromPublicKey(k.PublicKey())
}

func AddressFromPublicKey(pub ed25519.PublicKey) Address {
	h, _ := blake2b.New256(nil)
	h.Write([]byte{SignatureSchemeED25519})
	h.Write(pub)

	var addr Address
	copy(addr[:], h.Sum(nil))
	return addr
}

// TransactionDigest is the signing digest of BCS TransactionData bytes.
func TransactionDigest(txBytes []byte) [32]byte {
	msg := make([]byte, 0, len(intentTransactionData)+len(txBytes))
	msg = append(msg, intentTransactionData[:]...)
	msg = append(msg, txBytes...)
	return blake2b.Sum256(msg)
}

// SignTransaction signs BCS TransactionData bytes and returns the base64
// serialized signature `flag || signature || public key`.
func (k *Keypair) SignTransaction(txBytes []byte) string {
	digest := TransactionDigest(txBytes)
	sig := ed25519.Sign(k.key, digest[:])

	serialized := make([]byte, 0, 1+ed25519.SignatureSize+ed25519.PublicKeySize)
	serialized = append(serialized, SignatureSchemeED25519)
	serialized = append(serialized, sig...)
	serialized = append(serialized, k.PublicKey()...)
	return base64.StdEncoding.EncodeToString(serialized)
}

// Zero wipes the private key from memory.
func (k *Keypair) Zero() {
	for i := range k.key {
		k.key[i] = 0
	}
	k.key = nil
}
