package reposign

import (
	"fmt"
	"os"
	"strings"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/rookeryos/rookpkg/internal/errs"
)

// Signer produces detached signatures with a loaded private key, grounded
// on the teacher's gopenpgp-based signing flow in
// internal/actions/signature.go (crypto.NewKeyRing + SignDetached).
type Signer struct {
	key     *crypto.Key
	keyRing *crypto.KeyRing
}

// NewSigner loads a Signer from an armored private key.
func NewSigner(armoredPrivateKey string) (*Signer, error) {
	key, err := crypto.NewKeyFromArmored(armoredPrivateKey)
	if err != nil {
		return nil, errs.Wrap(errs.KindSignature, "parsing private signing key", err)
	}

	keyRing, err := crypto.NewKeyRing(key)
	if err != nil {
		return nil, errs.Wrap(errs.KindSignature, "building signing keyring", err)
	}

	return &Signer{key: key, keyRing: keyRing}, nil
}

// NewSignerFromFile loads an armored private key from path.
func NewSignerFromFile(path string) (*Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindMissingKey, fmt.Sprintf("reading signing key %s", path), err)
	}
	return NewSigner(string(data))
}

// Fingerprint returns the normalized (uppercase) fingerprint of the signing
// key.
func (s *Signer) Fingerprint() string {
	return strings.ToUpper(s.key.GetFingerprint())
}

// PublicKeyArmored returns the armored public half of the signing key, for
// embedding in repo.toml's signing.public_key field.
func (s *Signer) PublicKeyArmored() (string, error) {
	pub, err := s.key.ToPublic()
	if err != nil {
		return "", errs.Wrap(errs.KindSignature, "deriving public key", err)
	}
	armored, err := pub.Armor()
	if err != nil {
		return "", errs.Wrap(errs.KindSignature, "armoring public key", err)
	}
	return armored, nil
}

// SignBytes produces a HybridSignature over data.
func (s *Signer) SignBytes(data []byte) (*HybridSignature, error) {
	message := crypto.NewPlainMessage(data)

	signature, err := s.keyRing.SignDetached(message)
	if err != nil {
		return nil, errs.Wrap(errs.KindSignature, "signing data", err)
	}

	armored, err := signature.GetArmored()
	if err != nil {
		return nil, errs.Wrap(errs.KindSignature, "armoring signature", err)
	}

	return &HybridSignature{
		Fingerprint: s.Fingerprint(),
		Armored:     armored,
	}, nil
}

// SignFile produces a HybridSignature over the contents of path.
func (s *Signer) SignFile(path string) (*HybridSignature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIO, fmt.Sprintf("reading file to sign %s", path), err)
	}
	return s.SignBytes(data)
}
