package reposign

import (
	"errors"
	"os"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/rookeryos/rookpkg/internal/errs"
)

// Status classifies the outcome of verifying an archive's detached
// signature during a repository refresh (§4.6).
type Status int

const (
	// StatusUnsigned means no sibling .sig file was found.
	StatusUnsigned Status = iota
	// StatusSigned means a .sig file was found and verified successfully.
	StatusSigned
	// StatusInvalid means a .sig file was found but verification failed,
	// including a missing or unresolvable signing key.
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusSigned:
		return "signed"
	case StatusInvalid:
		return "invalid"
	default:
		return "unsigned"
	}
}

// VerifyDetached verifies sig against data using key, following the
// teacher's VerifyPGPSignature flow: parse the armored (or raw) signature,
// build a keyring from the public key, and verify at any time (verifyTime
// 0).
func VerifyDetached(key *crypto.Key, data []byte, sig *HybridSignature) error {
	signature, err := crypto.NewPGPSignatureFromArmored(sig.Armored)
	if err != nil {
		signature = crypto.NewPGPSignature([]byte(sig.Armored))
	}

	keyRing, err := crypto.NewKeyRing(key)
	if err != nil {
		return errs.Wrap(errs.KindSignature, "building verification keyring", err)
	}

	message := crypto.NewPlainMessage(data)
	if err := keyRing.VerifyDetached(message, signature, 0); err != nil {
		return errs.Wrap(errs.KindSignature, "signature verification failed", err)
	}

	return nil
}

// ClassifyArchive verifies a sibling signature file (if present) for an
// archive's bytes, resolving the signing key via resolver. It never returns
// an error: a missing signature file yields StatusUnsigned; a signature
// file that exists but is unreadable or malformed, an unresolvable key, or
// a bad signature all yield StatusInvalid, matching §4.6's "invalid
// signatures are counted but do not exclude the package from the index."
// A present-but-corrupt .sig is reported as invalid, distinct from a
// package that was never signed at all.
func ClassifyArchive(resolver *Resolver, archiveData []byte, sigPath string) Status {
	sig, err := LoadSignatureFile(sigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return StatusUnsigned
		}
		return StatusInvalid
	}

	key, err := resolver.Resolve(sig.Fingerprint)
	if err != nil {
		return StatusInvalid
	}

	if err := VerifyDetached(key, archiveData, sig); err != nil {
		return StatusInvalid
	}

	return StatusSigned
}
