package reposign

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/rookeryos/rookpkg/internal/config"
	"github.com/rookeryos/rookpkg/internal/errs"
)

// Resolver looks up a public key by fingerprint across the key directories
// this toolkit family searches (§4.7): master keys, packager keys, the
// current user's config dir, and a final hardcoded fallback.
type Resolver struct {
	MasterKeysDir   string
	PackagerKeysDir string
}

// NewResolverFromConfig builds a Resolver using cfg's master/packager key
// directories.
func NewResolverFromConfig(cfg *config.Config) *Resolver {
	return &Resolver{
		MasterKeysDir:   cfg.MasterKeysDir,
		PackagerKeysDir: cfg.PackagerKeysDir,
	}
}

// Resolve searches, in order, the master-keys directory, the
// packager-keys directory, the current user's signing-key.pub, and
// /root/.config/rookpkg/signing-key.pub, returning the first *.pub (or
// single-file) key whose fingerprint matches fingerprint exactly or by
// suffix in either direction.
//
// Suffix matching is cryptographically unsound — a short fingerprint
// supplied by an attacker could collide with a legitimate long one — but
// is preserved here because it is a documented, testable property of this
// toolkit's signature resolution (a short-form fingerprint must
// interoperate with a long-form one).
func (r *Resolver) Resolve(fingerprint string) (*crypto.Key, error) {
	fingerprint = strings.ToUpper(fingerprint)

	dirs := []string{r.MasterKeysDir, r.PackagerKeysDir}
	for _, dir := range dirs {
		if key, ok := searchDirectory(dir, fingerprint); ok {
			return key, nil
		}
	}

	if userPath, err := config.UserSigningKeyPath(); err == nil {
		if key, ok := tryKeyFile(userPath, fingerprint); ok {
			return key, nil
		}
	}

	if key, ok := tryKeyFile(config.RootSigningKeyPath, fingerprint); ok {
		return key, nil
	}

	return nil, errs.New(errs.KindMissingKey, fmt.Sprintf("no signing key found for fingerprint %s", fingerprint))
}

// searchDirectory enumerates *.pub files in dir and returns the first whose
// fingerprint matches. Unreadable files are skipped silently, per §4.7.
func searchDirectory(dir, fingerprint string) (*crypto.Key, bool) {
	if !dirExists(dir) {
		return nil, false
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pub") {
			continue
		}
		if key, ok := tryKeyFile(filepath.Join(dir, entry.Name()), fingerprint); ok {
			return key, true
		}
	}

	return nil, false
}

// tryKeyFile loads path as an armored key and reports whether it matches
// fingerprint. Any error (missing file, unreadable, malformed key) is
// treated as a non-match, skipped silently.
func tryKeyFile(path, fingerprint string) (*crypto.Key, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	key, err := crypto.NewKeyFromArmored(string(data))
	if err != nil {
		return nil, false
	}

	keyFingerprint := strings.ToUpper(key.GetFingerprint())
	if fingerprintsMatch(keyFingerprint, fingerprint) {
		return key, true
	}
	return nil, false
}

// fingerprintsMatch implements §4.7's and §8 property 7's suffix-match
// semantics: equal, or either is a suffix of the other. Like Resolve's
// matching, this is cryptographically unsound: a short fingerprint can
// collide with an unrelated long one.
func fingerprintsMatch(a, b string) bool {
	return a == b || strings.HasSuffix(a, b) || strings.HasSuffix(b, a)
}
