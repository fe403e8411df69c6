package vault

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/secrets"
	"github.com/arthur-debert/slinky/pkg/types"
)

// Options configures a Vault
type Options struct {
	// Path is the encrypted vault file
	Path string

	// KDF sets the key derivation cost; zero means DefaultKDF
	KDF KDFParams

	// InPlace makes Template rewrite the original files as well
	InPlace bool

	// Scanner finds secrets; nil means the default rule table
	Scanner *secrets.Scanner
}

// Vault runs the secrets workflow against one vault file.
type Vault struct {
	path    string
	kdf     KDFParams
	inPlace bool
	scanner *secrets.Scanner
}

// New returns a Vault for opts.
func New(opts Options) *Vault {
	v := &Vault{path: opts.Path, kdf: opts.KDF, inPlace: opts.InPlace, scanner: opts.Scanner}
	if v.kdf == (KDFParams{}) {
		v.kdf = DefaultKDF
	}
	if v.scanner == nil {
		v.scanner = secrets.NewScanner()
	}
	return v
}

// Path is the vault file location.
func (v *Vault) Path() string {
	return v.path
}

func logger(rc *types.RunContext) *zerolog.Logger {
	l := rc.Logger.With().Str("component", "vault").Logger()
	return &l
}

// Scan runs the scanner over files.
func (v *Vault) Scan(rc *types.RunContext, files []string) ([]secrets.Finding, error) {
	return v.scanner.ScanFiles(rc, files)
}

// Encrypt seals the recovered secrets under passphrase and replaces the
// vault file atomically. Nothing is written on failure.
//
// An existing vault is opened with the same passphrase first. Its entries
// survive as long as their file still holds the placeholder token, which is
// the only copy of a value once a file was redacted in place. Files about to
// be templated must not reference a placeholder the new vault lacks.
func (v *Vault) Encrypt(rc *types.RunContext, recovered []Secret, passphrase []byte) (*Envelope, error) {
	payload, err := NewPayload(recovered)
	if err != nil {
		return nil, err
	}

	previous, err := v.previous(rc, passphrase)
	if err != nil {
		return nil, err
	}
	carried := 0
	if previous != nil {
		carried = carry(rc, payload, previous)
	}
	if err := checkReferences(rc, recovered, payload); err != nil {
		return nil, err
	}

	plaintext, err := payload.marshal()
	if err != nil {
		return nil, err
	}
	defer zero(plaintext)

	env, err := Seal(plaintext, passphrase, v.kdf)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode vault")
	}
	if err := rc.FS.AtomicWrite(v.path, append(data, '\n'), 0600); err != nil {
		return nil, errors.PathError(err, "write", v.path)
	}

	logger(rc).Info().
		Str("path", v.path).
		Int("secrets", payload.Len()).
		Int("carried", carried).
		Msg("Vault written")
	return env, nil
}

// previous opens the vault Encrypt is about to replace, nil when there is none.
func (v *Vault) previous(rc *types.RunContext, passphrase []byte) (*Payload, error) {
	if _, err := rc.FS.Lstat(v.path); os.IsNotExist(err) {
		return nil, nil
	}
	return v.Decrypt(rc, passphrase)
}

// carry copies the entries of previous that are still referenced into
// payload. New values win over carried ones. A file that is gone along with
// its template keeps all of its entries.
func carry(rc *types.RunContext, payload, previous *Payload) int {
	n := 0
	for key, entries := range previous.Secrets {
		refs, known := references(rc, paths.ExpandHome(key))
		for name, value := range entries {
			if _, ok := payload.Secrets[key][name]; ok {
				continue
			}
			if known && !refs[name] {
				continue
			}
			payload.put(key, name, value)
			n++
		}
	}
	return n
}

// checkReferences fails when a file with new findings already holds a
// token the payload cannot fill.
func checkReferences(rc *types.RunContext, recovered []Secret, payload *Payload) error {
	var missing []string
	seen := make(map[string]bool)
	for _, s := range recovered {
		if seen[s.File] {
			continue
		}
		seen[s.File] = true

		data, err := rc.FS.ReadFile(s.File)
		if err != nil {
			return errors.PathError(err, "read", s.File)
		}
		for _, name := range secrets.TokenNames(data) {
			if _, ok := payload.Lookup(s.File, name); !ok {
				missing = append(missing, s.File+":"+name)
			}
		}
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrPayloadIntegrity, "no value for redacted placeholder %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}
	return nil
}

// references returns the placeholder names file refers to. A missing file
// is read through its template; known is false when neither exists.
func references(rc *types.RunContext, file string) (refs map[string]bool, known bool) {
	data, err := rc.FS.ReadFile(file)
	if err != nil {
		data, err = rc.FS.ReadFile(TemplatePath(file))
		if err != nil {
			return nil, false
		}
	}
	refs = make(map[string]bool)
	for _, name := range secrets.TokenNames(data) {
		refs[name] = true
	}
	return refs, true
}

// Decrypt reads and opens the vault file.
func (v *Vault) Decrypt(rc *types.RunContext, passphrase []byte) (*Payload, error) {
	data, err := rc.FS.ReadFile(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "vault does not exist").
				WithDetail("path", v.path)
		}
		return nil, errors.PathError(err, "read", v.path)
	}

	env, err := ParseEnvelope(data)
	if err != nil {
		return nil, err
	}
	plaintext, err := Open(env, passphrase)
	if err != nil {
		logger(rc).Debug().Str("path", v.path).Msg("Vault did not open")
		return nil, err
	}
	defer zero(plaintext)

	payload, err := unmarshalPayload(plaintext)
	if err != nil {
		return nil, err
	}
	logger(rc).Info().Str("path", v.path).Int("secrets", payload.Len()).Msg("Vault opened")
	return payload, nil
}
