package commands

import (
	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/secrets"
	"github.com/arthur-debert/slinky/pkg/types"
	"github.com/arthur-debert/slinky/pkg/vault"
)

// SecretsOptions configures the secrets commands
type SecretsOptions struct {
	// Files to scan; empty means the configured defaults that exist
	Files []string

	VaultPath string
	KDF       vault.KDFParams
	InPlace   bool
}

// SecretsOptionsFrom fills SecretsOptions from cfg. files override the
// configured file list.
func SecretsOptionsFrom(cfg *config.Config, files []string) (SecretsOptions, error) {
	if err := requireSecrets(cfg); err != nil {
		return SecretsOptions{}, err
	}
	opts := SecretsOptions{
		Files:     cfg.Secrets.Files,
		VaultPath: cfg.Secrets.VaultPath,
		KDF: vault.KDFParams{
			Time:      cfg.Secrets.KDF.Time,
			MemoryKiB: cfg.Secrets.KDF.MemoryKiB,
			Threads:   cfg.Secrets.KDF.Threads,
		},
		InPlace: cfg.Secrets.RedactInPlace,
	}
	if len(files) > 0 {
		opts.Files = files
	}
	return opts, nil
}

func (o SecretsOptions) vault() *vault.Vault {
	return vault.New(vault.Options{Path: o.VaultPath, KDF: o.KDF, InPlace: o.InPlace})
}

// files normalizes the file list and keeps only files that exist.
func (o SecretsOptions) files(rc *types.RunContext) ([]string, error) {
	out := make([]string, 0, len(o.Files))
	for _, f := range o.Files {
		p, err := paths.Normalize(f)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return secrets.ExistingFiles(rc, out), nil
}

// ScanSecrets reports the secrets found in the configured files.
func ScanSecrets(rc *types.RunContext, opts SecretsOptions) ([]secrets.Finding, error) {
	files, err := opts.files(rc)
	if err != nil {
		return nil, err
	}
	return opts.vault().Scan(rc, files)
}

// TemplateSecrets scans and writes templates without touching the vault.
func TemplateSecrets(rc *types.RunContext, opts SecretsOptions) ([]vault.TemplateFile, error) {
	v := opts.vault()
	files, err := opts.files(rc)
	if err != nil {
		return nil, err
	}
	findings, err := v.Scan(rc, files)
	if err != nil {
		return nil, err
	}
	return v.Template(rc, findings)
}

// EncryptResult is what EncryptSecrets did
type EncryptResult struct {
	Findings  []secrets.Finding
	Templates []vault.TemplateFile
	VaultPath string
}

// EncryptSecrets scans, stores the values in the vault, then writes
// templates. The vault is written before any file is redacted, so an
// in-place redaction never loses a value. Running it again keeps the values
// of secrets that earlier runs redacted, which needs the same passphrase.
func EncryptSecrets(rc *types.RunContext, opts SecretsOptions, passphrase []byte) (*EncryptResult, error) {
	log := rc.Logger.With().Str("component", "commands").Logger()
	log.Debug().Str("command", "EncryptSecrets").Msg("Executing command")

	v := opts.vault()
	files, err := opts.files(rc)
	if err != nil {
		return nil, err
	}
	findings, err := v.Scan(rc, files)
	if err != nil {
		return nil, err
	}
	result := &EncryptResult{Findings: findings, VaultPath: v.Path()}
	if len(findings) == 0 {
		log.Info().Msg("No secrets found, vault left untouched")
		return result, nil
	}

	recovered, err := v.Recover(rc, findings)
	if err != nil {
		return nil, err
	}
	if _, err := v.Encrypt(rc, recovered, passphrase); err != nil {
		return nil, err
	}
	result.Templates, err = v.Template(rc, findings)
	if err != nil {
		return result, err
	}

	log.Info().
		Str("command", "EncryptSecrets").
		Int("secrets", len(recovered)).
		Str("vault", v.Path()).
		Msg("Command finished")
	return result, nil
}

// DecryptTemplates returns the templates DecryptSecrets would rehydrate:
// the given ones, or the existing template of every configured file.
func DecryptTemplates(rc *types.RunContext, opts SecretsOptions, templates []string) ([]string, error) {
	if len(templates) > 0 {
		return templates, nil
	}
	for _, f := range opts.Files {
		p, err := paths.Normalize(f)
		if err != nil {
			return nil, err
		}
		t := vault.TemplatePath(p)
		if _, err := rc.FS.Stat(t); err == nil {
			templates = append(templates, t)
		}
	}
	if len(templates) == 0 {
		return nil, errors.New(errors.ErrNotFound, "no template files to decrypt")
	}
	return templates, nil
}

// DecryptSecrets opens the vault and rehydrates templates.
func DecryptSecrets(rc *types.RunContext, opts SecretsOptions, templates []string, passphrase []byte) ([]string, error) {
	templates, err := DecryptTemplates(rc, opts, templates)
	if err != nil {
		return nil, err
	}

	v := opts.vault()
	payload, err := v.Decrypt(rc, passphrase)
	if err != nil {
		return nil, err
	}
	return v.Rehydrate(rc, templates, payload)
}
