package config

// KDF holds the key-derivation cost parameters used when encrypting the vault.
type KDF struct {
	Time      uint32 `koanf:"time" toml:"time" json:"time"`
	MemoryKiB uint32 `koanf:"memory_kib" toml:"memory_kib" json:"memory_kib"`
	Threads   uint8  `koanf:"threads" toml:"threads" json:"threads"`
}

// Secrets holds the secret pipeline configuration
type Secrets struct {
	// Files are scanned when no explicit files are given
	Files []string `koanf:"files" toml:"files" json:"files"`

	// RedactInPlace also rewrites the original file with placeholders,
	// instead of only writing a sibling template
	RedactInPlace bool `koanf:"redact_in_place" toml:"redact_in_place" json:"redact_in_place"`

	// VaultPath is the encrypted vault location; empty means the XDG default
	VaultPath string `koanf:"vault_path" toml:"vault_path" json:"vault_path"`

	KDF KDF `koanf:"kdf" toml:"kdf" json:"kdf"`
}

// Config is the main configuration structure
type Config struct {
	StowDir        string   `koanf:"stow_dir" toml:"stow_dir" json:"stow_dir"`
	TargetDir      string   `koanf:"target_dir" toml:"target_dir" json:"target_dir"`
	Packages       []string `koanf:"packages" toml:"packages" json:"packages"`
	SecretsEnabled bool     `koanf:"secrets_enabled" toml:"secrets_enabled" json:"secrets_enabled"`

	// Ignore patterns apply to every package walk
	Ignore []string `koanf:"ignore" toml:"ignore" json:"ignore"`

	Secrets Secrets `koanf:"secrets" toml:"secrets" json:"secrets"`

	// Source is the file the configuration was read from, empty for defaults
	Source string `koanf:"-" toml:"-" json:"-"`
}
