package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Symlink farm manager with an encrypted secrets vault"
	MsgInitShort        = "Write a config file"
	MsgListShort        = "List packages in the stow directory"
	MsgLinkShort        = "Link packages into the target directory"
	MsgUnlinkShort      = "Remove the links of packages"
	MsgStatusShort      = "Show the link status of packages"
	MsgSecretsShort     = "Move secrets out of shell files and into a vault"
	MsgSecretsScanShort = "Report secrets found in files"
	MsgSecretsTmplShort = "Write templates with placeholders, without vaulting"
	MsgSecretsEncShort  = "Vault secrets and write templates"
	MsgSecretsDecShort  = "Restore files from templates and the vault"
	MsgConfigShort      = "Inspect the configuration"
	MsgConfigShowShort  = "Print the effective configuration"
	MsgConfigPathShort  = "Print the config file location"
	MsgTopicsShort      = "Display available documentation topics"
	MsgVersionShort     = "Print version information"

	// Status messages
	MsgDryRunNotice     = "Dry run: nothing was changed"
	MsgConflictsFormat  = "%d conflict(s) left untouched"
	MsgConfigWritten    = "Wrote %s"
	MsgSecretsVaulted   = "Vaulted %d secret(s) in %s"
	MsgNoSecretsToVault = "No secrets found, vault left untouched"
	MsgNoConfigFile     = "%s (not created yet)"
	MsgWouldWrite       = "would write %s"

	// Errors
	MsgErrFailedOps    = "%d operation(s) failed"
	MsgErrNoPassphrase = "no passphrase: set SLINKY_PASSPHRASE or run in a terminal"
	MsgErrPassMismatch = "passphrases do not match"
	MsgErrEmptyPass    = "passphrase cannot be empty"
	MsgErrUnknownTopic = "unknown topic %q, see 'slinky topics'"

	// Prompts
	MsgPassphrasePrompt = "Passphrase: "
	MsgConfirmPrompt    = "Repeat passphrase: "

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/slinky/config.toml)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagAll     = "Select every package in the stow directory"
	MsgFlagStowDir = "Stow directory to record in the new config"
	MsgFlagForce   = "Overwrite an existing config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/unlink-long.txt
	msgUnlinkLongRaw string
	MsgUnlinkLong    = strings.TrimSpace(msgUnlinkLongRaw)

	//go:embed msgs/unlink-example.txt
	msgUnlinkExampleRaw string
	MsgUnlinkExample    = strings.TrimRight(msgUnlinkExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/secrets-long.txt
	msgSecretsLongRaw string
	MsgSecretsLong    = strings.TrimSpace(msgSecretsLongRaw)

	//go:embed msgs/secrets-example.txt
	msgSecretsExampleRaw string
	MsgSecretsExample    = strings.TrimRight(msgSecretsExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
