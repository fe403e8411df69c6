package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/pkg/commands"
	"github.com/arthur-debert/slinky/pkg/vault"
)

func newSecretsCmd(g *globalOptions) *cobra.Command {
	pr := defaultPassphraseReader()

	cmd := &cobra.Command{
		Use:     "secrets",
		Short:   MsgSecretsShort,
		Long:    MsgSecretsLong,
		Example: MsgSecretsExample,
		GroupID: "core",
	}
	cmd.AddCommand(
		newSecretsScanCmd(g),
		newSecretsTemplateCmd(g),
		newSecretsEncryptCmd(g, pr),
		newSecretsDecryptCmd(g, pr),
	)
	return cmd
}

// secretsSession loads the session and the secrets options for files.
func secretsSession(g *globalOptions, cmd *cobra.Command, files []string) (*session, commands.SecretsOptions, error) {
	s, err := g.session(cmd)
	if err != nil {
		return nil, commands.SecretsOptions{}, err
	}
	opts, err := commands.SecretsOptionsFrom(s.cfg, files)
	if err != nil {
		return nil, commands.SecretsOptions{}, err
	}
	return s, opts, nil
}

func newSecretsScanCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [files...]",
		Short: MsgSecretsScanShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, opts, err := secretsSession(g, cmd, args)
			if err != nil {
				return err
			}
			findings, err := commands.ScanSecrets(s.rc, opts)
			if err != nil {
				return err
			}
			return s.out.Findings(findings)
		},
	}
}

// previewFindings shows what a dry run of template or encrypt would touch.
func previewFindings(s *session, opts commands.SecretsOptions) error {
	findings, err := commands.ScanSecrets(s.rc, opts)
	if err != nil {
		return err
	}
	if err := s.out.Findings(findings); err != nil {
		return err
	}
	s.out.Message("Muted", MsgDryRunNotice)
	return nil
}

func newSecretsTemplateCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "template [files...]",
		Short: MsgSecretsTmplShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, opts, err := secretsSession(g, cmd, args)
			if err != nil {
				return err
			}
			if g.dryRun {
				return previewFindings(s, opts)
			}
			tfs, err := commands.TemplateSecrets(s.rc, opts)
			if err != nil {
				return err
			}
			return s.out.Templates(tfs)
		},
	}
}

func newSecretsEncryptCmd(g *globalOptions, pr *passphraseReader) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [files...]",
		Short: MsgSecretsEncShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, opts, err := secretsSession(g, cmd, args)
			if err != nil {
				return err
			}
			if g.dryRun {
				return previewFindings(s, opts)
			}

			pass, err := pr.read(true)
			if err != nil {
				return err
			}
			defer wipe(pass)

			res, err := commands.EncryptSecrets(s.rc, opts, pass)
			if err != nil {
				return err
			}
			if len(res.Findings) == 0 {
				s.out.Message("Success", MsgNoSecretsToVault)
				return s.out.Templates(nil)
			}
			s.out.Message("Success", MsgSecretsVaulted, len(res.Findings), res.VaultPath)
			return s.out.Templates(res.Templates)
		},
	}
}

func newSecretsDecryptCmd(g *globalOptions, pr *passphraseReader) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt [templates...]",
		Short: MsgSecretsDecShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, opts, err := secretsSession(g, cmd, nil)
			if err != nil {
				return err
			}
			if g.dryRun {
				templates, err := commands.DecryptTemplates(s.rc, opts, args)
				if err != nil {
					return err
				}
				for _, t := range templates {
					if source, ok := vault.SourceOf(t); ok {
						s.out.Message("Muted", MsgWouldWrite, source)
					}
				}
				s.out.Message("Muted", MsgDryRunNotice)
				return nil
			}

			pass, err := pr.read(false)
			if err != nil {
				return err
			}
			defer wipe(pass)

			written, err := commands.DecryptSecrets(s.rc, opts, args, pass)
			if err != nil {
				return err
			}
			return s.out.Written(written)
		},
	}
}
