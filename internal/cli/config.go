package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/pkg/commands"
	"github.com/arthur-debert/slinky/pkg/ui"
)

func newInitCmd(g *globalOptions) *cobra.Command {
	var (
		stowDir string
		force   bool
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			cfg, err := commands.InitConfig(g.runContext(), commands.InitOptions{
				Path:    g.configFile(),
				StowDir: stowDir,
				Force:   force,
			})
			if err != nil {
				return err
			}
			if out.Format() == ui.FormatJSON {
				return out.Value(cfg)
			}
			out.Message("Success", MsgConfigWritten, cfg.Source)
			return nil
		},
	}
	cmd.Flags().StringVar(&stowDir, "stow-dir", "", MsgFlagStowDir)
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.session(cmd)
			if err != nil {
				return err
			}
			if s.out.Format() == ui.FormatJSON {
				return s.out.Value(s.cfg)
			}
			data, err := s.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = s.out.Writer().Write(data)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: MsgConfigPathShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			path := g.configFile()
			rc := g.runContext()
			_, statErr := rc.FS.Stat(path)

			if out.Format() == ui.FormatJSON {
				return out.Value(struct {
					Path   string `json:"path"`
					Exists bool   `json:"exists"`
				}{path, statErr == nil})
			}
			if statErr != nil {
				out.Message("Muted", MsgNoConfigFile, path)
				return nil
			}
			return out.Value(path)
		},
	})
	return cmd
}
