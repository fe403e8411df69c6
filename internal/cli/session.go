package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/executor"
	"github.com/arthur-debert/slinky/pkg/filesystem"
	"github.com/arthur-debert/slinky/pkg/output"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
	"github.com/arthur-debert/slinky/pkg/ui"
)

// globalOptions holds the persistent flags
type globalOptions struct {
	verbosity  int
	configPath string
	dryRun     bool
	format     string
}

// session is what a command needs once flags are parsed
type session struct {
	cfg *config.Config
	rc  *types.RunContext
	out *output.Renderer
}

func (g *globalOptions) mode() executor.Mode {
	if g.dryRun {
		return executor.DryRun
	}
	return executor.Apply
}

// configFile returns the config path in use, explicit or default.
func (g *globalOptions) configFile() string {
	if g.configPath != "" {
		return paths.ExpandHome(g.configPath)
	}
	return paths.ConfigFilePath()
}

func (g *globalOptions) runContext() *types.RunContext {
	return types.NewRunContext(filesystem.NewOS()).WithLogger(log.Logger)
}

func (g *globalOptions) renderer(cmd *cobra.Command) (*output.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	return output.New(cmd.OutOrStdout(), format)
}

// session loads the configuration and prepares the renderer.
func (g *globalOptions) session(cmd *cobra.Command) (*session, error) {
	out, err := g.renderer(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.LoadOptions{Path: g.configPath})
	if err != nil {
		return nil, err
	}

	rc := g.runContext().WithIgnore(cfg.Ignore...)
	log.Debug().
		Str("config", cfg.Source).
		Str("stowDir", cfg.StowDir).
		Str("targetDir", cfg.TargetDir).
		Msg("Session ready")
	return &session{cfg: cfg, rc: rc, out: out}, nil
}
