package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/internal/version"
)

func newVersionCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return out.Value(version.Get())
		},
	}
}
