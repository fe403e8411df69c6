package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/topics"
	"github.com/arthur-debert/slinky/pkg/ui"
)

func newTopicsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(g.format)
			if err != nil {
				return err
			}
			var renderer topics.Renderer = &topics.PlainRenderer{}
			if ui.Resolve(format, cmd.OutOrStdout()) == ui.FormatTerminal {
				renderer = topics.NewGlamourRenderer()
			}

			m, err := topics.New(topics.Options{Renderer: renderer})
			if err != nil {
				return err
			}
			if len(args) == 0 {
				m.WriteIndex(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}

			topic, ok := m.Get(args[0])
			if !ok {
				return errors.Newf(errors.ErrNotFound, MsgErrUnknownTopic, args[0]).
					WithDetail("available", m.List())
			}
			_, err = cmd.OutOrStdout().Write([]byte(m.Render(topic)))
			return err
		},
	}
}
