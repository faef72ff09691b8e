package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"streamlens.dev/pkg/streamlens/internal/domain"
	m "streamlens.dev/pkg/streamlens/internal/model"
)

var viewSessionFlag string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Replay a recorded session",
		Long:  "Replay the events of a recorded session, by default the latest one in the events directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.View(context.Background(), domain.ViewArgs{
				Events:  m.Path(viper.GetString(eventsConfigKey)),
				Session: m.Path(viewSessionFlag),
			})
		},
	}

	cmd.Flags().StringVarP(&viewSessionFlag, "session", "s", "", "session log to replay instead of the latest")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
