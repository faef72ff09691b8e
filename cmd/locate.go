package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"streamlens.dev/pkg/streamlens/internal/domain"
)

// locateCmd represents the locate command.
var locateCmd = newLocateCmd()

func newLocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locate FILE:LINE:COLUMN",
		Short: "Show the operator at a source position",
		Long: `Resolve the operator call under a source position against the configured
operator allow-list.

` + locationHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			file, line, column, err := parseLocation(args[0])
			if err != nil {
				return err
			}

			return workflow.Locate(context.Background(), domain.LocateArgs{
				File:   file,
				Line:   line,
				Column: column,
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
