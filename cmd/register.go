package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"streamlens.dev/pkg/streamlens/internal/domain"
	m "streamlens.dev/pkg/streamlens/internal/model"
)

var registerExactFlag bool

// registerCmd represents the register command.
var registerCmd = newRegisterCmd()

func newRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register FILE:LINE:COLUMN",
		Short: "Register a probe point",
		Long: `Register the operator under a source position as a probe point. Collected
events are kept only for registered points.

With --exact the position is registered as given, without resolving it to
an operator first.

` + locationHelp,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			file, line, column, err := parseLocation(args[0])
			if err != nil {
				return err
			}

			return workflow.Register(context.Background(), domain.RegisterArgs{
				Probes: m.Path(viper.GetString(probesConfigKey)),
				File:   file,
				Line:   line,
				Column: column,
				Exact:  registerExactFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&registerExactFlag, "exact", false, "register the position as given")

	return cmd
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
