package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"streamlens.dev/pkg/streamlens/internal/domain"
	m "streamlens.dev/pkg/streamlens/internal/model"
)

var listCandidatesFlag bool
var listParallelFlag uint

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List probe points or probe candidates",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.List(context.Background(), domain.ListArgs{
				Probes:     m.Path(viper.GetString(probesConfigKey)),
				Paths:      parsePaths(args),
				Candidates: listCandidatesFlag,
				Threads:    viper.GetUint(listParallelConfigKey),
			})
		},
	}

	configureListFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func configureListFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&listCandidatesFlag, "candidates", "c", false, "list operator calls that could be probed")
	cmd.Flags().UintVarP(&listParallelFlag, parallelFlagName, "p", viper.GetUint(listParallelConfigKey), "number of files scanned in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), listParallelConfigKey)
}
