package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"streamlens.dev/pkg/streamlens/internal/domain"
	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/telemetry"
)

var collectAddrFlag string
var collectPrefixFlags []string
var collectNoRecordFlag bool

// collectCmd represents the collect command.
var collectCmd = newCollectCmd()

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect probe events from an instrumented process",
		Long: `Listen for probe telemetry over WebSocket and show the events reported for
registered probe points. Events for other locations are discarded.

Each run is recorded as a session in the events directory unless
--no-record is given. Stop with q or Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			codec, err := telemetry.CodecByName(viper.GetString(collectorCodecConfigKey))
			if err != nil {
				return err
			}

			events := m.Path(viper.GetString(eventsConfigKey))
			if collectNoRecordFlag {
				events = ""
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return workflow.Collect(ctx, domain.CollectArgs{
				Probes:   m.Path(viper.GetString(probesConfigKey)),
				Addr:     viper.GetString(collectorAddrConfigKey),
				Codec:    codec,
				Prefixes: viper.GetStringSlice(prefixesConfigKey),
				Events:   events,
			})
		},
	}

	configureCollectFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func configureCollectFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&collectAddrFlag, addrFlagName, "a", viper.GetString(collectorAddrConfigKey), "address the collector listens on")
	bindFlagToConfig(cmd.Flags().Lookup(addrFlagName), collectorAddrConfigKey)

	cmd.Flags().StringArrayVar(&collectPrefixFlags, prefixFlagName, viper.GetStringSlice(prefixesConfigKey), "bundler path prefix stripped before matching (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(prefixFlagName), prefixesConfigKey)

	cmd.Flags().BoolVar(&collectNoRecordFlag, "no-record", false, "do not record the session")
}
