package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"streamlens.dev/pkg/streamlens/internal/domain"
	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/telemetry"
)

var demoURLFlag string
var demoCountFlag int
var demoPeriodFlag time.Duration
var demoRegisterFlag bool

// demoCmd represents the demo command.
var demoCmd = newDemoCmd()

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run an instrumented sample pipeline",
		Long: `Run a small interval -> Take -> Map pipeline with probes on Take and Map and
send its events to a collector. Start "streamlens collect" first, or pass
--register to add the demo probe points to the registry.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			codec, err := telemetry.CodecByName(viper.GetString(collectorCodecConfigKey))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return workflow.Demo(ctx, domain.DemoArgs{
				URL:               viper.GetString(transportURLConfigKey),
				Codec:             codec,
				Period:            demoPeriodFlag,
				Count:             demoCountFlag,
				WriteTimeout:      viper.GetDuration(writeTimeoutConfigKey),
				ReconnectInterval: viper.GetDuration(reconnectIntervalConfigKey),
				Register:          demoRegisterFlag,
				Probes:            m.Path(viper.GetString(probesConfigKey)),
			})
		},
	}

	configureDemoFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func configureDemoFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&demoURLFlag, urlFlagName, "u", viper.GetString(transportURLConfigKey), "collector WebSocket URL")
	bindFlagToConfig(cmd.Flags().Lookup(urlFlagName), transportURLConfigKey)

	cmd.Flags().IntVarP(&demoCountFlag, "count", "n", domain.DefaultDemoCount, "number of values the pipeline takes")
	cmd.Flags().DurationVar(&demoPeriodFlag, "period", domain.DefaultDemoPeriod, "interval between source values")
	cmd.Flags().BoolVar(&demoRegisterFlag, "register", false, "register the demo probe points before running")
}
