// Package cmd provides the root command and CLI setup for streamlens.
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"streamlens.dev/pkg/streamlens/internal/adapter"
	"streamlens.dev/pkg/streamlens/internal/controller"
	"streamlens.dev/pkg/streamlens/internal/domain"
	m "streamlens.dev/pkg/streamlens/internal/model"
)

var goFileAdapter adapter.SyntaxAdapter
var sourceFSAdapter adapter.SourceFSAdapter
var probeStore adapter.ProbeStore
var sessionStore adapter.SessionStore
var locator domain.Locator
var workflow domain.Workflow
var ui controller.UI

// probesFileFlag is a root-level flag naming the probe registry file.
var probesFileFlag string

// eventsDirFlag is a root-level flag naming the session event log directory.
var eventsDirFlag string

// codecFlag selects the wire codec shared by collect and demo.
var codecFlag string

// verboseFlag forces debug logging.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	probeStore = adapter.NewProbeStore()
	sessionStore = adapter.NewSessionStore()
	locator = domain.NewLocator(domain.NewAllowList(viper.GetStringSlice(operatorsConfigKey)...))
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		goFileAdapter,
		probeStore,
		sessionStore,
		ui,
		locator,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`

const locationHelp = `Locations are given as FILE:LINE:COLUMN with one-based line and column,
the way editors and compilers print them.`

const rootLongDescription = `Streamlens shows what flows through the operators of a reactive pipeline.
Pick an operator in the source, register it as a probe point, and watch the
subscribe, next, error, complete and unsubscribe events it reports at
runtime.

` + pathPatternsHelp

const listLongDescription = `List registered probe points, or with --candidates the operator calls that
could be probed in the given paths (default: current module).

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streamlens",
		Short: "Reactive stream probe tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a root command with the persistent flags attached.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(
			&probesFileFlag, probesFlagName,
			viper.GetString(probesConfigKey),
			"file holding the registered probe points",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(probesFlagName), probesConfigKey)

	cmd.PersistentFlags().StringVar(&eventsDirFlag, eventsFlagName, viper.GetString(eventsConfigKey), "directory for recorded sessions")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(eventsFlagName), eventsConfigKey)

	cmd.PersistentFlags().StringVar(&codecFlag, codecFlagName, viper.GetString(collectorCodecConfigKey), "wire codec: json, cbor or msgpack")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(codecFlagName), collectorCodecConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// parseLocation splits FILE:LINE:COLUMN and converts the one-based line
// and column to the zero-based form the workflows take.
func parseLocation(arg string) (m.Path, int, int, error) {
	rest, columnText, ok := cutLast(arg)
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid location %q: want FILE:LINE:COLUMN", arg)
	}

	file, lineText, ok := cutLast(rest)
	if !ok || file == "" {
		return "", 0, 0, fmt.Errorf("invalid location %q: want FILE:LINE:COLUMN", arg)
	}

	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return "", 0, 0, fmt.Errorf("invalid line %q in %q", lineText, arg)
	}

	column, err := strconv.Atoi(columnText)
	if err != nil || column < 1 {
		return "", 0, 0, fmt.Errorf("invalid column %q in %q", columnText, arg)
	}

	return m.Path(file), line - 1, column - 1, nil
}

func cutLast(s string) (string, string, bool) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return "", "", false
	}

	return s[:i], s[i+1:], true
}
