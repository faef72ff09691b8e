package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"streamlens.dev/pkg/streamlens/internal/editor"
	m "streamlens.dev/pkg/streamlens/internal/model"
)

// lspCmd represents the lsp command.
var lspCmd = newLspCmd()

func newLspCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdio",
		Long: `Serve the Language Server Protocol on stdin/stdout. Editors get a
"Probe <operator>" code action on allowed operator calls and hover info
telling whether the operator under the cursor is registered.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			verbosity := 0
			if viper.GetBool(logVerboseKey) {
				verbosity = 2
			}

			commonlog.Configure(verbosity, nil)

			server := editor.NewServer(
				goFileAdapter,
				locator,
				probeStore,
				m.Path(viper.GetString(probesConfigKey)),
				buildVersion(),
			)

			return server.RunStdio()
		},
	}
}

func init() {
	rootCmd.AddCommand(lspCmd)
}
