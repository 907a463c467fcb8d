// internal/commands/show_config.go
package finbench

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/MahirManghnani/finbench/internal/appconfig"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings after the JSON config is loaded and flag overrides are applied.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		file := ""
		if cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, cfg)
		if cfg != nil && DebugEnabled() {
			pp.Fprintln(cmd.OutOrStdout(), *cfg)
		}
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
