// internal/commands/root.go
package finbench

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MahirManghnani/finbench/internal/appconfig"
	"github.com/MahirManghnani/finbench/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	configErr     error
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finbench",
	Short: "finbench — numerical-reasoning evaluation of chat models on financial reports",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			// Commands that need the config surface this; show/help do not.
			configErr = err
			return nil
		}
		applyFlagOverrides(&cfg, cmd.Flags())
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

// applyFlagOverrides lets changed command-line flags win over the JSON config.
func applyFlagOverrides(cfg *appconfig.Config, flags *pflag.FlagSet) {
	if flags.Changed("model") {
		cfg.Model = viper.GetString("model")
	}
	if flags.Changed("dataset") {
		cfg.DatasetPath = viper.GetString("dataset")
	}
	if flags.Changed("debug") {
		cfg.Debug = viper.GetBool("debug")
	}
	if flags.Changed("progress") {
		cfg.Progress = viper.GetBool("progress")
	}
	if flags.Changed("maxQuestions") {
		cfg.MaxQuestions = viper.GetInt("maxQuestions")
	}
	if flags.Changed("resultsDir") {
		cfg.ResultsDir = viper.GetString("resultsDir")
	}
	if flags.Changed("logFile") {
		cfg.LogFile = viper.GetString("logFile")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().String("model", "", "model name to evaluate")
	rootCmd.PersistentFlags().String("dataset", "", "path to the dataset JSON file")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging of model traffic")
	rootCmd.PersistentFlags().Bool("progress", false, "show a live progress view during runs")
	rootCmd.PersistentFlags().Int("maxQuestions", 0, "stop after this many questions (0 = no limit)")
	rootCmd.PersistentFlags().String("resultsDir", "", "directory evaluation artifacts are written to")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("dataset", rootCmd.PersistentFlags().Lookup("dataset"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))
	_ = viper.BindPFlag("maxQuestions", rootCmd.PersistentFlags().Lookup("maxQuestions"))
	_ = viper.BindPFlag("resultsDir", rootCmd.PersistentFlags().Lookup("resultsDir"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// requireConfig returns the loaded configuration or the error that prevented
// loading it.
func requireConfig() (*appconfig.Config, error) {
	if currentConfig != nil {
		return currentConfig, nil
	}
	if configErr != nil {
		return nil, configErr
	}
	return nil, errors.New("no configuration loaded")
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool {
	if currentConfig != nil {
		return currentConfig.Debug
	}
	return viper.GetBool("debug")
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
