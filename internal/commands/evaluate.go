// internal/commands/evaluate.go
package finbench

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/MahirManghnani/finbench/internal/providers/gemini"
	"github.com/MahirManghnani/finbench/internal/ratelimit"
	"github.com/MahirManghnani/finbench/internal/runner"
)

// evaluateCmd runs the configured model over the held-out question split and
// writes the scored results.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate the configured model on the held-out question split",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		apiKey, err := cfg.APIKey()
		if err != nil {
			return err
		}

		limiter := ratelimit.New(cfg.RequestsPerMinute, cfg.DailyLimit)
		provider := gemini.New(cfg, apiKey, limiter)
		defer provider.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		_, err = runner.Run(ctx, runner.Options{
			Config:   cfg,
			Provider: provider,
			Limiter:  limiter,
			Out:      cmd.OutOrStdout(),
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
