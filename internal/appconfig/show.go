// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		fmt.Fprintln(out, "  (no configuration loaded)")
		return
	}

	fmt.Fprintf(out, "  Model:               %s\n", cfg.Model)
	fmt.Fprintf(out, "  Dataset:             %s\n", cfg.DatasetPath)
	fmt.Fprintf(out, "  Train Split:         %.2f (seed %d)\n", cfg.TrainFraction(), cfg.SplitSeed())
	fmt.Fprintf(out, "  Requests/Minute:     %d\n", cfg.RequestsPerMinute)
	fmt.Fprintf(out, "  Daily Limit:         %d\n", cfg.DailyLimit)
	fmt.Fprintf(out, "  Max Questions:       %d\n", cfg.MaxQuestions)
	fmt.Fprintf(out, "  Request Timeout:     %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Retry Attempts:      %d\n", cfg.RetryAttempts())
	fmt.Fprintf(out, "  Results Dir:         %s\n", cfg.ResultsDirPath())
	fmt.Fprintf(out, "  Log File:            %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  API Key Variable:    %s\n", cfg.APIKeyVariable())
	fmt.Fprintf(out, "  Debug:               %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Progress:            %v\n", cfg.Progress)
}
