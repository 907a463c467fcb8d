// internal/commands/generate.go
package finbench

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MahirManghnani/finbench/internal/dataset"
	"github.com/MahirManghnani/finbench/internal/training"
)

var trainingOutDir string

// generateCmd derives fine-tuning data from the labeled corpus.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate fine-tuning train/test data from the labeled corpus",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}

		entries, err := dataset.Load(cfg.DatasetPath)
		if err != nil {
			return err
		}

		trainCount, testCount, err := training.Generate(entries, cfg.TrainFraction(), cfg.SplitSeed(), trainingOutDir)
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
			"Wrote %d training examples and %d test cases to %s\n", trainCount, testCount, trainingOutDir)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&trainingOutDir, "out", "o", ".", "directory for train_data.json and test_data.json")
	rootCmd.AddCommand(generateCmd)
}
