// internal/report/report.go
// Package report writes evaluation artifacts: detailed per-entry results, a
// metrics document with run metadata, and a human-readable summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/MahirManghnani/finbench/internal/answer"
	"github.com/MahirManghnani/finbench/internal/util"
)

// EntryResult records everything produced for one dataset entry. A nil
// processed answer marks a response that failed evaluation or formatting and
// was skipped, not a crashed run.
type EntryResult struct {
	EntryID          string    `json:"entry_id"`
	Questions        []string  `json:"questions"`
	ExpectedAnswers  []string  `json:"expected_answers"`
	ModelResponses   []string  `json:"model_responses"`
	ProcessedAnswers []*string `json:"processed_answers"`
}

// RunSummary is the metrics document for one evaluation run.
type RunSummary struct {
	Metrics            answer.BatchMetrics `json:"accuracies"`
	ProcessedQuestions int                 `json:"processed_questions"`
	TotalQuestions     int                 `json:"total_questions"`
	CompletionPercent  float64             `json:"completion_percentage"`
	Timestamp          string              `json:"timestamp"`
}

// NewRunSummary assembles a RunSummary with completion bookkeeping.
func NewRunSummary(metrics answer.BatchMetrics, processed, total int, at time.Time) RunSummary {
	completion := 0.0
	if total > 0 {
		completion = float64(processed) / float64(total) * 100
	}
	return RunSummary{
		Metrics:            metrics,
		ProcessedQuestions: processed,
		TotalQuestions:     total,
		CompletionPercent:  completion,
		Timestamp:          at.Format("20060102_150405"),
	}
}

// Write persists the detailed results, the metrics document, and a text
// summary into dir, timestamped so repeated runs never clobber each other.
// It returns the path of the metrics file.
func Write(dir string, results []EntryResult, summary RunSummary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}

	detailed, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal detailed results: %w", err)
	}
	detailedPath := filepath.Join(dir, fmt.Sprintf("detailed_results_%s.json", summary.Timestamp))
	if err := util.WriteFile(detailedPath, detailed); err != nil {
		return "", fmt.Errorf("write detailed results: %w", err)
	}

	metrics, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}
	metricsPath := filepath.Join(dir, fmt.Sprintf("accuracies_%s.json", summary.Timestamp))
	if err := util.WriteFile(metricsPath, metrics); err != nil {
		return "", fmt.Errorf("write metrics: %w", err)
	}

	summaryPath := filepath.Join(dir, fmt.Sprintf("summary_%s.txt", summary.Timestamp))
	if err := util.WriteFile(summaryPath, []byte(textSummary(summary))); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}

	return metricsPath, nil
}

// textSummary renders the plain-text artifact.
func textSummary(summary RunSummary) string {
	var b strings.Builder
	b.WriteString("Evaluation Results\n")
	b.WriteString("==================\n\n")
	fmt.Fprintf(&b, "Processed %d/%d questions (%.1f%% complete)\n\n",
		summary.ProcessedQuestions, summary.TotalQuestions, summary.CompletionPercent)
	fmt.Fprintf(&b, "prefix_match_rate: %.2f%%\n", summary.Metrics.PrefixMatchRate*100)
	fmt.Fprintf(&b, "suffix_match_rate: %.2f%%\n", summary.Metrics.SuffixMatchRate*100)
	fmt.Fprintf(&b, "decimal_places_match_rate: %.2f%%\n", summary.Metrics.DecimalPlacesMatchRate*100)
	if summary.Metrics.MeanSMAPE != nil {
		fmt.Fprintf(&b, "mean_smape: %.2f%%\n", *summary.Metrics.MeanSMAPE)
	} else {
		b.WriteString("mean_smape: n/a (no pair compared successfully)\n")
	}
	return b.String()
}

// PrintSummary writes a colored run summary to the console.
func PrintSummary(out io.Writer, summary RunSummary) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgWhite)
	value := color.New(color.FgGreen, color.Bold)

	header.Fprintln(out, "\nEvaluation Results")
	header.Fprintln(out, strings.Repeat("-", 50))

	label.Fprintf(out, "Processed %d/%d questions (%.1f%% complete)\n",
		summary.ProcessedQuestions, summary.TotalQuestions, summary.CompletionPercent)

	value.Fprintf(out, "prefix_match_rate:         %.2f%%\n", summary.Metrics.PrefixMatchRate*100)
	value.Fprintf(out, "suffix_match_rate:         %.2f%%\n", summary.Metrics.SuffixMatchRate*100)
	value.Fprintf(out, "decimal_places_match_rate: %.2f%%\n", summary.Metrics.DecimalPlacesMatchRate*100)
	if summary.Metrics.MeanSMAPE != nil {
		value.Fprintf(out, "mean_smape:                %.2f%%\n", *summary.Metrics.MeanSMAPE)
	} else {
		color.New(color.FgYellow).Fprintln(out, "mean_smape:                n/a")
	}
}
