// internal/report/report_test.go
package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MahirManghnani/finbench/internal/answer"
)

func sampleSummary() RunSummary {
	metrics := answer.EvaluateBatch([]answer.Pair{
		{Generated: "14.14%", Expected: "14.14%"},
		{Generated: "1.0", Expected: "2.0"},
	})
	return NewRunSummary(metrics, 2, 4, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC))
}

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "results")
	processed := "14.14%"
	results := []EntryResult{
		{
			EntryID:          "entry_0000",
			Questions:        []string{"what was the percentage change?"},
			ExpectedAnswers:  []string{"14.14%"},
			ModelResponses:   []string{`{"formula": "1", "formatting_instructions": {}}`},
			ProcessedAnswers: []*string{&processed},
		},
		{
			EntryID:          "entry_0001",
			Questions:        []string{"broken question"},
			ExpectedAnswers:  []string{"1.0"},
			ModelResponses:   []string{"not json"},
			ProcessedAnswers: []*string{nil},
		},
	}

	summary := sampleSummary()
	metricsPath, err := Write(dir, results, summary)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if filepath.Base(metricsPath) != "accuracies_20250601_123000.json" {
		t.Fatalf("unexpected metrics file name: %s", metricsPath)
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("metrics file is not valid JSON: %v", err)
	}
	if decoded["processed_questions"].(float64) != 2 {
		t.Errorf("processed_questions = %v", decoded["processed_questions"])
	}
	accuracies, ok := decoded["accuracies"].(map[string]any)
	if !ok {
		t.Fatalf("accuracies block missing: %v", decoded)
	}
	if _, ok := accuracies["mean_smape"]; !ok {
		t.Error("mean_smape missing from accuracies")
	}

	detailed, err := os.ReadFile(filepath.Join(dir, "detailed_results_20250601_123000.json"))
	if err != nil {
		t.Fatalf("read detailed results: %v", err)
	}
	if !strings.Contains(string(detailed), "entry_0001") {
		t.Error("detailed results missing failed entry")
	}
	if !strings.Contains(string(detailed), "null") {
		t.Error("failed answers should serialize as null")
	}

	text, err := os.ReadFile(filepath.Join(dir, "summary_20250601_123000.txt"))
	if err != nil {
		t.Fatalf("read text summary: %v", err)
	}
	if !strings.Contains(string(text), "Processed 2/4 questions (50.0% complete)") {
		t.Errorf("summary text incomplete:\n%s", text)
	}
	if !strings.Contains(string(text), "prefix_match_rate: 100.00%") {
		t.Errorf("summary missing match rates:\n%s", text)
	}
}

func TestWriteEmptyRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	summary := NewRunSummary(answer.EvaluateBatch(nil), 0, 0, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	metricsPath, err := Write(dir, nil, summary)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if strings.Contains(string(data), "mean_smape") {
		t.Error("empty run should omit mean_smape")
	}
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintSummary(&buf, sampleSummary())

	out := buf.String()
	for _, want := range []string{"Evaluation Results", "Processed 2/4", "mean_smape"} {
		if !strings.Contains(out, want) {
			t.Errorf("console summary missing %q:\n%s", want, out)
		}
	}
}
