// internal/training/generator.go
// Package training derives fine-tuning examples from the labeled corpus:
// prompt text paired with the formula/formatting JSON a model is expected to
// emit.
package training

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MahirManghnani/finbench/internal/answer"
	"github.com/MahirManghnani/finbench/internal/dataset"
	"github.com/MahirManghnani/finbench/internal/logging"
	"github.com/MahirManghnani/finbench/internal/prompt"
	"github.com/MahirManghnani/finbench/internal/util"
)

// Example is one supervised training pair.
type Example struct {
	TextInput string `json:"text_input"`
	Output    string `json:"output"`
}

// TestCase is a held-out question with its expected display answer.
type TestCase struct {
	EntryID        string `json:"entry_id"`
	TextInput      string `json:"text_input"`
	ExpectedAnswer string `json:"expected_answer"`
}

// target mirrors the response contract models are trained toward.
type target struct {
	Formula      string                         `json:"formula"`
	Instructions answer.FormattingInstructions `json:"formatting_instructions"`
}

// Generate splits the corpus and writes train_data.json and test_data.json
// into outDir. Questions whose answers carry no extractable number are
// skipped from the training side.
func Generate(entries []dataset.Entry, trainFraction float64, seed int64, outDir string) (trainCount, testCount int, err error) {
	trainEntries, testEntries := dataset.Split(entries, trainFraction, seed)

	var trainData []Example
	for _, entry := range trainEntries {
		for _, qa := range entry.QAPairs {
			output, ok := answerTarget(qa.Question, qa.Answer)
			if !ok {
				logging.LogEvent("training: skipping %s, no number in answer %q", entry.ID, qa.Answer)
				continue
			}
			encoded, err := json.Marshal(output)
			if err != nil {
				return 0, 0, fmt.Errorf("marshal training target: %w", err)
			}
			trainData = append(trainData, Example{
				TextInput: prompt.Question(entry, qa.Question),
				Output:    string(encoded),
			})
		}
	}

	var testData []TestCase
	for _, entry := range testEntries {
		for _, qa := range entry.QAPairs {
			testData = append(testData, TestCase{
				EntryID:        entry.ID,
				TextInput:      prompt.Question(entry, qa.Question),
				ExpectedAnswer: qa.Answer,
			})
		}
	}

	if err := writeJSON(filepath.Join(outDir, "train_data.json"), trainData); err != nil {
		return 0, 0, err
	}
	if err := writeJSON(filepath.Join(outDir, "test_data.json"), testData); err != nil {
		return 0, 0, err
	}

	return len(trainData), len(testData), nil
}

// answerTarget heuristically reconstructs the formula/formatting pair a
// ground-truth answer implies. The formula degenerates to the answer's own
// number; affixes and rounding come from surface cues in the question and
// answer.
func answerTarget(question, groundTruth string) (target, bool) {
	number, ok := firstNumber(groundTruth)
	if !ok {
		return target{}, false
	}

	lowerQuestion := strings.ToLower(question)
	isPercentage := strings.Contains(lowerQuestion, "percentage") || strings.Contains(groundTruth, "%")
	isCurrency := strings.Contains(groundTruth, "$") || strings.Contains(lowerQuestion, "dollars")

	instructions := answer.FormattingInstructions{Multiplier: 1}
	if isCurrency {
		instructions.Prefix = "$"
	}
	if isPercentage {
		instructions.Suffix = "%"
	}
	if isPercentage || isCurrency {
		instructions.Rounding = 2
	}

	return target{
		Formula:      number,
		Instructions: instructions,
	}, true
}

// firstNumber extracts the first numeric token from an answer string.
func firstNumber(groundTruth string) (string, bool) {
	cleaned := strings.NewReplacer("$", "", "%", "", ",", "").Replace(groundTruth)
	for _, token := range strings.Fields(cleaned) {
		if _, err := strconv.ParseFloat(token, 64); err == nil {
			return token, true
		}
	}
	return "", false
}

func writeJSON(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := util.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
