// internal/dataset/dataset.go
// Package dataset loads financial-report records with their question/answer
// pairs from the FinQA-style JSON corpus.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
)

// QA is a single question with its ground-truth answer string.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Entry is one financial-report record: narrative text around a table, plus
// one or more QA pairs.
type Entry struct {
	ID       string     `json:"entry_id"`
	PreText  []string   `json:"pre_text"`
	PostText []string   `json:"post_text"`
	Table    [][]string `json:"table"`
	QAPairs  []QA       `json:"qa_pairs"`
}

// rawItem mirrors the corpus layout: a single "qa" object, or numbered
// "qa_0"/"qa_1" keys when an entry carries two questions.
type rawItem struct {
	PreText  []string   `json:"pre_text"`
	PostText []string   `json:"post_text"`
	Table    [][]string `json:"table"`
	QA       *QA        `json:"qa"`
	QA0      *QA        `json:"qa_0"`
	QA1      *QA        `json:"qa_1"`
}

// Load reads the corpus file and flattens each item into an Entry with a
// stable entry_NNNN identifier.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %q: %w", path, err)
	}

	var items []rawItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse dataset %q: %w", path, err)
	}

	entries := make([]Entry, 0, len(items))
	for idx, item := range items {
		entry := Entry{
			ID:       fmt.Sprintf("entry_%04d", idx),
			PreText:  item.PreText,
			PostText: item.PostText,
			Table:    item.Table,
		}
		for _, qa := range []*QA{item.QA, item.QA0, item.QA1} {
			if qa != nil {
				entry.QAPairs = append(entry.QAPairs, *qa)
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// QuestionCount returns the total number of questions across entries, used
// for quota checks before a run.
func QuestionCount(entries []Entry) int {
	total := 0
	for _, entry := range entries {
		total += len(entry.QAPairs)
	}
	return total
}
