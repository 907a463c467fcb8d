// internal/prompt/prompt.go
// Package prompt assembles the system and question prompts sent to the model.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MahirManghnani/finbench/internal/dataset"
)

// System frames the model as a financial analyst before any question is sent.
const System = "You are a financial analyst, and an expert in reading and performing numerical analysis on financial reports."

// Initial opens every chat session. It pins the closed instruction set and the
// JSON answer contract before the first question arrives.
const Initial = `I will provide financial data and a question about that data. Please respond with the following:

1. A mathematical function that calculates the answer using only these basic operations:
- add(x, y): Returns x + y
- subtract(x, y): Returns x - y
- multiply(x, y): Returns x * y
- divide(x, y): Returns x / y
- exp(x, y): Returns x raised to power y
- greater(x, y): Returns 1 if x > y, otherwise 0

Rules:
 - Each operation must take exactly 2 arguments
 - You can nest operations (e.g., divide(subtract(206588, 181001), 181001))
 - Use only the operations listed above - no other mathematical operations are allowed

2. Formatting instructions for the result:
 - prefix: A string added before the number (e.g., "$" for currency). Use "" if none is needed.
 - suffix: A string added after the number (e.g., "%" for percentages). Use "" if none is needed.
 - rounding: The number of decimal places to round the result to. Use 0 if no rounding is required.
 - multiplier: A number to multiply the result by (e.g., 100 for percentages). Use 1 if no multiplication is required.

Give the output in JSON format.

Example:
question:
what was the percentage change in the net cash from operating activities from 2008 to 2009, given net cash of $206588 in 2009 and $181001 in 2008?

{
    "formula": "divide(subtract(206588, 181001), 181001)",
    "formatting_instructions": {
        "prefix": "",
        "suffix": "%",
        "rounding": 2,
        "multiplier": 100
    }
}`

// Question renders the full report context with the question for the first
// message of an entry's session. Follow-up questions within the same entry go
// through FollowUp instead.
func Question(entry dataset.Entry, question string) string {
	var b strings.Builder

	b.WriteString("pre_text:\n```\n")
	b.WriteString(strings.Join(entry.PreText, "\n"))
	b.WriteString("\n```\n")

	b.WriteString("post_text:\n```\n")
	b.WriteString(strings.Join(entry.PostText, "\n"))
	b.WriteString("\n```\n")

	b.WriteString("table:\n```\n")
	b.WriteString(renderTable(entry.Table))
	b.WriteString("\n```\n")

	b.WriteString("question:\n")
	b.WriteString(question)

	return b.String()
}

// FollowUp renders a subsequent question for an entry whose context is
// already in the session history.
func FollowUp(question string) string {
	return fmt.Sprintf("question: %s", question)
}

// renderTable emits the table rows as JSON arrays, one per line, which keeps
// cell boundaries unambiguous for the model.
func renderTable(table [][]string) string {
	rows := make([]string, 0, len(table))
	for _, row := range table {
		encoded, err := json.Marshal(row)
		if err != nil {
			encoded = []byte(fmt.Sprintf("%q", strings.Join(row, " | ")))
		}
		rows = append(rows, string(encoded))
	}
	return strings.Join(rows, "\n")
}
