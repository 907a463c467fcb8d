// internal/answer/answer.go
// Package answer renders formula results as display strings and scores
// generated answers against expected ones. All functions are pure; values are
// constructed per call and safe for concurrent use.
package answer

import "errors"

var (
	// ErrUnparseableAnswer indicates a display string that cannot be
	// decomposed into prefix, numeral, and suffix.
	ErrUnparseableAnswer = errors.New("unparseable answer")
	// ErrMalformedResponse indicates a model response that is not valid
	// JSON after code-fence stripping.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrMissingField indicates a model response missing a required key or
	// carrying an out-of-range field.
	ErrMissingField = errors.New("missing required field")
)

// FormattingInstructions describes how a raw numeric result is rendered as a
// display string.
type FormattingInstructions struct {
	Prefix     string  `json:"prefix"`
	Suffix     string  `json:"suffix"`
	Rounding   int     `json:"rounding"`
	Multiplier float64 `json:"multiplier"`
}

// DefaultInstructions returns the instructions applied when the model omits a
// field: no affixes, two decimal places, unit multiplier.
func DefaultInstructions() FormattingInstructions {
	return FormattingInstructions{Rounding: 2, Multiplier: 1}
}

// ParsedAnswer is the read-only decomposition of a display string.
type ParsedAnswer struct {
	Raw           string  `json:"raw_string"`
	Number        float64 `json:"number"`
	Prefix        string  `json:"prefix"`
	Suffix        string  `json:"suffix"`
	DecimalPlaces int     `json:"decimal_places"`
}

// ComparisonResult scores one generated/expected display-string pair.
type ComparisonResult struct {
	SMAPE              float64 `json:"smape"`
	PrefixMatch        bool    `json:"prefix_match"`
	SuffixMatch        bool    `json:"suffix_match"`
	DecimalPlacesMatch bool    `json:"decimal_places_match"`
}

// Pair is one generated/expected display-string pair submitted for batch
// evaluation.
type Pair struct {
	Generated string `json:"generated"`
	Expected  string `json:"expected"`
}

// BatchMetrics aggregates comparison results across a batch. Match rates are
// computed over every submitted pair, so an unparseable pair scores as a
// non-match on all three rates while contributing nothing to the SMAPE mean.
// MeanSMAPE is nil when no pair compared successfully.
type BatchMetrics struct {
	TotalPairs             int      `json:"total_pairs"`
	ComparedPairs          int      `json:"compared_pairs"`
	PrefixMatchRate        float64  `json:"prefix_match_rate"`
	SuffixMatchRate        float64  `json:"suffix_match_rate"`
	DecimalPlacesMatchRate float64  `json:"decimal_places_match_rate"`
	MeanSMAPE              *float64 `json:"mean_smape,omitempty"`
}
