// internal/answer/compare.go
package answer

import (
	"fmt"
	"math"

	"github.com/MahirManghnani/finbench/internal/util"
)

// SMAPE returns the symmetric mean absolute percentage error between two
// numbers on a 0-200 percentage-point scale. Unlike naive percentage
// difference it is bounded and does not blow up when the expected value is
// near zero. Two exact zeros score 0.
func SMAPE(generated, expected float64) float64 {
	if generated == 0 && expected == 0 {
		return 0
	}
	return 200 * math.Abs(generated-expected) / (math.Abs(generated) + math.Abs(expected))
}

// Compare parses both display strings and scores them for numeric closeness
// and formatting agreement. Affix matches are exact string equality;
// decimal-places match compares the digit count after the decimal point in
// each raw numeral.
func Compare(generated, expected string) (ComparisonResult, error) {
	gen, err := Parse(generated)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("generated answer: %w", err)
	}
	exp, err := Parse(expected)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("expected answer: %w", err)
	}

	return ComparisonResult{
		SMAPE:              SMAPE(gen.Number, exp.Number),
		PrefixMatch:        gen.Prefix == exp.Prefix,
		SuffixMatch:        gen.Suffix == exp.Suffix,
		DecimalPlacesMatch: gen.DecimalPlaces == exp.DecimalPlaces,
	}, nil
}

// EvaluateBatch folds Compare over a batch of pairs. Pairs that fail to
// compare still count toward the match-rate denominators but are excluded
// from the SMAPE mean. An empty batch yields zero-value metrics with no
// mean_smape field.
func EvaluateBatch(pairs []Pair) BatchMetrics {
	metrics := BatchMetrics{TotalPairs: len(pairs)}
	if len(pairs) == 0 {
		return metrics
	}

	var prefixMatches, suffixMatches, placesMatches int
	var totalSMAPE float64

	for _, pair := range pairs {
		result, err := Compare(pair.Generated, pair.Expected)
		if err != nil {
			continue
		}
		metrics.ComparedPairs++
		totalSMAPE += result.SMAPE
		prefixMatches += util.BoolToInt(result.PrefixMatch)
		suffixMatches += util.BoolToInt(result.SuffixMatch)
		placesMatches += util.BoolToInt(result.DecimalPlacesMatch)
	}

	total := float64(metrics.TotalPairs)
	metrics.PrefixMatchRate = float64(prefixMatches) / total
	metrics.SuffixMatchRate = float64(suffixMatches) / total
	metrics.DecimalPlacesMatchRate = float64(placesMatches) / total

	if metrics.ComparedPairs > 0 {
		mean := totalSMAPE / float64(metrics.ComparedPairs)
		metrics.MeanSMAPE = &mean
	}

	return metrics
}
