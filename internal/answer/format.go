// internal/answer/format.go
package answer

import "strconv"

// Format renders a number according to the given instructions: apply the
// multiplier, round to the requested decimal places, zero-pad to exactly that
// many digits, and wrap in the prefix and suffix. Rounding is half-to-even
// (strconv's 'f' formatting); the comparison metric tolerates the half-unit
// difference against implementations that round half away from zero.
//
// The prefix precedes the sign, so Format(-5, {Prefix: "$"}) yields "$-5.00".
// The expected-answer corpus uses this convention.
func Format(number float64, in FormattingInstructions) string {
	value := number * in.Multiplier
	rounding := in.Rounding
	if rounding < 0 {
		rounding = 0
	}
	return in.Prefix + strconv.FormatFloat(value, 'f', rounding, 64) + in.Suffix
}
