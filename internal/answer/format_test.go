// internal/answer/format_test.go
package answer

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		number float64
		in     FormattingInstructions
		want   string
	}{
		{
			name:   "defaults",
			number: 1.2345,
			in:     DefaultInstructions(),
			want:   "1.23",
		},
		{
			name:   "zero padded",
			number: 5,
			in:     FormattingInstructions{Rounding: 2, Multiplier: 1},
			want:   "5.00",
		},
		{
			name:   "percentage",
			number: 0.135784,
			in:     FormattingInstructions{Suffix: "%", Rounding: 2, Multiplier: 100},
			want:   "13.58%",
		},
		{
			name:   "currency",
			number: 103102,
			in:     FormattingInstructions{Prefix: "$", Rounding: 0, Multiplier: 1},
			want:   "$103102",
		},
		{
			name:   "prefix precedes sign",
			number: -5,
			in:     FormattingInstructions{Prefix: "$", Rounding: 2, Multiplier: 1},
			want:   "$-5.00",
		},
		{
			name:   "rounding zero drops decimals",
			number: 3.7,
			in:     FormattingInstructions{Rounding: 0, Multiplier: 1},
			want:   "4",
		},
		{
			name:   "both affixes",
			number: 1.031,
			in:     FormattingInstructions{Prefix: "$", Suffix: "%", Rounding: 2, Multiplier: 100},
			want:   "$103.10%",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Format(tt.number, tt.in); got != tt.want {
				t.Fatalf("Format(%v, %+v) = %q, want %q", tt.number, tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		number float64
		in     FormattingInstructions
	}{
		{name: "plain", number: 12.3456, in: FormattingInstructions{Rounding: 2, Multiplier: 1}},
		{name: "percentage", number: 0.135784, in: FormattingInstructions{Suffix: "%", Rounding: 2, Multiplier: 100}},
		{name: "currency", number: 206588, in: FormattingInstructions{Prefix: "$", Rounding: 0, Multiplier: 1}},
		{name: "negative", number: -41.7, in: FormattingInstructions{Prefix: "$", Suffix: "%", Rounding: 3, Multiplier: 1}},
		{name: "high precision", number: 1.0 / 3.0, in: FormattingInstructions{Rounding: 6, Multiplier: 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			display := Format(tt.number, tt.in)
			parsed, err := Parse(display)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", display, err)
			}

			if parsed.Prefix != tt.in.Prefix {
				t.Errorf("prefix = %q, want %q", parsed.Prefix, tt.in.Prefix)
			}
			if parsed.Suffix != tt.in.Suffix {
				t.Errorf("suffix = %q, want %q", parsed.Suffix, tt.in.Suffix)
			}
			if parsed.DecimalPlaces != tt.in.Rounding {
				t.Errorf("decimal places = %d, want %d", parsed.DecimalPlaces, tt.in.Rounding)
			}

			scale := math.Pow(10, float64(tt.in.Rounding))
			rounded := math.Round(tt.number*tt.in.Multiplier*scale) / scale
			if math.Abs(parsed.Number-rounded) > 1e-9 {
				t.Errorf("number = %v, want %v", parsed.Number, rounded)
			}
		})
	}
}
