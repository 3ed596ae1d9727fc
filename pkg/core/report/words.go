package report

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// WordsLimit is the first amount NumberToWords refuses.
const WordsLimit = 5_000_000_000

var ErrAmountTooLarge = errors.New("amount too large to write in words")

var (
	ones = [...]string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = [...]string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	scales = []struct {
		value int64
		name  string
	}{
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}
)

// NumberToWords writes an amount as English cardinals. The amount is rounded
// to cents first; non-zero cents follow the whole part after " and ".
//
//	NumberToWords(1234.56) == "one thousand two hundred thirty-four and fifty-six"
//
// Amounts of WordsLimit or more (in absolute value) return ErrAmountTooLarge.
func NumberToWords(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("cannot write %v in words", amount)
	}
	rounded := decimal.NewFromFloat(amount).Round(2)
	if rounded.Abs().GreaterThanOrEqual(decimal.NewFromInt(WordsLimit)) {
		return "", fmt.Errorf("%w: %s (limit %d)", ErrAmountTooLarge, rounded.StringFixed(2), int64(WordsLimit))
	}
	negative := rounded.IsNegative()
	rounded = rounded.Abs()
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()

	words := cardinal(whole.IntPart())
	if cents > 0 {
		words += " and " + cardinal(cents)
	}
	if negative {
		words = "minus " + words
	}
	return words, nil
}

func cardinal(n int64) string {
	if n < 20 {
		return ones[n]
	}
	var parts []string
	for _, s := range scales {
		if n >= s.value {
			parts = append(parts, belowThousand(n/s.value)+" "+s.name)
			n %= s.value
		}
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100]+" hundred")
		n %= 100
	}
	switch {
	case n == 0:
	case n < 20:
		parts = append(parts, ones[n])
	case n%10 == 0:
		parts = append(parts, tens[n/10])
	default:
		parts = append(parts, tens[n/10]+"-"+ones[n%10])
	}
	return strings.Join(parts, " ")
}
