package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234,567.89", FormatAmount(1234567.891))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "945,000.00", FormatAmount(945000))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2,000", FormatNumber(2000, 0))
	assert.Equal(t, "1,000.50", FormatNumber(1000.5, 2))
	assert.Equal(t, "12.50%", FormatPercent(12.5))
}
