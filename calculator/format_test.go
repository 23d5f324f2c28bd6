package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", FormatCurrency(1234.5))
	assert.Equal(t, "R$ 0,13", FormatCurrency(0.125))
	assert.Equal(t, "-R$ 10,00", FormatCurrency(-10))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "12.68%", FormatPercent(12.6825))
	assert.Equal(t, "5.00%", FormatPercent(5))
}
