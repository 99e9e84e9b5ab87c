package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_BRL(t *testing.T) {
	f, err := NewFormatter("BRL")
	require.NoError(t, err)

	assert.Equal(t, "R$ 35,00", f.Format(decimal.NewFromInt(35)))
	assert.Equal(t, "R$ 179,90", f.FormatFloat(179.9))
	assert.Equal(t, "R$ 1.234,56", f.FormatFloat(1234.56))
	assert.Equal(t, "R$ 1.234.567,00", f.FormatFloat(1234567))
	assert.Equal(t, "R$ 0,00", f.Format(decimal.Zero))
}

func TestFormatter_USD(t *testing.T) {
	f, err := NewFormatter("usd")
	require.NoError(t, err)

	assert.Equal(t, "$35.00", f.FormatFloat(35))
	assert.Equal(t, "$123,456.70", f.FormatFloat(123456.7))
	assert.Equal(t, "-$5.25", f.FormatFloat(-5.25))
}

func TestFormatter_Rounding(t *testing.T) {
	f, err := NewFormatter("BRL")
	require.NoError(t, err)

	assert.Equal(t, "R$ 10,01", f.Format(decimal.RequireFromString("10.005")))
	assert.Equal(t, "R$ 10,00", f.Format(decimal.RequireFromString("10.004")))
}

func TestFormatter_ZeroValueUsesDefault(t *testing.T) {
	var f Formatter
	assert.Equal(t, "R$ 2,50", f.FormatFloat(2.5))
}

func TestNewFormatter_Unsupported(t *testing.T) {
	_, err := NewFormatter("XYZ")
	assert.ErrorContains(t, err, "unsupported currency")
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "1", group("1", "."))
	assert.Equal(t, "123", group("123", "."))
	assert.Equal(t, "1.234", group("1234", "."))
	assert.Equal(t, "123.456", group("123456", "."))
	assert.Equal(t, "1,234,567", group("1234567", ","))
}
