package view

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency describes how amounts are written for one currency.
type Currency struct {
	Code        string
	Symbol      string
	DecimalSep  string
	GroupSep    string
	SymbolSpace bool
}

var currencies = map[string]Currency{
	"BRL": {Code: "BRL", Symbol: "R$", DecimalSep: ",", GroupSep: ".", SymbolSpace: true},
	"USD": {Code: "USD", Symbol: "$", DecimalSep: ".", GroupSep: ","},
	"EUR": {Code: "EUR", Symbol: "€", DecimalSep: ",", GroupSep: ".", SymbolSpace: true},
}

const DefaultCurrency = "BRL"

// Formatter writes amounts rounded to cents in a fixed currency.
type Formatter struct {
	currency Currency
}

func NewFormatter(code string) (Formatter, error) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Formatter{}, fmt.Errorf("unsupported currency %q", code)
	}
	return Formatter{currency: c}, nil
}

func (f Formatter) Currency() Currency {
	return f.currency
}

func (f Formatter) Format(d decimal.Decimal) string {
	c := f.currency
	if c.Code == "" {
		c = currencies[DefaultCurrency]
	}

	neg := d.IsNegative()
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(c.Symbol)
	if c.SymbolSpace {
		b.WriteByte(' ')
	}
	b.WriteString(group(whole, c.GroupSep))
	b.WriteString(c.DecimalSep)
	b.WriteString(frac)
	return b.String()
}

func (f Formatter) FormatFloat(v float64) string {
	return f.Format(decimal.NewFromFloat(v))
}

// group inserts sep every three digits from the right.
func group(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
