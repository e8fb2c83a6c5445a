package rupee_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/azenterprise-api/pkg/rupee"
)

func TestGroup_AgrupacionIndia(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00",
		"5.5":        "5.50",
		"999":        "999.00",
		"1000":       "1,000.00",
		"12345":      "12,345.00",
		"123456":     "1,23,456.00",
		"1234567.5":  "12,34,567.50",
		"100000000":  "10,00,00,000.00",
		"-2230.456":  "-2,230.46",
		"-0.001":     "0.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, rupee.Group(decimal.RequireFromString(in)), in)
	}
}

func TestFormat_AgregaSimbolo(t *testing.T) {
	assert.Equal(t, "₹2,230.00", rupee.Format(decimal.NewFromInt(2230)))
}
