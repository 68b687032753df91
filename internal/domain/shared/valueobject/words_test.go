package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "Zero Rupees Only"},
		{"single_digit", "7", "Seven Rupees Only"},
		{"teens", "14", "Fourteen Rupees Only"},
		{"two_digits", "99", "Ninety Nine Rupees Only"},
		{"round_hundred", "100", "One Hundred Rupees Only"},
		{"hundreds_with_remainder", "245", "Two Hundred and Forty Five Rupees Only"},
		{"round_thousand", "1000", "One Thousand Rupees Only"},
		{"round_lakh", "100000", "One Lakh Rupees Only"},
		{"round_crore", "10000000", "One Crore Rupees Only"},
		{
			"mixed_groups",
			"1234567",
			"Twelve Lakh Thirty Four Thousand Five Hundred and Sixty Seven Rupees Only",
		},
		{
			"crore_count_over_ninety_nine",
			"1000000000",
			"One Hundred Crore Rupees Only",
		},
		{
			"full_decomposition",
			"123456789",
			"Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred and Eighty Nine Rupees Only",
		},
		{"with_paise", "1234.56", "One Thousand Two Hundred and Thirty Four Rupees and Fifty Six Paise Only"},
		{"only_paise", "0.50", "Zero Rupees and Fifty Paise Only"},
		{"paise_rounding_carry", "99.999", "One Hundred Rupees Only"},
		{"negative", "-500", "Minus Five Hundred Rupees Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, AmountInWords(m))
		})
	}
}

func TestNumberInWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{1, "One"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{21, "Twenty One"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{101, "One Hundred and One"},
		{999, "Nine Hundred and Ninety Nine"},
		{1000, "One Thousand"},
		{99999, "Ninety Nine Thousand Nine Hundred and Ninety Nine"},
		{100000, "One Lakh"},
		{212400, "Two Lakh Twelve Thousand Four Hundred"},
		{218300, "Two Lakh Eighteen Thousand Three Hundred"},
		{10000000, "One Crore"},
		{-42, "Minus Forty Two"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, NumberInWords(tt.n))
		})
	}
}
