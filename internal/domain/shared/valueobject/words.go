package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Indian numbering groups: crore = 10^7, lakh = 10^5.
const (
	croreUnit = 10000000
	lakhUnit  = 100000
)

var wordOnes = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var wordTens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders a Money amount as Indian-English words for legal and
// print purposes, e.g. 1234567 -> "Twelve Lakh Thirty Four Thousand Five
// Hundred and Sixty Seven Rupees Only". A fractional component is rendered
// as paise: "... Rupees and Fifty Paise Only". Negative amounts are not
// expected from the valuation engine but render with a "Minus" prefix rather
// than failing.
func AmountInWords(m Money) string {
	amt := m.Amount()
	if amt.IsNegative() {
		return "Minus " + AmountInWords(m.Abs())
	}

	rupees := amt.Truncate(0)
	paise := amt.Sub(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if paise >= 100 {
		// Rounding the paise carried into the next rupee
		rupees = rupees.Add(decimal.NewFromInt(1))
		paise = 0
	}

	rupeeWords := indianWords(rupees.IntPart())
	if rupeeWords == "" {
		rupeeWords = "Zero"
	}

	if paise > 0 {
		return rupeeWords + " Rupees and " + underHundred(paise) + " Paise Only"
	}
	return rupeeWords + " Rupees Only"
}

// NumberInWords converts a non-negative integer to Indian-English words
// without any currency suffix. Zero renders as "Zero".
func NumberInWords(n int64) string {
	if n < 0 {
		return "Minus " + NumberInWords(-n)
	}
	if n == 0 {
		return "Zero"
	}
	return indianWords(n)
}

// indianWords decomposes n into crore/lakh/thousand/hundred groups and joins
// the non-zero groups in descending magnitude order. Returns "" for 0.
func indianWords(n int64) string {
	if n == 0 {
		return ""
	}

	var parts []string

	if n >= croreUnit {
		// The crore count itself may exceed 99 (e.g. 10^9 = One Hundred
		// Crore), so it is decomposed recursively.
		parts = append(parts, indianWords(n/croreUnit)+" Crore")
		n %= croreUnit
	}

	if n >= lakhUnit {
		parts = append(parts, underHundred(n/lakhUnit)+" Lakh")
		n %= lakhUnit
	}

	if n >= 1000 {
		parts = append(parts, underHundred(n/1000)+" Thousand")
		n %= 1000
	}

	if n >= 100 {
		parts = append(parts, wordOnes[n/100]+" Hundred")
		n %= 100
	}

	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+underHundred(n))
		} else {
			parts = append(parts, underHundred(n))
		}
	}

	return strings.Join(parts, " ")
}

// underHundred converts 1-99 using the ones/teens/tens tables
func underHundred(n int64) string {
	if n < 20 {
		return wordOnes[n]
	}
	result := wordTens[n/10]
	if n%10 != 0 {
		result += " " + wordOnes[n%10]
	}
	return result
}
