package document

import (
	"github.com/dgsales/backend/internal/domain/shared/valueobject"
)

// DocumentTotals holds the document-level figures derived from the line
// collections. GrandTotal is rounded to whole rupees; RoundOff carries the
// signed correction so that GrandTotal == Subtotal - TotalDiscount +
// TotalTax + RoundOff.
type DocumentTotals struct {
	Subtotal      valueobject.Money `json:"subtotal"`
	TotalDiscount valueobject.Money `json:"total_discount"`
	TotalTax      valueobject.Money `json:"total_tax"`
	RoundOff      valueobject.Money `json:"round_off"`
	GrandTotal    valueobject.Money `json:"grand_total"`
}

// ComputeTotals recomputes every line's derived figures and aggregates them
// into document-level totals. Policy: round every line, then sum the
// already-rounded values - deterministic under line reordering and exactly
// consistent with the printed per-line amounts. Idempotent pure
// recomputation: calling it twice on unchanged inputs yields identical
// output. This is the single source of truth for document figures; every
// caller that mutates a line must re-invoke it.
func ComputeTotals(items []LineItem, services []LineItem, transport *LineItem) DocumentTotals {
	subtotal := valueobject.ZeroMoney()
	totalDiscount := valueobject.ZeroMoney()
	totalTax := valueobject.ZeroMoney()

	accumulate := func(li *LineItem) {
		li.Recompute()
		subtotal = subtotal.Add(li.LineSubtotal)
		totalDiscount = totalDiscount.Add(li.DiscountAmount)
		totalTax = totalTax.Add(li.TaxAmount)
	}

	for idx := range items {
		accumulate(&items[idx])
	}
	for idx := range services {
		accumulate(&services[idx])
	}
	if transport != nil {
		accumulate(transport)
	}

	unrounded := subtotal.Subtract(totalDiscount).Add(totalTax)

	return DocumentTotals{
		Subtotal:      subtotal.Round2(),
		TotalDiscount: totalDiscount.Round2(),
		TotalTax:      totalTax.Round2(),
		RoundOff:      unrounded.RoundOff(),
		GrandTotal:    unrounded.RoundToUnit(),
	}
}

// GrandTotalUnrounded returns the grand total before the whole-rupee rounding
func (t DocumentTotals) GrandTotalUnrounded() valueobject.Money {
	return t.Subtotal.Subtract(t.TotalDiscount).Add(t.TotalTax)
}

// LineTotalSum sums the already-rounded line totals across the three
// collections. By the round-then-sum policy it reconciles with
// Subtotal - TotalDiscount + TotalTax to the paisa.
func LineTotalSum(items []LineItem, services []LineItem, transport *LineItem) valueobject.Money {
	sum := valueobject.ZeroMoney()
	for idx := range items {
		sum = sum.Add(items[idx].LineTotal)
	}
	for idx := range services {
		sum = sum.Add(services[idx].LineTotal)
	}
	if transport != nil {
		sum = sum.Add(transport.LineTotal)
	}
	return sum
}
