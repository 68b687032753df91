package document

import (
	"github.com/dgsales/backend/internal/domain/document"
	"github.com/dgsales/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// coerce maps a missing numeric field to zero. The forms feeding this
// boundary send partial payloads while the user is still typing, and the
// engine has always treated those as zeros rather than errors.
func coerce(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// valuateInput validates and values one boundary line
func valuateInput(in LineInput, kind document.LineKind) (LineResult, error) {
	q := coerce(in.Quantity)
	p := coerce(in.UnitPrice)
	d := coerce(in.DiscountPercent)
	t := coerce(in.TaxRatePercent)

	if err := document.ValidateLineInputs(q, p, d, t); err != nil {
		return LineResult{}, err
	}

	return LineResult{
		Description: in.Description,
		Kind:        kind,
		Valuation:   document.ValuateLine(q, p, d, t),
	}, nil
}

// Valuate values a whole document payload without touching persistence.
// This is the synchronous surface the editing UI calls after the debounce
// window elapses: every line's derived figures plus the document totals.
func Valuate(input DocumentInput) (*ValuationResult, error) {
	result := &ValuationResult{
		Items:    make([]LineResult, 0, len(input.Items)),
		Services: make([]LineResult, 0, len(input.Services)),
	}

	items := make([]document.LineItem, 0, len(input.Items))
	services := make([]document.LineItem, 0, len(input.Services))
	var transport *document.LineItem

	for _, in := range input.Items {
		lr, err := valuateInput(in, document.LineKindItem)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, lr)
		items = append(items, lineFromInput(in, document.LineKindItem))
	}
	for _, in := range input.Services {
		lr, err := valuateInput(in, document.LineKindService)
		if err != nil {
			return nil, err
		}
		result.Services = append(result.Services, lr)
		services = append(services, lineFromInput(in, document.LineKindService))
	}
	if input.TransportCharge != nil {
		if _, err := valuateInput(*input.TransportCharge, document.LineKindTransport); err != nil {
			return nil, err
		}
		line := lineFromInput(*input.TransportCharge, document.LineKindTransport)
		transport = &line
	}

	result.Totals = document.ComputeTotals(items, services, transport)
	return result, nil
}

func lineFromInput(in LineInput, kind document.LineKind) document.LineItem {
	return document.LineItem{
		Kind:            kind,
		Description:     in.Description,
		Quantity:        coerce(in.Quantity),
		UnitPrice:       coerce(in.UnitPrice),
		DiscountPercent: coerce(in.DiscountPercent),
		TaxRatePercent:  coerce(in.TaxRatePercent),
	}
}

// Present builds the read-only print/PDF view from document totals,
// including the grand total in Indian-English words
func Present(totals document.DocumentTotals) PresentationView {
	return PresentationView{
		Subtotal:          totals.Subtotal,
		TotalDiscount:     totals.TotalDiscount,
		TotalTax:          totals.TotalTax,
		RoundOff:          totals.RoundOff,
		GrandTotal:        totals.GrandTotal,
		GrandTotalInWords: valueobject.AmountInWords(totals.GrandTotal),
	}
}
