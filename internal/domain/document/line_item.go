package document

import (
	"fmt"
	"time"

	"github.com/dgsales/backend/internal/domain/shared"
	"github.com/dgsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKind distinguishes the three line collections of a document
type LineKind string

const (
	LineKindItem      LineKind = "item"      // product line (e.g. a DG set)
	LineKindService   LineKind = "service"   // service line (installation, AMC)
	LineKindTransport LineKind = "transport" // the single optional transport/freight charge
)

// IsValid checks if the kind is a valid LineKind
func (k LineKind) IsValid() bool {
	switch k {
	case LineKindItem, LineKindService, LineKindTransport:
		return true
	}
	return false
}

// LineValuation holds the derived monetary figures for one line.
// Each field is rounded to 2 decimal places at the point of computation;
// the figures are never accumulated in full precision and rounded once.
type LineValuation struct {
	LineSubtotal   valueobject.Money `json:"line_subtotal"`   // quantity * unit price
	DiscountAmount valueobject.Money `json:"discount_amount"` // subtotal * discount% / 100
	TaxableAmount  valueobject.Money `json:"taxable_amount"`  // subtotal - discount
	TaxAmount      valueobject.Money `json:"tax_amount"`      // taxable * tax% / 100
	LineTotal      valueobject.Money `json:"line_total"`      // taxable + tax
}

// ValuateLine computes the derived figures for one line from its raw inputs.
// Pure function, safe to call on every edit. Inputs are assumed non-negative
// with percentages in [0,100]; validation happens at the boundary
// (ValidateLineInputs) so a zero quantity or price simply yields zeros.
func ValuateLine(quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) LineValuation {
	subtotal := valueobject.NewMoney(quantity.Mul(unitPrice)).Round2()
	discount := subtotal.CalculatePercentage(discountPercent).Round2()
	taxable := subtotal.Subtract(discount).Round2()
	tax := taxable.CalculatePercentage(taxRatePercent).Round2()
	total := taxable.Add(tax).Round2()

	return LineValuation{
		LineSubtotal:   subtotal,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      tax,
		LineTotal:      total,
	}
}

// ValidateLineInputs rejects negative quantities/prices and out-of-range
// percentages. The error names the offending field so the caller can report
// it, per the numeric-input error policy.
func ValidateLineInputs(quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidNumericInput, "Quantity cannot be negative")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidNumericInput, "Unit price cannot be negative")
	}
	if err := validatePercent("Discount percent", discountPercent); err != nil {
		return err
	}
	return validatePercent("Tax rate percent", taxRatePercent)
}

func validatePercent(field string, percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError(shared.CodeInvalidNumericInput,
			fmt.Sprintf("%s must be between 0 and 100, got %s", field, percent.String()))
	}
	return nil
}

// LineItem represents one priced line of a commercial document: a product
// item, a service item, or the transport charge. The derived fields are
// refreshed by Recompute and must never be edited independently of the
// raw inputs.
type LineItem struct {
	ID              uuid.UUID       `json:"id"`
	Kind            LineKind        `json:"kind"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	LineValuation
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLineItem creates a line item and computes its derived figures
func NewLineItem(kind LineKind, description string, quantity, unitPrice, discountPercent, taxRatePercent decimal.Decimal) (*LineItem, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_LINE_KIND", fmt.Sprintf("Unknown line kind %q", kind))
	}
	if err := ValidateLineInputs(quantity, unitPrice, discountPercent, taxRatePercent); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &LineItem{
		ID:              uuid.New(),
		Kind:            kind,
		Description:     description,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		TaxRatePercent:  taxRatePercent,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	item.Recompute()
	return item, nil
}

// Recompute refreshes the derived figures from the raw inputs
func (li *LineItem) Recompute() {
	li.LineValuation = ValuateLine(li.Quantity, li.UnitPrice, li.DiscountPercent, li.TaxRatePercent)
}

// Update replaces the raw inputs and recomputes the derived figures.
// A nil field keeps the current value.
func (li *LineItem) Update(quantity, unitPrice, discountPercent, taxRatePercent *decimal.Decimal) error {
	q, p, d, t := li.Quantity, li.UnitPrice, li.DiscountPercent, li.TaxRatePercent
	if quantity != nil {
		q = *quantity
	}
	if unitPrice != nil {
		p = *unitPrice
	}
	if discountPercent != nil {
		d = *discountPercent
	}
	if taxRatePercent != nil {
		t = *taxRatePercent
	}
	if err := ValidateLineInputs(q, p, d, t); err != nil {
		return err
	}

	li.Quantity, li.UnitPrice, li.DiscountPercent, li.TaxRatePercent = q, p, d, t
	li.Recompute()
	li.UpdatedAt = time.Now()
	return nil
}

// SetDescription sets the line description
func (li *LineItem) SetDescription(description string) {
	li.Description = description
	li.UpdatedAt = time.Now()
}
