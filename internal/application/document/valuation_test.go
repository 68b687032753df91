package document

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaindoc "github.com/dgsales/backend/internal/domain/document"
	"github.com/dgsales/backend/internal/domain/shared"
)

func dp(s string) *decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &v
}

func TestValuate(t *testing.T) {
	t.Run("single item document", func(t *testing.T) {
		input := DocumentInput{
			Items: []LineInput{
				{Description: "125 kVA DG Set", Quantity: dp("2"), UnitPrice: dp("100000"),
					DiscountPercent: dp("10"), TaxRatePercent: dp("18")},
			},
		}

		result, err := Valuate(input)
		require.NoError(t, err)

		require.Len(t, result.Items, 1)
		line := result.Items[0].Valuation
		assert.Equal(t, "200000.00", line.LineSubtotal.String())
		assert.Equal(t, "20000.00", line.DiscountAmount.String())
		assert.Equal(t, "180000.00", line.TaxableAmount.String())
		assert.Equal(t, "32400.00", line.TaxAmount.String())
		assert.Equal(t, "212400.00", line.LineTotal.String())

		assert.Equal(t, "212400.00", result.Totals.GrandTotal.String())
		assert.Equal(t, "0.00", result.Totals.RoundOff.String())
	})

	t.Run("item with services and transport", func(t *testing.T) {
		input := DocumentInput{
			Items: []LineInput{
				{Description: "125 kVA DG Set", Quantity: dp("2"), UnitPrice: dp("100000"),
					DiscountPercent: dp("10"), TaxRatePercent: dp("18")},
			},
			Services: []LineInput{
				{Description: "Installation", Quantity: dp("1"), UnitPrice: dp("25000"),
					TaxRatePercent: dp("18")},
			},
			TransportCharge: &LineInput{
				Description: "Freight", Quantity: dp("1"), UnitPrice: dp("5000"),
				TaxRatePercent: dp("18"),
			},
		}

		result, err := Valuate(input)
		require.NoError(t, err)

		require.Len(t, result.Services, 1)
		assert.Equal(t, "29500.00", result.Services[0].Valuation.LineTotal.String())
		assert.Equal(t, "247800.00", result.Totals.GrandTotal.String())
	})

	t.Run("missing numeric fields coerce to zero", func(t *testing.T) {
		input := DocumentInput{
			Items: []LineInput{
				{Description: "DG Set", Quantity: dp("2"), UnitPrice: dp("100000")},
			},
		}

		result, err := Valuate(input)
		require.NoError(t, err)

		line := result.Items[0].Valuation
		assert.Equal(t, "0.00", line.DiscountAmount.String())
		assert.Equal(t, "0.00", line.TaxAmount.String())
		assert.Equal(t, "200000.00", line.LineTotal.String())
	})

	t.Run("entirely empty line values to zeros", func(t *testing.T) {
		result, err := Valuate(DocumentInput{Items: []LineInput{{Description: "blank row"}}})
		require.NoError(t, err)

		assert.Equal(t, "0.00", result.Items[0].Valuation.LineTotal.String())
		assert.True(t, result.Totals.GrandTotal.IsZero())
	})

	t.Run("negative input names the offending field", func(t *testing.T) {
		input := DocumentInput{
			Items: []LineInput{
				{Description: "DG Set", Quantity: dp("-2"), UnitPrice: dp("100000")},
			},
		}

		_, err := Valuate(input)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidNumericInput, domainErr.Code)
		assert.Contains(t, domainErr.Message, "Quantity")
	})

	t.Run("invalid transport charge is rejected", func(t *testing.T) {
		input := DocumentInput{
			TransportCharge: &LineInput{
				Description: "Freight", Quantity: dp("1"), UnitPrice: dp("5000"),
				TaxRatePercent: dp("120"),
			},
		}

		_, err := Valuate(input)
		assert.Error(t, err)
	})

	t.Run("empty document values to zero totals", func(t *testing.T) {
		result, err := Valuate(DocumentInput{})
		require.NoError(t, err)
		assert.True(t, result.Totals.GrandTotal.IsZero())
		assert.Empty(t, result.Items)
		assert.Empty(t, result.Services)
	})
}

func TestPresent(t *testing.T) {
	input := DocumentInput{
		Items: []LineInput{
			{Description: "125 kVA DG Set", Quantity: dp("2"), UnitPrice: dp("100000"),
				DiscountPercent: dp("10"), TaxRatePercent: dp("18")},
		},
		TransportCharge: &LineInput{
			Description: "Freight", Quantity: dp("1"), UnitPrice: dp("5000"),
			TaxRatePercent: dp("18"),
		},
	}

	result, err := Valuate(input)
	require.NoError(t, err)

	view := Present(result.Totals)

	assert.Equal(t, "205000.00", view.Subtotal.String())
	assert.Equal(t, "20000.00", view.TotalDiscount.String())
	assert.Equal(t, "33300.00", view.TotalTax.String())
	assert.Equal(t, "0.00", view.RoundOff.String())
	assert.Equal(t, "218300.00", view.GrandTotal.String())
	assert.Equal(t, "Two Lakh Eighteen Thousand Three Hundred Rupees Only", view.GrandTotalInWords)
}

func TestLineFromInput(t *testing.T) {
	in := LineInput{Description: "DG Set", Quantity: dp("2"), UnitPrice: dp("100000")}

	line := lineFromInput(in, domaindoc.LineKindItem)

	assert.Equal(t, domaindoc.LineKindItem, line.Kind)
	assert.True(t, line.Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, line.DiscountPercent.IsZero())
}
