package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgsales/backend/internal/domain/shared/valueobject"
)

func mustLine(t *testing.T, kind LineKind, desc, qty, price, disc, tax string) LineItem {
	t.Helper()
	li, err := NewLineItem(kind, desc, d(qty), d(price), d(disc), d(tax))
	require.NoError(t, err)
	return *li
}

func TestComputeTotals(t *testing.T) {
	t.Run("single item document", func(t *testing.T) {
		items := []LineItem{
			mustLine(t, LineKindItem, "125 kVA DG Set", "2", "100000", "10", "18"),
		}

		totals := ComputeTotals(items, nil, nil)

		assert.Equal(t, "200000.00", totals.Subtotal.String())
		assert.Equal(t, "20000.00", totals.TotalDiscount.String())
		assert.Equal(t, "32400.00", totals.TotalTax.String())
		assert.Equal(t, "0.00", totals.RoundOff.String())
		assert.Equal(t, "212400.00", totals.GrandTotal.String())
	})

	t.Run("item plus transport charge", func(t *testing.T) {
		items := []LineItem{
			mustLine(t, LineKindItem, "125 kVA DG Set", "2", "100000", "10", "18"),
		}
		transport := mustLine(t, LineKindTransport, "Freight", "1", "5000", "0", "18")

		totals := ComputeTotals(items, nil, &transport)

		assert.Equal(t, "205000.00", totals.Subtotal.String())
		assert.Equal(t, "20000.00", totals.TotalDiscount.String())
		assert.Equal(t, "33300.00", totals.TotalTax.String())
		assert.Equal(t, "0.00", totals.RoundOff.String())
		assert.Equal(t, "218300.00", totals.GrandTotal.String())
	})

	t.Run("mixed items and services", func(t *testing.T) {
		items := []LineItem{
			mustLine(t, LineKindItem, "62.5 kVA DG Set", "1", "450000", "5", "18"),
			mustLine(t, LineKindItem, "AMF Panel", "1", "35000", "0", "18"),
		}
		services := []LineItem{
			mustLine(t, LineKindService, "Installation", "1", "25000", "0", "18"),
		}

		totals := ComputeTotals(items, services, nil)

		// 450000 - 22500 = 427500, tax 76950; 35000 tax 6300; 25000 tax 4500
		assert.Equal(t, "510000.00", totals.Subtotal.String())
		assert.Equal(t, "22500.00", totals.TotalDiscount.String())
		assert.Equal(t, "87750.00", totals.TotalTax.String())
		assert.Equal(t, "575250.00", totals.GrandTotal.String())
	})

	t.Run("empty document yields zeros", func(t *testing.T) {
		totals := ComputeTotals(nil, nil, nil)

		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.TotalDiscount.IsZero())
		assert.True(t, totals.TotalTax.IsZero())
		assert.True(t, totals.RoundOff.IsZero())
		assert.True(t, totals.GrandTotal.IsZero())
	})

	t.Run("fractional figures produce a non-zero round-off", func(t *testing.T) {
		items := []LineItem{
			mustLine(t, LineKindItem, "Battery", "3", "1333.33", "0", "18"),
		}

		totals := ComputeTotals(items, nil, nil)

		// 3999.99 + 720.00 = 4719.99, rounds to 4720 with +0.01 round-off
		assert.Equal(t, "3999.99", totals.Subtotal.String())
		assert.Equal(t, "720.00", totals.TotalTax.String())
		assert.Equal(t, "0.01", totals.RoundOff.String())
		assert.Equal(t, "4720.00", totals.GrandTotal.String())
	})
}

func TestComputeTotals_Properties(t *testing.T) {
	items := []LineItem{
		mustLine(t, LineKindItem, "82.5 kVA DG Set", "1", "512345.67", "7.25", "18"),
		mustLine(t, LineKindItem, "Exhaust piping", "12", "1234.56", "0", "18"),
	}
	services := []LineItem{
		mustLine(t, LineKindService, "Commissioning", "1", "19999.99", "2.5", "18"),
	}
	transport := mustLine(t, LineKindTransport, "Freight", "1", "8750.50", "0", "18")

	t.Run("line totals reconcile with document totals", func(t *testing.T) {
		totals := ComputeTotals(items, services, &transport)

		sum := LineTotalSum(items, services, &transport)
		assert.True(t, sum.Equals(totals.GrandTotalUnrounded()),
			"sum of rounded line totals %s must equal subtotal - discount + tax %s",
			sum.String(), totals.GrandTotalUnrounded().String())
	})

	t.Run("grand total equals unrounded plus round-off", func(t *testing.T) {
		totals := ComputeTotals(items, services, &transport)

		assert.True(t, totals.GrandTotalUnrounded().Add(totals.RoundOff).Equals(totals.GrandTotal))
		assert.True(t, totals.RoundOff.Abs().LessThan(valueobject.NewMoneyFromInt(1)))
	})

	t.Run("recomputation is idempotent", func(t *testing.T) {
		first := ComputeTotals(items, services, &transport)
		second := ComputeTotals(items, services, &transport)

		assert.True(t, first.Subtotal.Equals(second.Subtotal))
		assert.True(t, first.TotalDiscount.Equals(second.TotalDiscount))
		assert.True(t, first.TotalTax.Equals(second.TotalTax))
		assert.True(t, first.RoundOff.Equals(second.RoundOff))
		assert.True(t, first.GrandTotal.Equals(second.GrandTotal))
	})

	t.Run("order of lines does not change totals", func(t *testing.T) {
		forward := ComputeTotals(items, services, &transport)

		reversed := []LineItem{items[1], items[0]}
		backward := ComputeTotals(reversed, services, &transport)

		assert.True(t, forward.GrandTotal.Equals(backward.GrandTotal))
		assert.True(t, forward.RoundOff.Equals(backward.RoundOff))
	})

	t.Run("adding a line never decreases the grand total", func(t *testing.T) {
		base := ComputeTotals(items, nil, nil)

		extra := append([]LineItem{}, items...)
		extra = append(extra, mustLine(t, LineKindItem, "Fuel tank", "1", "15000", "0", "18"))
		grown := ComputeTotals(extra, nil, nil)

		assert.True(t, grown.GrandTotal.GreaterThanOrEqual(base.GrandTotal))
	})
}
