package gst_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/gst"
	"github.com/jhoicas/azenterprise-api/pkg/rupee"
)

func item(name string, qty, rate, pct float64) entity.LineItem {
	return entity.LineItem{
		Name:       name,
		Quantity:   decimal.NewFromFloat(qty),
		Rate:       decimal.NewFromFloat(rate),
		GSTPercent: decimal.NewFromFloat(pct),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_EscenarioDosLineas(t *testing.T) {
	res := gst.Compute([]entity.LineItem{
		item("Solar Panel 540W", 1, 1000, 5),
		item("Inverter", 2, 500, 18),
	})

	require.Len(t, res.Lines, 2)
	assert.True(t, res.Lines[0].Amount.Equal(dec("1000")))
	assert.True(t, res.Lines[1].Amount.Equal(dec("1000")))
	assert.True(t, res.Lines[0].GSTAmount.Equal(dec("50")))
	assert.True(t, res.Lines[1].GSTAmount.Equal(dec("180")))

	assert.True(t, res.Totals.Subtotal.Equal(dec("2000")))
	assert.True(t, res.Totals.CGSTTotal.Equal(dec("115")))
	assert.True(t, res.Totals.SGSTTotal.Equal(dec("115")))
	assert.True(t, res.Totals.GrandTotal.Equal(dec("2230")))
	assert.True(t, res.Totals.TaxTotal().Equal(dec("230")))
	assert.Equal(t, "Two Thousand Two Hundred Thirty Rupees Only", rupee.Words(res.Totals.GrandTotal))
}

func TestCompute_ListaVaciaTotalesEnCero(t *testing.T) {
	for _, items := range [][]entity.LineItem{nil, {}, {item("x", 0, 100, 18), item("y", -2, 50, 5)}} {
		res := gst.Compute(items)
		assert.Empty(t, res.Lines)
		assert.True(t, res.Totals.Subtotal.IsZero())
		assert.True(t, res.Totals.CGSTTotal.IsZero())
		assert.True(t, res.Totals.SGSTTotal.IsZero())
		assert.True(t, res.Totals.GrandTotal.IsZero())
	}
}

func TestCompute_CantidadCeroNoAporteNiAparece(t *testing.T) {
	with := gst.Compute([]entity.LineItem{
		item("Panel", 2, 12500, 12),
		item("Cable", 0, 90, 18),
		item("Structure", 1, 4000, 18),
	})
	without := gst.Compute([]entity.LineItem{
		item("Panel", 2, 12500, 12),
		item("Structure", 1, 4000, 18),
	})

	require.Len(t, with.Lines, 2)
	assert.Equal(t, "Panel", with.Lines[0].Item.Name)
	assert.Equal(t, "Structure", with.Lines[1].Item.Name)
	assert.Equal(t, 1, with.Lines[0].Serial)
	assert.Equal(t, 2, with.Lines[1].Serial)
	assert.True(t, with.Totals.GrandTotal.Equal(without.Totals.GrandTotal))
}

func TestCompute_SplitYConsistenciaDeAgregados(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	rates := []int64{0, 5, 12, 18, 28}
	items := make([]entity.LineItem, 0, 200)
	for i := 0; i < 200; i++ {
		items = append(items, entity.LineItem{
			Name:       "item",
			Quantity:   decimal.New(r.Int63n(50), -int32(r.Intn(2))),
			Rate:       decimal.New(r.Int63n(10_000_000), -2),
			GSTPercent: decimal.NewFromInt(rates[r.Intn(len(rates))]),
		})
	}

	res := gst.Compute(items)
	sub, c, s := decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range res.Lines {
		assert.True(t, l.CGST.Equal(l.SGST))
		assert.True(t, l.CGST.Add(l.SGST).Equal(l.GSTAmount))
		assert.True(t, l.LineTotal.Equal(l.Amount.Add(l.GSTAmount)))
		sub, c, s = sub.Add(l.Amount), c.Add(l.CGST), s.Add(l.SGST)
	}
	assert.True(t, res.Totals.Subtotal.Equal(sub))
	assert.True(t, res.Totals.CGSTTotal.Equal(c))
	assert.True(t, res.Totals.SGSTTotal.Equal(s))
	assert.True(t, res.Totals.GrandTotal.Equal(sub.Add(c).Add(s)))
}

func TestCompute_NormalizaUnidadYNegativos(t *testing.T) {
	res := gst.Compute([]entity.LineItem{{
		Name:       "  Earthing Kit ",
		Quantity:   decimal.NewFromInt(1),
		Rate:       decimal.NewFromInt(-10),
		GSTPercent: decimal.NewFromInt(-5),
	}})

	require.Len(t, res.Lines, 1)
	l := res.Lines[0]
	assert.Equal(t, "Earthing Kit", l.Item.Name)
	assert.Equal(t, entity.DefaultUnit, l.Item.Unit)
	assert.True(t, l.Amount.IsZero())
	assert.True(t, l.GSTAmount.IsZero())
}

func TestCompute_SinRuidoDeComaFlotante(t *testing.T) {
	res := gst.Compute([]entity.LineItem{
		{Name: "a", Quantity: dec("3"), Rate: dec("0.1"), GSTPercent: dec("18")},
		{Name: "b", Quantity: dec("1"), Rate: dec("0.2"), GSTPercent: dec("18")},
	})
	assert.True(t, res.Totals.Subtotal.Equal(dec("0.5")))
	assert.True(t, res.Totals.GrandTotal.Equal(dec("0.59")))
}
