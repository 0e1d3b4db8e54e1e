package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de referencia del motor de precios.
//
// Escenario base: costo=1000, margen=20% → basePrice=1250 → unitPrice=1400.00
// (1250 * 1.12). El margen recalculado desde ese precio debe devolver ≈ 20.0.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPriceFromCostAndMargin_VectorBase(t *testing.T) {
	price := pricing.PriceFromCostAndMargin(dec("1000"), dec("20"))
	assert.True(t, dec("1400").Equal(price.Round(2)),
		"costo 1000 con margen 20%% debe dar precio 1400.00, obtuvo %s", price)
}

func TestPriceFromCostAndMargin_MargenSeLimitaA99(t *testing.T) {
	// Margen ≥ 100 se recorta a 99 para no dividir por cero ni dar base negativa.
	p100 := pricing.PriceFromCostAndMargin(dec("50"), dec("100"))
	p150 := pricing.PriceFromCostAndMargin(dec("50"), dec("150"))
	p99 := pricing.PriceFromCostAndMargin(dec("50"), dec("99"))

	assert.True(t, p99.Equal(p100), "margen 100 debe comportarse como 99")
	assert.True(t, p99.Equal(p150), "margen 150 debe comportarse como 99")
	assert.True(t, p100.IsPositive())
}

func TestMarginFromCostAndPrice_BaseNoPositiva(t *testing.T) {
	assert.True(t, pricing.MarginFromCostAndPrice(dec("100"), decimal.Zero).IsZero(),
		"precio 0 implica base 0 y el margen debe reportarse como 0, no fallar")
	assert.True(t, pricing.MarginFromCostAndPrice(dec("100"), dec("-5")).IsZero())
}

func TestMarginFromCostAndPrice_CostoCero(t *testing.T) {
	// Costo 0 es conceptualmente margen 100%; el motor lo reporta tal cual.
	m := pricing.MarginFromCostAndPrice(decimal.Zero, dec("112"))
	assert.True(t, dec("100").Equal(m.Round(2)), "obtuvo %s", m)
}

// TestRoundTrip_MargenPrecioMargen verifica la propiedad de ida y vuelta:
// marginFromCostAndPrice(cost, priceFromCostAndMargin(cost, m)) ≈ m para todo
// margen en [0, 98].
func TestRoundTrip_MargenPrecioMargen(t *testing.T) {
	tolerance := dec("0.000000001")
	costs := []string{"1", "10", "999.99", "1000", "123456.78"}

	for m := 0; m <= 98; m += 7 {
		margin := decimal.NewFromInt(int64(m))
		for _, c := range costs {
			cost := dec(c)
			price := pricing.PriceFromCostAndMargin(cost, margin)
			back := pricing.MarginFromCostAndPrice(cost, price)
			diff := back.Sub(margin).Abs()
			assert.True(t, diff.LessThan(tolerance),
				"round-trip margen %d costo %s: esperaba %s, obtuvo %s", m, c, margin, back)
		}
	}
}

func TestLineTotal_Linealidad(t *testing.T) {
	unit := dec("1400")
	single := pricing.LineTotal(unit, dec("3"))
	double := pricing.LineTotal(unit, dec("6"))
	assert.True(t, single.Mul(decimal.NewFromInt(2)).Equal(double),
		"duplicar la cantidad debe duplicar el monto")
}

func TestLineTotal_CantidadCeroEsUno(t *testing.T) {
	unit := dec("250")
	assert.True(t, unit.Equal(pricing.LineTotal(unit, decimal.Zero)))
	assert.True(t, unit.Equal(pricing.LineTotal(unit, dec("-4"))))
}

// ── ProfitBreakdown ───────────────────────────────────────────────────────────

// TestProfitBreakdown_EscenarioPrivado reproduce el vector de referencia:
// monto=50000, costo unitario=1000, cantidad=10, sector PRIVATE.
//
//	base        = 50000 / 1.12          = 44642.86
//	IVA         = 50000 - base          =  5357.14
//	retención   = 1500 + (base-30000)*7% =  2525.00
//	utilidad    = base - 10000 - 2525   = 32117.86
//	efectivo    = 50000 (privado recibe el monto completo)
func TestProfitBreakdown_EscenarioPrivado(t *testing.T) {
	b := pricing.ProfitBreakdown(dec("50000"), dec("1000"), dec("10"), pricing.SectorPrivate)

	assert.True(t, dec("44642.86").Equal(b.BaseAmount.Round(2)), "base: %s", b.BaseAmount)
	assert.True(t, dec("5357.14").Equal(b.Tax.Round(2)), "IVA: %s", b.Tax)
	assert.True(t, dec("10000").Equal(b.TotalCost), "costo total: %s", b.TotalCost)
	assert.True(t, dec("2525").Equal(b.Withholding.Round(2)), "retención: %s", b.Withholding)
	assert.True(t, dec("32117.86").Equal(b.NetProfit.Round(2)), "utilidad: %s", b.NetProfit)
	assert.True(t, dec("50000").Equal(b.CashReceived), "efectivo: %s", b.CashReceived)
	assert.True(t, b.TaxRetention.IsZero(), "privado no tiene retención de IVA")
}

func TestProfitBreakdown_EscenarioGobierno(t *testing.T) {
	amount := dec("50000")
	b := pricing.ProfitBreakdown(amount, dec("1000"), dec("10"), pricing.SectorGovernment)

	// Retención de IVA: 5357.14 * 15% = 803.57
	assert.True(t, dec("803.57").Equal(b.TaxRetention.Round(2)), "retención IVA: %s", b.TaxRetention)
	// Efectivo = monto - ISR - retención IVA
	expectedCash := amount.Sub(b.Withholding).Sub(b.TaxRetention)
	assert.True(t, expectedCash.Equal(b.CashReceived))
	assert.True(t, b.CashReceived.LessThanOrEqual(amount),
		"gobierno siempre recibe efectivo ≤ monto")
}

func TestProfitBreakdown_RetencionBajoUmbral(t *testing.T) {
	// base = 11200/1.12 = 10000 ≤ 30000 → retención plana del 5%.
	b := pricing.ProfitBreakdown(dec("11200"), dec("100"), dec("1"), pricing.SectorPrivate)
	assert.True(t, dec("500").Equal(b.Withholding.Round(2)), "retención: %s", b.Withholding)
}

func TestProfitBreakdown_PartidasEnOrdenFijo(t *testing.T) {
	priv := pricing.ProfitBreakdown(dec("1120"), dec("100"), dec("1"), pricing.SectorPrivate)
	gov := pricing.ProfitBreakdown(dec("1120"), dec("100"), dec("1"), pricing.SectorGovernment)

	require.Len(t, priv.Lines, 4)
	require.Len(t, gov.Lines, 5)

	labels := func(ls []pricing.BreakdownLine) []string {
		out := make([]string, len(ls))
		for i, l := range ls {
			out[i] = l.Label
		}
		return out
	}
	assert.Equal(t, []string{
		"Monto base (sin IVA)", "Costo total", "Retención ISR", "Utilidad neta",
	}, labels(priv.Lines))
	assert.Equal(t, []string{
		"Monto base (sin IVA)", "Costo total", "Retención ISR", "Retención IVA 15%", "Utilidad neta",
	}, labels(gov.Lines))
}

func TestParseSector_Total(t *testing.T) {
	assert.Equal(t, pricing.SectorGovernment, pricing.ParseSector("Government"))
	assert.Equal(t, pricing.SectorGovernment, pricing.ParseSector("GOVERNMENT"))
	assert.Equal(t, pricing.SectorPrivate, pricing.ParseSector("Private"))
	assert.Equal(t, pricing.SectorPrivate, pricing.ParseSector(""))
	assert.Equal(t, pricing.SectorPrivate, pricing.ParseSector("cualquier cosa"))
}
