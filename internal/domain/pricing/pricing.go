// Package pricing implementa el motor de precios y márgenes del pipeline de
// ventas (servicio de dominio puro, sin I/O).
//
// Fórmulas:
//
//	basePrice = cost / (1 - margin/100)        margen se limita a 99
//	unitPrice = basePrice * 1.12               IVA 12% incluido
//	amount    = unitPrice * quantity
//
// Retenciones sobre la venta (ISR progresivo):
//
//	base ≤ 30000  → retención = base * 5%
//	base > 30000  → retención = 1500 + (base - 30000) * 7%
//
// Sector GOVERNMENT aplica además retención de IVA del 15% sobre el impuesto y
// la descuenta del efectivo recibido junto con el ISR. Sector PRIVATE recibe el
// monto completo (el ISR se liquida aparte). Esta es la regla normativa
// acordada; cualquier variante queda pendiente de confirmación de producto.
package pricing

import "github.com/shopspring/decimal"

// Sector clasifica al cliente de la venta y decide las retenciones aplicables.
type Sector string

const (
	SectorPrivate    Sector = "PRIVATE"
	SectorGovernment Sector = "GOVERNMENT"
)

// ParseSector normaliza la representación textual de un sector. Cualquier valor
// no reconocido se trata como privado (función total, nunca falla).
func ParseSector(s string) Sector {
	switch s {
	case "GOVERNMENT", "Government", "government", "Gobierno", "gobierno":
		return SectorGovernment
	default:
		return SectorPrivate
	}
}

var (
	vatMultiplier = decimal.RequireFromString("1.12") // IVA 12% incluido en precio

	withholdingThreshold = decimal.NewFromInt(30000)
	withholdingLowRate   = decimal.RequireFromString("0.05")
	withholdingHighRate  = decimal.RequireFromString("0.07")
	withholdingFlat      = decimal.NewFromInt(1500)
	vatRetentionRate     = decimal.RequireFromString("0.15") // solo GOVERNMENT

	hundred   = decimal.NewFromInt(100)
	maxMargin = decimal.NewFromInt(99)
)

// PriceFromCostAndMargin calcula el precio unitario (IVA incluido) a partir del
// costo y el margen porcentual. Márgenes ≥ 100 se limitan a 99 para evitar
// división por cero o base negativa.
func PriceFromCostAndMargin(cost, marginPercent decimal.Decimal) decimal.Decimal {
	m := marginPercent
	if m.GreaterThanOrEqual(hundred) {
		m = maxMargin
	}
	base := cost.Div(decimal.NewFromInt(1).Sub(m.Div(hundred)))
	return base.Mul(vatMultiplier)
}

// MarginFromCostAndPrice calcula el margen porcentual implícito en un precio
// unitario (IVA incluido). Si la base resultante es ≤ 0 el margen es 0.
func MarginFromCostAndPrice(cost, unitPrice decimal.Decimal) decimal.Decimal {
	base := unitPrice.Div(vatMultiplier)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return base.Sub(cost).Div(base).Mul(hundred)
}

// LineTotal calcula el monto de la línea. Cantidad ≤ 0 se trata como 1.
func LineTotal(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	q := quantity
	if q.LessThanOrEqual(decimal.Zero) {
		q = decimal.NewFromInt(1)
	}
	return unitPrice.Mul(q)
}

// BreakdownLine es una partida etiquetada del desglose, en orden fijo de
// presentación.
type BreakdownLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Breakdown es el desglose de utilidad de una venta.
type Breakdown struct {
	BaseAmount   decimal.Decimal `json:"base_amount"`
	Tax          decimal.Decimal `json:"tax"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Withholding  decimal.Decimal `json:"withholding"`
	TaxRetention decimal.Decimal `json:"tax_retention"` // cero para PRIVATE
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	CashReceived decimal.Decimal `json:"cash_received"`
	Lines        []BreakdownLine `json:"lines"`
}

// ProfitBreakdown separa el monto de venta en base, IVA, retenciones, utilidad
// neta y efectivo a recibir según el sector. Cantidad ≤ 0 se trata como 1.
// No valida entradas negativas: esa responsabilidad es del controlador.
func ProfitBreakdown(amount, unitCost, quantity decimal.Decimal, sector Sector) Breakdown {
	q := quantity
	if q.LessThanOrEqual(decimal.Zero) {
		q = decimal.NewFromInt(1)
	}

	base := amount.Div(vatMultiplier)
	tax := amount.Sub(base)

	var withholding decimal.Decimal
	if base.LessThanOrEqual(withholdingThreshold) {
		withholding = base.Mul(withholdingLowRate)
	} else {
		withholding = withholdingFlat.Add(base.Sub(withholdingThreshold).Mul(withholdingHighRate))
	}

	totalCost := unitCost.Mul(q)
	gross := base.Sub(totalCost)
	net := gross.Sub(withholding)

	b := Breakdown{
		BaseAmount:  base,
		Tax:         tax,
		TotalCost:   totalCost,
		Withholding: withholding,
		GrossProfit: gross,
		NetProfit:   net,
	}

	if sector == SectorGovernment {
		b.TaxRetention = tax.Mul(vatRetentionRate)
		b.CashReceived = amount.Sub(withholding).Sub(b.TaxRetention)
	} else {
		b.TaxRetention = decimal.Zero
		b.CashReceived = amount
	}

	b.Lines = []BreakdownLine{
		{Label: "Monto base (sin IVA)", Amount: b.BaseAmount},
		{Label: "Costo total", Amount: b.TotalCost},
		{Label: "Retención ISR", Amount: b.Withholding},
	}
	if sector == SectorGovernment {
		b.Lines = append(b.Lines, BreakdownLine{Label: "Retención IVA 15%", Amount: b.TaxRetention})
	}
	b.Lines = append(b.Lines, BreakdownLine{Label: "Utilidad neta", Amount: b.NetProfit})

	return b
}
