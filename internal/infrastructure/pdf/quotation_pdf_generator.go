// Package pdf genera la representación imprimible de una cotización.
//
// Layout de la página carta:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización + NIT   │  N° Cotización + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + NIT + contacto                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA 12% / TOTAL                        │
//	│  FOOTER: vigencia de la oferta                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sitesgtech-app/crm-gtech-sub000/internal/application/usecase"
	"github.com/sitesgtech-app/crm-gtech-sub000/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.QuotationPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa usecase.QuotationPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate genera el PDF de la cotización y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(q *entity.Quotation, client *entity.Client, org *entity.Organization) ([]byte, error) {
	orgName := "—"
	if org != nil {
		orgName = org.Name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+q.Number, true).
		WithAuthor(orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q, org))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(q))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(q))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(q))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: organización + NIT (izq) y N° cotización + fecha (der).
func headerRow(q *entity.Quotation, org *entity.Organization) core.Row {
	name, nit := "—", "—"
	if org != nil {
		name, nit = org.Name, org.NIT
	}
	fecha := q.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nit, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(q.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente.
func clientRow(client *entity.Client) core.Row {
	name, nit, email, phone := "—", "—", "—", "—"
	if client != nil {
		name = client.Name
		nit = client.NIT
		email = nonEmpty(client.Email, "—")
		phone = nonEmpty(client.Phone, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT: %s   |   Email: %s   |   Tel: %s", nit, email, phone),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de la línea cotizada.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// detailRow: la línea cotizada (una cotización cubre una oportunidad).
func detailRow(q *entity.Quotation) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(
			q.Quantity.StringFixed(0),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			q.Description,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			"Q "+q.UnitPrice.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			"Q "+q.Total.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(q *entity.Quotation) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("IVA 12%:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("Q "+q.Subtotal.StringFixed(2)),
			value("Q "+q.Tax.StringFixed(2)),
			grandValue("Q "+q.Total.StringFixed(2)),
		),
		col.New(3),
	)
}

// footerRow: vigencia de la oferta.
func footerRow(q *entity.Quotation) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Oferta válida por %d días a partir de la fecha de emisión. Precios incluyen IVA.", q.ValidDays),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
