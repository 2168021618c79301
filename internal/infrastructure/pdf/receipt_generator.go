// Package pdf implementa la generación del comprobante de pago del gimnasio.
//
// Layout de la página A5 apaisada:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  HEADER: FitnesMania       │  N° Comprobante + Fecha    │
//	│  ─────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Documento                            │
//	│  ─────────────────────────────────────────────────────  │
//	│  TABLA: Plan | Método | Estado | Monto                  │
//	│  ─────────────────────────────────────────────────────  │
//	│  TOTALES: Monto / Recargo / TOTAL ABONADO               │
//	│  FOOTER: leyenda de validez                             │
//	└─────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/fitseo/crm-panel/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator genera comprobantes de pago usando Maroto v2.
type MarotoReceiptGenerator struct {
	gymName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(gymName string) *MarotoReceiptGenerator {
	if gymName == "" {
		gymName = "FitnesMania"
	}
	return &MarotoReceiptGenerator{gymName: gymName}
}

// GenerateReceiptPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, payment *entity.Payment) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago", true).
		WithAuthor(g.gymName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(payment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(payment))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(payment))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(payment))

	m.AddRows(line.NewRow(2))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del gimnasio (izq) y n° de comprobante + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(payment *entity.Payment) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.gymName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de pago de membresía", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %06d", payment.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+nonEmpty(payment.PaymentDate, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del cliente que abona.
func clienteRow(payment *entity.Payment) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(payment.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Documento: "+payment.ClientDocument, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalle.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Plan", 5, align.Left),
		h("Método", 2, align.Center),
		h("Estado", 2, align.Center),
		h("Monto", 3, align.Right),
	)
}

// tableDetailRow: la línea única del comprobante.
func tableDetailRow(payment *entity.Payment) core.Row {
	return row.New(7).Add(
		col.New(5).Add(text.New(
			nonEmpty(payment.PlanName, "Membresía"),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			payment.Method,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			payment.Status,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			"$"+formatMoney(payment.Amount.StringFixed(0)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalsRow: monto, recargo por mora si lo hubo y total abonado.
func totalsRow(payment *entity.Payment) core.Row {
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

	recargo := payment.FinalAmount.Sub(payment.Amount)
	if recargo.IsNegative() {
		recargo = decimal.Zero
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Monto:"),
			label("Recargo por mora:"),
			grandLabel("TOTAL ABONADO:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(payment.Amount.StringFixed(0))),
			value("$"+formatMoney(recargo.StringFixed(0))),
			grandValue("$"+formatMoney(payment.FinalAmount.StringFixed(0))),
		),
		col.New(3),
	)
}

// footerRow: leyenda de validez.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Este comprobante certifica el pago de la membresía en la fecha indicada. "+
				"Conserve este documento para cualquier reclamo.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
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

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	first := n % 3
	if first > 0 {
		buf = append(buf, s[:first]...)
	}
	for i := first; i < n; i += 3 {
		if len(buf) > 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, s[i:i+3]...)
	}
	return string(buf)
}
