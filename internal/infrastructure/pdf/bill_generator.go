// Package pdf genera la cuenta de una comanda en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante + Mesa  │  N° Comanda + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ATENDIÓ: Mesero / Estado                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Plato | P.Unit | Subtotal                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                               │
//	│  Leyenda                                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Restaurante-api/internal/application/ports"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/pkg/dates"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 122, Green: 28, Blue: 28}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// BillGenerator implementa ports.BillPDFGenerator usando Maroto v2.
type BillGenerator struct {
	loc     *time.Location
	printer *message.Printer
}

var _ ports.BillPDFGenerator = (*BillGenerator)(nil)

// NewBillGenerator construye el generador; las fechas se imprimen en hora de Bogotá.
func NewBillGenerator() *BillGenerator {
	return &BillGenerator{loc: dates.Bogota(), printer: message.NewPrinter(language.Spanish)}
}

// GenerateOrderBill genera el PDF de la cuenta y devuelve sus bytes.
func (g *BillGenerator) GenerateOrderBill(_ context.Context, order *entity.Order, info ports.BillInfo) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: comanda nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cuenta de la mesa", true).
		WithAuthor(nonEmpty(info.Restaurant, "Restaurante"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order, info))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(serviceRow(order, info))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableItemRows(order.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(order))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: restaurante + mesa (izq) y N° comanda + fecha (der).
func (g *BillGenerator) headerRow(order *entity.Order, info ports.BillInfo) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(info.Restaurant, "Restaurante"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Mesa %d", order.TableNumber), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+dates.FormatDate(order.CreatedAt, dates.LayoutDateTime, g.loc), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// serviceRow: quién atendió y estado de la comanda.
func serviceRow(order *entity.Order, info ports.BillInfo) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SERVICIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Atendió: %s   |   Estado: %s",
				nonEmpty(info.Waiter, "-"),
				statusLabel(order.Status),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Plato", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: una fila por línea de la comanda; las notas van bajo el nombre.
func (g *BillGenerator) tableItemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.Name
		height := 7.0
		if it.Notes != "" {
			name += "\n  " + it.Notes
			height = 11
		}
		result = append(result, row.New(height).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				g.formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				g.formatMoney(it.Subtotal()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total alineado a la derecha.
func (g *BillGenerator) totalRow(order *entity.Order) core.Row {
	total := order.Total
	if total.IsZero() {
		total = order.ComputeTotal()
	}
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(g.formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Precios con impuestos incluidos. Este documento no es una factura electrónica.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2, Align: align.Center,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con separadores del español: $1.234.567,50.
func (g *BillGenerator) formatMoney(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return g.printer.Sprintf("$%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("$%.2f", f)
}

func statusLabel(s entity.OrderStatus) string {
	switch s {
	case entity.OrderServed:
		return "servida"
	case entity.OrderPaid:
		return "pagada"
	default:
		return string(s)
	}
}

// shortID últimos 8 caracteres del id, suficiente para identificar la comanda en sala.
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[len(id)-8:]
	}
	return "#" + id
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
