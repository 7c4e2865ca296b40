// Package pdf implementa la generación del bon de commande imprimible de una
// propuesta de pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Bon de commande  │  N° propuesta + fecha + estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Instalación | Cant. propuesta | Aprobada │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	appproposal "github.com/jhoicas/electrostock-api/internal/application/proposal"
	"github.com/jhoicas/electrostock-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appproposal.OrderPDFGenerator = (*MarotoOrderPDFGenerator)(nil)

// MarotoOrderPDFGenerator implementa proposal.OrderPDFGenerator usando Maroto v2.
type MarotoOrderPDFGenerator struct{}

// NewMarotoOrderPDFGenerator construye el generador.
func NewMarotoOrderPDFGenerator() *MarotoOrderPDFGenerator { return &MarotoOrderPDFGenerator{} }

// GenerateOrderPDF genera el PDF del bon de commande y devuelve sus bytes.
func (g *MarotoOrderPDFGenerator) GenerateOrderPDF(_ context.Context, p *entity.OrderProposal) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Bon de commande", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, it := range p.Items {
		m.AddRows(itemRow(it))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(p))

	if p.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(row.New(8).Add(
			col.New(12).Add(
				text.New("Notes : "+p.Notes, props.Text{Size: 8, Color: colorGray}),
			),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(p *entity.OrderProposal) core.Row {
	fecha := p.CreatedAt.Format("02/01/2006")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Bon de commande", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Source : "+p.Source, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(p.ID), props.Text{Size: 9, Align: align.Right}),
			text.New(fecha, props.Text{Size: 9, Top: 5, Align: align.Right}),
			text.New(p.Status, props.Text{Size: 9, Top: 10, Align: align.Right, Style: fontstyle.Bold}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		h("Article", 5, align.Left),
		h("Installation", 3, align.Left),
		h("Qté proposée", 2, align.Right),
		h("Qté approuvée", 2, align.Right),
	)
}

func itemRow(it *entity.ProposalItem) core.Row {
	name := it.StockItemID // referencia colgante: el artículo ya no existe
	installation := "—"
	if it.StockItem != nil {
		name = it.StockItem.Name
		if it.StockItem.Installation != nil {
			installation = it.StockItem.Installation.Name
		}
	}
	approved := "—"
	if it.ApprovedQty != nil {
		approved = strconv.Itoa(*it.ApprovedQty)
	}
	return row.New(6).Add(
		col.New(5).Add(text.New(name, props.Text{Size: 8})),
		col.New(3).Add(text.New(installation, props.Text{Size: 8, Color: colorGray})),
		col.New(2).Add(text.New(strconv.Itoa(it.ProposedQty), props.Text{Size: 8, Align: align.Right})),
		col.New(2).Add(text.New(approved, props.Text{Size: 8, Align: align.Right})),
	)
}

func totalRow(p *entity.OrderProposal) core.Row {
	total := 0
	for _, it := range p.Items {
		if it.ApprovedQty != nil {
			total += *it.ApprovedQty
		} else {
			total += it.ProposedQty
		}
	}
	return row.New(8).Add(
		col.New(10).Add(text.New("Total unités", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
		})),
		col.New(2).Add(text.New(strconv.Itoa(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
		})),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
