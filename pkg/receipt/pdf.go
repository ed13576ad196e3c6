package receipt

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sangkips/commandes-api/pkg/apperror"
)

// Grid spans of the item table on maroto's 12 column grid.
var tableSpans = [4]int{5, 2, 3, 2}

var tableAlign = [4]align.Type{align.Left, align.Center, align.Right, align.Right}

// PDFContentType is the MIME type of PDF output.
const PDFContentType = "application/pdf"

// PDF serializes the document. Each layout page maps to exactly one PDF page.
func (d *Document) PDF() ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithTopMargin(d.metrics.TopMargin).
		WithLeftMargin(d.metrics.SideMargin).
		WithRightMargin(d.metrics.SideMargin).
		WithBottomMargin(d.metrics.BottomMargin).
		Build()

	m := maroto.New(cfg)
	for _, p := range d.Pages {
		rows := make([]core.Row, 0, len(p.Rows))
		for _, r := range p.Rows {
			rows = append(rows, pdfRow(r))
		}
		m.AddPages(page.New().Add(rows...))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, apperror.NewRenderError(fmt.Errorf("generate pdf: %w", err))
	}
	return doc.GetBytes(), nil
}

func pdfRow(r Row) core.Row {
	switch r.Kind {
	case RowTitle:
		return row.New(r.Height).Add(
			text.NewCol(12, r.Cells[0], props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Left}),
		)
	case RowMeta:
		return row.New(r.Height).Add(
			text.NewCol(12, r.Cells[0], props.Text{Size: 11, Align: align.Left}),
		)
	case RowRule:
		return row.New(r.Height).Add(line.NewCol(12, props.Line{Thickness: 0.2}))
	case RowHeader:
		return tableRow(r, props.Text{Size: 11, Style: fontstyle.Bold})
	case RowItem:
		return tableRow(r, props.Text{Size: 10})
	case RowTotal:
		return row.New(r.Height).Add(
			text.NewCol(12, r.Cells[0], props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}),
		)
	default:
		return row.New(r.Height)
	}
}

func tableRow(r Row, base props.Text) core.Row {
	cols := make([]core.Col, 0, len(tableSpans))
	for i, span := range tableSpans {
		p := base
		p.Align = tableAlign[i]
		var cell string
		if i < len(r.Cells) {
			cell = r.Cells[i]
		}
		cols = append(cols, col.New(span).Add(text.New(cell, p)))
	}
	return row.New(r.Height).Add(cols...)
}
