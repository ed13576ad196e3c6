// Package receipt lays out an order summary onto fixed-size pages and
// serializes it as a PDF or an ESC/POS ticket.
//
// Layout is done in millimetres on an A4 page. Rendering is split in two:
// Render computes every row and its vertical position, the backends only
// draw what the layout decided.
package receipt

import (
	"errors"
	"time"

	"github.com/sangkips/commandes-api/internal/domain/ledger"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ErrNoItems is the cause of the RenderError returned for an empty view.
var ErrNoItems = errors.New("receipt has no items")

// View is everything a receipt shows. It carries no persistence types.
type View struct {
	Title      string
	ClientName string
	TypeName   string
	Date       time.Time
	Status     string
	Currency   string
	Items      []Item
}

// Item is one table line of the receipt.
type Item struct {
	Designation string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// RowKind tells a backend how to draw a row.
type RowKind int

const (
	RowTitle RowKind = iota
	RowMeta
	RowRule
	RowHeader
	RowItem
	RowSpacer
	RowTotal
)

// Row is a horizontal band of the page. Y is the cursor position at which
// the row starts.
type Row struct {
	Kind   RowKind
	Y      float64
	Height float64
	Cells  []string
}

// Page is an ordered list of rows.
type Page struct {
	Rows []Row
}

// Metrics are the vertical measures used by the layout, in millimetres.
type Metrics struct {
	TopMargin    float64
	SideMargin   float64
	BottomMargin float64
	// OverflowY is the cursor position past which item rows continue on a
	// new page. It is also the bottom limit for the total block.
	OverflowY    float64

	Title      float64
	Date       float64
	Client     float64
	Type       float64
	Status     float64
	Rule       float64
	Header     float64
	HeaderRule float64
	Item       float64

	TotalSpacer float64
	TotalRule   float64
	Total       float64
}

// DefaultMetrics matches an A4 portrait page.
var DefaultMetrics = Metrics{
	TopMargin:    15,
	SideMargin:   15,
	BottomMargin: 10,
	OverflowY:    270,

	Title:      22,
	Date:       8,
	Client:     8,
	Type:       10,
	Status:     5,
	Rule:       5,
	Header:     6,
	HeaderRule: 4,
	Item:       8,

	TotalSpacer: 10,
	TotalRule:   10,
	Total:       8,
}

func (m Metrics) totalBlock() float64 {
	return m.TotalSpacer + m.TotalRule + m.Total
}

// Document is a laid out receipt.
type Document struct {
	Pages    []Page
	Total    decimal.Decimal
	Currency string
	Title    string

	metrics Metrics
}

// ItemCount returns how many item rows were laid out across all pages.
func (d *Document) ItemCount() int {
	n := 0
	for _, p := range d.Pages {
		for _, r := range p.Rows {
			if r.Kind == RowItem {
				n++
			}
		}
	}
	return n
}

// Option customizes Render.
type Option func(*renderConfig)

type renderConfig struct {
	metrics  Metrics
	currency string
	title    string
}

// WithMetrics overrides the page measures.
func WithMetrics(m Metrics) Option {
	return func(c *renderConfig) { c.metrics = m }
}

// WithCurrency sets the symbol used when the view does not carry one.
func WithCurrency(symbol string) Option {
	return func(c *renderConfig) { c.currency = symbol }
}

// WithTitle sets the title used when the view does not carry one.
func WithTitle(title string) Option {
	return func(c *renderConfig) { c.title = title }
}

// Render lays out v. The total is recomputed from the items and does not
// trust any stored subtotal.
func Render(v View, opts ...Option) (*Document, error) {
	cfg := renderConfig{metrics: DefaultMetrics, currency: "$", title: "Order Receipt"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if v.Currency != "" {
		cfg.currency = v.Currency
	}
	if v.Title != "" {
		cfg.title = v.Title
	}

	if len(v.Items) == 0 {
		return nil, apperror.NewRenderError(ErrNoItems)
	}

	lines := make([]ledger.Line, len(v.Items))
	for i, it := range v.Items {
		lines[i] = ledger.Line{Designation: it.Designation, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	totals, err := ledger.ComputeTotals(lines, decimal.Zero)
	if err != nil {
		return nil, apperror.NewRenderError(err)
	}

	m := cfg.metrics
	l := &layout{m: m}
	l.newPage()

	l.add(RowTitle, m.Title, cfg.title)
	l.add(RowMeta, m.Date, "Date: "+formatDate(v.Date))
	l.add(RowMeta, m.Client, "Client: "+orDash(v.ClientName))
	l.add(RowMeta, m.Type, "Product Type: "+orDash(v.TypeName))
	l.add(RowMeta, m.Status, "Status: "+orDash(v.Status))
	l.add(RowRule, m.Rule)
	l.add(RowHeader, m.Header, "Designation", "Qty", "Unit Price", "Subtotal")
	l.add(RowRule, m.HeaderRule)

	for i, it := range v.Items {
		l.add(RowItem, m.Item,
			it.Designation,
			FormatQuantity(it.Quantity),
			FormatMoney(cfg.currency, it.UnitPrice),
			FormatMoney(cfg.currency, totals.Lines[i]),
		)
		if l.cursor > m.OverflowY {
			l.newPage()
		}
	}

	if l.cursor+m.totalBlock() > m.OverflowY {
		l.newPage()
	}
	l.add(RowSpacer, m.TotalSpacer)
	l.add(RowRule, m.TotalRule)
	l.add(RowTotal, m.Total, "Total: "+FormatMoney(cfg.currency, totals.Subtotal))

	return &Document{
		Pages:    l.pages,
		Total:    totals.Subtotal,
		Currency: cfg.currency,
		Title:    cfg.title,
		metrics:  m,
	}, nil
}

type layout struct {
	m      Metrics
	cursor float64
	pages  []Page
}

func (l *layout) newPage() {
	l.pages = append(l.pages, Page{})
	l.cursor = l.m.TopMargin
}

func (l *layout) add(kind RowKind, height float64, cells ...string) {
	p := &l.pages[len(l.pages)-1]
	p.Rows = append(p.Rows, Row{Kind: kind, Y: l.cursor, Height: height, Cells: cells})
	l.cursor += height
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
