package receipt

import (
	"bytes"
	"strings"
)

// ESC/POS command bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

const (
	alignLeft   = 0
	alignCenter = 1
)

const (
	fontNormal = 0x00
	fontDouble = 0x11
)

// Common thermal paper widths, in characters.
const (
	TicketWidth58mm = 32
	TicketWidth80mm = 48
)

// TicketContentType is the MIME type used for ESC/POS output.
const TicketContentType = "application/octet-stream"

// ticket accumulates an ESC/POS byte stream.
type ticket struct {
	buf   bytes.Buffer
	width int
}

func newTicket(width int) *ticket {
	if width <= 0 {
		width = TicketWidth58mm
	}
	t := &ticket{width: width}
	t.buf.Write([]byte{esc, '@'})
	return t
}

func (t *ticket) align(a byte) *ticket {
	t.buf.Write([]byte{esc, 'a', a})
	return t
}

func (t *ticket) bold(on bool) *ticket {
	b := byte(0)
	if on {
		b = 1
	}
	t.buf.Write([]byte{esc, 'E', b})
	return t
}

func (t *ticket) size(s byte) *ticket {
	t.buf.Write([]byte{gs, '!', s})
	return t
}

func (t *ticket) text(s string) *ticket {
	t.buf.WriteString(s)
	t.buf.WriteByte(lf)
	return t
}

func (t *ticket) separator() *ticket {
	return t.text(strings.Repeat("-", t.width))
}

// pair prints key on the left and value flush right on the same line.
func (t *ticket) pair(key, value string) *ticket {
	spaces := t.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	return t.text(key + strings.Repeat(" ", spaces) + value)
}

func (t *ticket) feed(n int) *ticket {
	for i := 0; i < n; i++ {
		t.buf.WriteByte(lf)
	}
	return t
}

func (t *ticket) cut() *ticket {
	t.buf.Write([]byte{gs, 'V', 0x01})
	return t
}

// Ticket serializes the document for a thermal printer of the given width.
// Pagination is irrelevant on a paper roll, so pages are concatenated.
func (d *Document) Ticket(width int) []byte {
	t := newTicket(width)
	for _, p := range d.Pages {
		for _, r := range p.Rows {
			switch r.Kind {
			case RowTitle:
				t.align(alignCenter).size(fontDouble).bold(true).text(r.Cells[0]).
					size(fontNormal).bold(false).align(alignLeft)
			case RowMeta:
				t.text(r.Cells[0])
			case RowRule:
				t.separator()
			case RowHeader:
				t.bold(true).pair(r.Cells[0], r.Cells[3]).bold(false)
			case RowItem:
				// designation, then "qty x unit price" with the line total
				t.text(r.Cells[0])
				t.pair("  "+r.Cells[1]+" x "+r.Cells[2], r.Cells[3])
			case RowTotal:
				t.bold(true).text(r.Cells[0]).bold(false)
			}
		}
	}
	return t.feed(3).cut().buf.Bytes()
}
