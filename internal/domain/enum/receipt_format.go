package enum

import "strings"

// ReceiptFormat selects the receipt backend
type ReceiptFormat string

const (
	ReceiptFormatPDF    ReceiptFormat = "pdf"
	ReceiptFormatESCPOS ReceiptFormat = "escpos"
)

// ParseReceiptFormat maps a query value to a format. Empty means PDF.
func ParseReceiptFormat(s string) (ReceiptFormat, bool) {
	switch ReceiptFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", ReceiptFormatPDF:
		return ReceiptFormatPDF, true
	case ReceiptFormatESCPOS:
		return ReceiptFormatESCPOS, true
	}
	return "", false
}

// Extension returns the download file extension
func (f ReceiptFormat) Extension() string {
	if f == ReceiptFormatESCPOS {
		return "bin"
	}
	return "pdf"
}

func (f ReceiptFormat) String() string {
	return string(f)
}
