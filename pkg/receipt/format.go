package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/commandes-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// FormatMoney renders v with exactly two decimals, e.g. "$5408.00".
func FormatMoney(symbol string, v decimal.Decimal) string {
	return symbol + v.StringFixed(2)
}

// FormatQuantity drops insignificant trailing zeros: 6760, 2.5, 0.125.
func FormatQuantity(q decimal.Decimal) string {
	return q.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// Filename returns a download name that differs on every call, even within
// the same millisecond.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("receipt-%d-%s.%s", now.UnixMilli(), utils.ShortID(), strings.TrimPrefix(ext, "."))
}
