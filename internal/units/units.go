// Package units formats energy quantities for console and report output.
package units

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatWh renders a watt-hour quantity at a human scale, matching the units
// the dashboard displays (Wh through GWh, two decimals).
func FormatWh(wh float64) string {
	switch {
	case wh >= 1e9:
		return fmt.Sprintf("%.2f GWh", wh/1e9)
	case wh >= 1e6:
		return fmt.Sprintf("%.2f MWh", wh/1e6)
	case wh >= 1e3:
		return fmt.Sprintf("%.2f kWh", wh/1e3)
	}
	return fmt.Sprintf("%.2f Wh", wh)
}

// FormatCount renders a row count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
