// Package report renders engine results for people and machines: plain
// tables on stdout, JSON envelopes stamped with a run ID, and the shared
// number formatting both use.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators:
// FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats a float to the given precision with thousand
// separators in the integer part: FormatFloat(1234.567, 2) returns
// "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}

	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, fracPart, _ := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}
	return FormatNumber(n) + "." + fracPart
}

// FormatKg renders a kg CO2e amount, switching to tonnes at 1000 kg.
func FormatKg(kg float64) string {
	const kgPerTonne = 1000.0
	if math.Abs(kg) >= kgPerTonne {
		return FormatFloat(kg/kgPerTonne, 2) + " t CO2e"
	}
	return FormatFloat(kg, 2) + " kg CO2e"
}

// FormatIntensity renders a kg CO2/kWh intensity at display precision.
func FormatIntensity(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// FormatHour renders an hour of day as "HH:00".
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// FormatPct renders a [0, 1] fraction as a percentage with one decimal.
func FormatPct(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 1, 64) + "%"
}

// Bar renders value as a proportional block bar of at most width cells,
// for inline intensity charts. Zero max or width yields an empty string.
func Bar(value, max float64, width int) string {
	if max <= 0 || width <= 0 || value <= 0 {
		return ""
	}
	cells := int(math.Round(value / max * float64(width)))
	if cells > width {
		cells = width
	}
	if cells < 1 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}
