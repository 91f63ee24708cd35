// Package amountfmt renders integer amounts as human-readable strings with a
// metric (1000-based) or binary (1024-based) unit suffix, ported from the
// original implementation's amount_formatter. It does not participate in any
// correctness contract — it only exists to print sizes in the driver's
// optional output.
package amountfmt

import (
	"fmt"
	"math"
	"strconv"
)

var metricUnits = [9]string{"", "k", "M", "G", "T", "P", "E", "Z", "Y"}
var binaryUnits = [9]string{"", "Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi", "Yi"}

var metricIntervals [9]int64
var binaryIntervals [9]int64

func init() {
	metricIntervals[0] = 1
	binaryIntervals[0] = 1
	for i := 1; i < 9; i++ {
		metricIntervals[i] = metricIntervals[i-1] * 1000
		binaryIntervals[i] = binaryIntervals[i-1] * 1024
	}
}

func getInterval(amount int64, intervals [9]int64) int {
	for i := 1; i < 9; i++ {
		if amount < intervals[i] {
			return i - 1
		}
	}
	return 8
}

// toRoundedString applies the original's rounding policy: print without a
// decimal point if the value is already integral; half-up round to an
// integer once the value is at least 99.95 (so it never prints "100.0");
// otherwise print with one decimal place. This half-up choice (rather than
// banker's rounding) is the decision recorded for the amount-formatter
// rounding open question.
func toRoundedString(value float64) string {
	if math.Trunc(value) == value {
		return strconv.FormatInt(int64(value), 10)
	}
	if value >= 99.95 {
		return strconv.FormatInt(int64(math.Round(value)), 10)
	}
	return fmt.Sprintf("%.1f", value)
}

func format(amount int64, intervals [9]int64, units [9]string) string {
	sign := ""
	if amount < 0 {
		amount = -amount
		sign = "-"
	}

	interval := getInterval(amount, intervals)
	converted := float64(amount) / float64(intervals[interval])

	return sign + toRoundedString(converted) + units[interval]
}

// FormatMetric renders amount with a 1000-based unit suffix (k, M, G, ...).
func FormatMetric(amount int64) string {
	return format(amount, metricIntervals, metricUnits)
}

// FormatBinary renders amount with a 1024-based unit suffix (Ki, Mi, Gi,
// ...). Callers printing this for data sizes should pair it with a "B" unit
// (KiB, MiB, ...) themselves, since this package only knows the multiplier
// prefix, not the quantity being measured.
func FormatBinary(amount int64) string {
	return format(amount, binaryIntervals, binaryUnits)
}
