// Package durationfmt renders a time.Duration as a human-readable string,
// picking the largest unit (ns/us/ms/s/m/h/d/y) that keeps the integer
// portion at least 1, the way the driver reports how long the large-input
// timing run took. Ported directly from the original implementation's
// elapsed_time::format_dura.
package durationfmt

import (
	"fmt"
	"time"
)

const (
	nsPerSec = 1_000_000_000

	// daysPerYearMul1e8 is 365.24219052 scaled by 1e8 into an integer, the
	// same trick the original uses to avoid floating-point drift when
	// computing whole years from a duration.
	daysPerYearMul1e8 = 36524219052

	daysPerYear = 365.24219052
)

func formatWith3Decimals(value int64) string {
	whole := value / 1000
	rem := value % 1000
	if rem < 0 {
		rem = -rem
	}
	return fmt.Sprintf("%d.%03d", whole, rem)
}

// Format renders d as a human string. A zero duration renders as "0ns" —
// the original's ps unit is unreachable here because time.Duration has no
// sub-nanosecond resolution to report.
func Format(d time.Duration) string {
	ns := int64(d)
	sign := ""
	if ns < 0 {
		ns = -ns
		sign = "-"
	}

	switch {
	case ns < 1000:
		return fmt.Sprintf("%s%dns", sign, ns)

	case ns < 1_000_000:
		return fmt.Sprintf("%s%sus", sign, formatWith3Decimals(ns))

	case ns+500 < nsPerSec:
		us := (ns + 500) / 1000
		return fmt.Sprintf("%s%sms", sign, formatWith3Decimals(us))

	case ns+500_000 < nsPerSec*60:
		ms := (ns + 500_000) / 1_000_000
		return fmt.Sprintf("%s%ss", sign, formatWith3Decimals(ms))

	case ns+50_000_000 < nsPerSec*3600:
		tenths := (ns + 50_000_000) / 100_000_000
		m := (tenths / 10) / 60
		s := (tenths / 10) % 60
		tenth := tenths % 10
		return fmt.Sprintf("%s%02dm%02d.%ds", sign, m, s, tenth)

	case ns+nsPerSec/2 < nsPerSec*86400:
		secs := (ns + nsPerSec/2) / nsPerSec
		h := secs / 3600
		m := (secs / 60) % 60
		s := secs % 60
		return fmt.Sprintf("%s%02dh%02dm%02ds", sign, h, m, s)

	case float64(ns+nsPerSec/2) < float64(nsPerSec)*86400*daysPerYear:
		secs := (ns + nsPerSec/2) / nsPerSec
		day := secs / 86400
		h := (secs / 3600) % 24
		m := (secs / 60) % 60
		s := secs % 60
		return fmt.Sprintf("%s%dd_%02dh%02dm%02ds", sign, day, h, m, s)

	default:
		secs := (ns + nsPerSec/2) / nsPerSec
		y := (secs / 86400 * 100_000_000) / daysPerYearMul1e8
		secs -= y * 86400 * daysPerYearMul1e8 / 100_000_000
		day := secs / 86400
		h := (secs / 3600) % 24
		m := (secs / 60) % 60
		s := secs % 60
		return fmt.Sprintf("%s%dy_%dd_%02dh%02dm%02ds", sign, y, day, h, m, s)
	}
}
