package summary

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	Bold   = color.New(color.Bold)
	Green  = color.New(color.FgGreen)
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
)

// FormatNumber groups the digits of an item count in threes.
func FormatNumber(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}

	head := len(s) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatRate renders items/second with grouped whole digits and two decimals.
func FormatRate(perSecond float64) string {
	if perSecond <= 0 || math.IsNaN(perSecond) || math.IsInf(perSecond, 0) {
		return "0.00"
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(perSecond, 'f', 2, 64), ".")
	n, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return whole + "." + frac
	}
	return FormatNumber(n) + "." + frac
}

// FormatLatency renders a handler duration in the largest unit below it:
// whole values drop their decimals, the rest keep one (µs) or two (ms, s).
func FormatLatency(d time.Duration) string {
	switch {
	case d <= 0:
		return "0"
	case d < time.Microsecond:
		return d.String()
	case d < time.Millisecond:
		return scaled(d, time.Microsecond, 1, "µs")
	case d < time.Second:
		return scaled(d, time.Millisecond, 2, "ms")
	default:
		return strconv.FormatFloat(d.Seconds(), 'f', 2, 64) + "s"
	}
}

func scaled(d, unit time.Duration, prec int, suffix string) string {
	if d%unit == 0 {
		return strconv.FormatInt(int64(d/unit), 10) + suffix
	}
	return strconv.FormatFloat(float64(d)/float64(unit), 'f', prec, 64) + suffix
}

func colorFprintln(w io.Writer, c *color.Color, a ...any) {
	_, _ = c.Fprintln(w, a...)
}

func colorFprintf(w io.Writer, c *color.Color, format string, a ...any) {
	_, _ = c.Fprintf(w, format, a...)
}
