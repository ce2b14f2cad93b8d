package tui

import (
	"strconv"
	"strings"
	"time"
)

const emptyDate = "—"

// FormatNumber groups thousands with commas: 1234567 -> "1,234,567".
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func FormatPercentage(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}

// FormatDate renders t as "Jan 02, 2006"; the zero time renders as an em dash.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return emptyDate
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateString parses common date layouts before formatting. Anything
// unparseable renders as an em dash.
func FormatDateString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return emptyDate
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return FormatDate(t)
		}
	}
	return emptyDate
}

// FormatRelativeTime describes t relative to now in whole days.
func FormatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return emptyDate
	}
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days > 1 && days < 7:
		return strconv.Itoa(days) + " days ago"
	case days >= 7 && days < 30:
		return strconv.Itoa(days/7) + " weeks ago"
	}
	return FormatDate(t)
}
