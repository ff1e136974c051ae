package stats

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Match durations are free text typed by whoever submitted the match
// ("3h 42m", "95m", "1H30M15s"). Anything unreadable counts as zero.

var (
	hoursPat   = regexp.MustCompile(`(?i)(\d+)\s*h`)
	minutesPat = regexp.MustCompile(`(?i)(\d+)\s*m`)
	secondsPat = regexp.MustCompile(`(?i)(\d+)\s*s`)
)

// UnderOneMinute is rendered for durations that round below one minute.
const UnderOneMinute = "less than a minute"

// ParseDuration converts a human duration string to minutes. Components
// (h/m/s) may appear in any subset and any order, case-insensitive.
// Empty or unparseable input yields 0.
func ParseDuration(text string) float64 {
	if text == "" {
		return 0
	}
	var minutes float64
	if m := hoursPat.FindStringSubmatch(text); m != nil {
		h, _ := strconv.Atoi(m[1])
		minutes += float64(h) * 60
	}
	if m := minutesPat.FindStringSubmatch(text); m != nil {
		v, _ := strconv.Atoi(m[1])
		minutes += float64(v)
	}
	if m := secondsPat.FindStringSubmatch(text); m != nil {
		s, _ := strconv.Atoi(m[1])
		minutes += float64(s) / 60
	}
	return minutes
}

// FormatMinutes renders minutes as "XhYm", "Xh" or "Ym", rounding the
// minute component to the nearest integer. Anything under one minute
// renders the UnderOneMinute sentinel.
func FormatMinutes(minutes float64) string {
	if minutes < 1 {
		return UnderOneMinute
	}
	return renderMinutes(int(math.Round(minutes)))
}

// FormatTotal renders like FormatMinutes but guarantees "0m" for zero —
// grand totals are commonly zero and the sentinel reads wrong there.
func FormatTotal(minutes float64) string {
	total := int(math.Round(minutes))
	if total <= 0 {
		return "0m"
	}
	return renderMinutes(total)
}

func renderMinutes(total int) string {
	h := total / 60
	m := total % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
