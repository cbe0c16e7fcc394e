// Package format derives display strings from bill records and gates receipt
// uploads. Everything here is pure: no I/O, no shared state, no dependence on
// the host time zone.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// frenchShortMonths are the abbreviated month names of the "fr" locale.
var frenchShortMonths = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// FormatDate turns a calendar date "YYYY-MM-DD" into "D MMM. YY"
// (e.g. "2021-11-10" -> "10 Nov. 21").
//
// The second return value is false when there is nothing to display: an empty
// input, or a string that is not three dash-separated integers. Out-of-range
// components are normalized the way time.Date does ("2021-13-01" is
// January 2022).
func FormatDate(dateStr string) (string, bool) {
	if dateStr == "" {
		return "", false
	}

	year, month, day, ok := splitDate(dateStr)
	if !ok {
		return "", false
	}

	// Build the date in UTC and read UTC fields back so the local zone can
	// never move it to the previous or next day.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() < 0 || t.Year() > 9999 {
		return "", false
	}

	return fmt.Sprintf("%d %s. %02d", t.Day(), monthAbbrev(t.Month()), t.Year()%100), true
}

// splitDate parses the three numeric components of an ISO calendar date.
func splitDate(dateStr string) (year, month, day int, ok bool) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], true
}

// monthAbbrev returns the first three letters of the French short month
// name with the first letter upper-cased ("déc." -> "Déc").
func monthAbbrev(m time.Month) string {
	runes := []rune(frenchShortMonths[m-1])
	if len(runes) > 3 {
		runes = runes[:3]
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
