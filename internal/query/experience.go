package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ziadkadry99/folio/internal/info"
)

const present = "present"

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// monthKey turns "YYYY-MM" into YYYYMM. "present" sorts after every date
// and anything unparsable before every date.
func monthKey(s string) int {
	if strings.EqualFold(s, present) {
		return 999999
	}
	n, err := strconv.Atoi(strings.Replace(s, "-", "", 1))
	if err != nil {
		return 0
	}
	return n
}

// SortExperience orders entries by end date, newest first, then by start date.
func SortExperience(items []info.Experience) []info.Experience {
	out := append([]info.Experience(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := monthKey(out[i].End), monthKey(out[j].End)
		if ei != ej {
			return ei > ej
		}
		return monthKey(out[i].Start) > monthKey(out[j].Start)
	})
	return out
}

// FormatMonth renders "2021-09" as "Sep 2021" and "present" as "Present".
// A bare year is returned as is.
func FormatMonth(s string) string {
	if strings.EqualFold(s, present) {
		return "Present"
	}
	year, mon, ok := strings.Cut(s, "-")
	if !ok {
		return s
	}
	m, err := strconv.Atoi(mon)
	if err != nil || m < 1 || m > 12 {
		return year
	}
	return monthNames[m-1] + " " + year
}

// FormatDateRange renders a start/end pair, e.g. "Sep 2021 – Present".
func FormatDateRange(start, end string) string {
	return FormatMonth(start) + " – " + FormatMonth(end)
}

// MonthAbbrev returns the three letter month name for 1..12, else "".
func MonthAbbrev(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}
