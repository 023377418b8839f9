package sheetimport

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
)

// propertyLabelRe matches a trailing "(N)" capacity suffix: "Villa Ana (8)".
var propertyLabelRe = regexp.MustCompile(`^(.*?)\s*\((\d+)\)\s*$`)

// ParsePropertyLabel splits a column header into name and capacity. Sheet
// authors are inconsistent, so a label without the "(N)" suffix is not an
// error: the trimmed label becomes the name and capacity stays nil.
func ParsePropertyLabel(label string) (string, *int) {
	trimmed := strings.TrimSpace(label)
	m := propertyLabelRe.FindStringSubmatch(trimmed)
	if m == nil {
		return trimmed, nil
	}
	capacity, err := strconv.Atoi(m[2])
	if err != nil {
		return trimmed, nil
	}
	name := strings.TrimSpace(m[1])
	return name, &capacity
}

var weekLabelRe = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.\s*-\s*(\d{1,2})\.(\d{1,2})\.?$`)

// ParseWeekLabel reads a "DD.MM.-DD.MM." label against a given year. A
// December start with a January end spans the year boundary: the start year
// is year-1 and the end year is year. Any label that does not match the
// pattern yields two nils, never an error.
func ParseWeekLabel(label string, year int) (*utils.Date, *utils.Date) {
	m := weekLabelRe.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return nil, nil
	}
	startDay, _ := strconv.Atoi(m[1])
	startMonth, _ := strconv.Atoi(m[2])
	endDay, _ := strconv.Atoi(m[3])
	endMonth, _ := strconv.Atoi(m[4])
	if startMonth < 1 || startMonth > 12 || endMonth < 1 || endMonth > 12 {
		return nil, nil
	}

	startYear, endYear := year, year
	if startMonth == 12 && endMonth == 1 {
		startYear = year - 1
	}

	start := utils.NewDate(startYear, time.Month(startMonth), startDay)
	end := utils.NewDate(endYear, time.Month(endMonth), endDay)
	return &start, &end
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

var numericCellRe = regexp.MustCompile(`^[0-9][0-9.,\s]*$`)

// ClassifyStatus maps a free-text cell to a status. The sheet mixes English
// and German vocabulary and some cells match several patterns, so the check
// order is the contract: owner before on_request before numeric before
// booked. "owner - a.a" is an owner cell, not an on-request cell.
func ClassifyStatus(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case v == "" || v == "-" || v == "–":
		return StatusUnknown
	case containsAny(v, "owner", "blocked", "belegt", "reserviert"):
		return StatusOwner
	case containsAny(v, "a.a", "anfrage", "request"):
		return StatusOnRequest
	case numericCellRe.MatchString(v):
		return StatusAvailable
	case containsAny(v, "booked", "gebucht"):
		return StatusBooked
	default:
		return StatusUnknown
	}
}
