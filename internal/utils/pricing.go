package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const msPerDay = 24 * 60 * 60 * 1000

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > 31 {
		return Date{}, fmt.Errorf("day must be between 1 and 31")
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// Time converts a Date to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// CalculateDays returns the inclusive day count of a rental period: both the
// pickup and the return day are counted, so a same-day rental is 1 day.
func CalculateDays(dateFrom, dateTo string) (int32, error) {
	from, err := ParseDate(dateFrom)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %v", err)
	}
	to, err := ParseDate(dateTo)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %v", err)
	}

	diffMs := math.Abs(float64(to.Time().Sub(from.Time()).Milliseconds()))
	return int32(math.Ceil(diffMs/msPerDay)) + 1, nil
}

// CalculateBillableDays returns the number of days actually charged. Every
// calendar day of the period is billed; there is no free first day.
func CalculateBillableDays(dateFrom, dateTo string) (int32, error) {
	return CalculateDays(dateFrom, dateTo)
}

// TieredPrice selects the daily rate for a rental of the given length.
// The tiers step at 3 and 7 days; no interpolation between tiers.
func TieredPrice(days, price1To3, price4To7, price8Plus int32) int32 {
	switch {
	case days <= 3:
		return price1To3
	case days <= 7:
		return price4To7
	default:
		return price8Plus
	}
}

// CalculateTotalPrice computes the rental charge for one cart line:
// tiered daily rate x quantity x days. Deposits are not included here;
// callers add deposit x quantity separately.
func CalculateTotalPrice(days, quantity, price1To3, price4To7, price8Plus int32) int32 {
	return TieredPrice(days, price1To3, price4To7, price8Plus) * quantity * days
}

// RangesOverlap tests two inclusive date ranges for overlap:
// [a,b] and [c,d] overlap iff a <= d && c <= b. Dates are yyyy-mm-dd
// strings, which order lexicographically.
func RangesOverlap(aFrom, aTo, bFrom, bTo string) bool {
	return aFrom <= bTo && bFrom <= aTo
}
