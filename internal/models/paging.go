package models

import (
	"errors"
	"strings"
	"time"
)

// Paging selects one page of a listing. Page is 1-based.
type Paging struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Paging) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Page is one page of a listing together with the totals needed to render pagination.
type Page[T any] struct {
	Items []T
	Total int
	Page  int
	Pages int
}

// NewPage builds a Page and computes the page count as ceil(total/limit).
func NewPage[T any](items []T, total int, paging Paging) Page[T] {
	pages := 0
	if paging.Limit > 0 {
		pages = (total + paging.Limit - 1) / paging.Limit
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: paging.Page, Pages: pages}
}

// ErrInvalidDate is returned by ParseDate for unrecognised input.
var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDate accepts an ISO 8601 date or date-time. Values without an offset are
// read in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// TruncateDay returns midnight of t's calendar day in loc.
func TruncateDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// MonthBounds returns the first and the last calendar day of the month, both at midnight in loc.
func MonthBounds(year, month int, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
