package entity

import "time"

// FilterCriteria narrows the event list. A nil field doesn't filter.
type FilterCriteria struct {
	Location  *string
	DateRange *DateRange
	IsPaid    *bool
	Search    *string
	Organizer *string
}

// DateRange is inclusive on both ends. Either bound may be open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}
