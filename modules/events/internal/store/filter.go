package store

import (
	"strings"

	"github.com/gaze-network/event-horizon/modules/events/internal/entity"
	"github.com/samber/lo"
)

// ApplyFilters stores criteria, recomputes the filtered events and returns
// them. The criteria are applied again after every refresh.
func (s *Store) ApplyFilters(criteria entity.FilterCriteria) []entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = criteria
	s.filtered = filterEvents(s.events, criteria)
	return clone(s.filtered)
}

func filterEvents(events []entity.Event, criteria entity.FilterCriteria) []entity.Event {
	return lo.Filter(events, func(e entity.Event, _ int) bool {
		return matchCriteria(e, criteria)
	})
}

func matchCriteria(e entity.Event, c entity.FilterCriteria) bool {
	if c.Location != nil && !containsFold(e.Location, *c.Location) {
		return false
	}
	if c.DateRange != nil && !c.DateRange.Contains(e.Timestamp) {
		return false
	}
	if c.IsPaid != nil && e.IsPaid != *c.IsPaid {
		return false
	}
	if c.Search != nil && !containsFold(e.Name, *c.Search) && !containsFold(e.Description, *c.Search) {
		return false
	}
	if c.Organizer != nil && e.Organizer != *c.Organizer {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
