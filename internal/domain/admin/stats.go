package admin

import (
	"context"
	"time"
)

// Statistics derives the dashboard counters. An event counts as upcoming when
// its date is today or later; time of day is ignored.
func (s *Service) Statistics(ctx context.Context) Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats := Statistics{
		TotalEmployees: len(s.employees),
		TotalTasks:     len(s.tasks),
	}
	for _, emp := range s.employees {
		if emp.Status == StatusActive {
			stats.ActiveEmployees++
		}
	}
	for _, task := range s.tasks {
		switch task.Status {
		case TaskCompleted:
			stats.CompletedTasks++
		case TaskPending:
			stats.PendingTasks++
		}
	}
	for _, event := range s.events {
		date, err := time.Parse(dateLayout, event.Date)
		if err != nil {
			continue
		}
		if !date.Before(today) {
			stats.UpcomingEvents++
		}
	}
	return stats
}
