package admin

import (
	"context"

	"github.com/shopspring/decimal"
)

// Seed loads the demo fixtures into any collection that is still empty. It is
// safe to call on every boot.
func (s *Service) Seed(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.employees) == 0 {
		s.employees = []Employee{
			{
				ID:        1,
				Name:      "John Doe",
				Role:      RoleTechnician,
				Status:    StatusActive,
				Email:     "john@example.com",
				Phone:     "+91 9876543210",
				JoinDate:  "2024-01-15",
				OpenTasks: 3,
			},
			{
				ID:        2,
				Name:      "Jane Smith",
				Role:      RoleSales,
				Status:    StatusActive,
				Email:     "jane@example.com",
				Phone:     "+91 9876543211",
				JoinDate:  "2024-02-01",
				OpenTasks: 2,
			},
		}
		s.store.Set(ctx, keyEmployees, s.employees)
	}

	if len(s.tasks) == 0 {
		s.tasks = []Task{
			{
				ID:          1,
				Title:       "Server Maintenance",
				AssignedTo:  "John Doe",
				Deadline:    "2024-03-20",
				Status:      TaskInProgress,
				Priority:    PriorityHigh,
				Description: "Perform routine server maintenance and updates",
			},
		}
		s.store.Set(ctx, keyTasks, s.tasks)
	}

	if len(s.events) == 0 {
		s.events = []Event{
			{
				ID:           1,
				Title:        "Team Meeting",
				Date:         "2024-03-20",
				Time:         "10:00",
				Type:         EventMeeting,
				Participants: []string{"John Doe", "Jane Smith"},
				Description:  "Weekly team sync-up",
			},
		}
		s.store.Set(ctx, keyEvents, s.events)
	}

	if len(s.finances) == 0 {
		s.finances = []Transaction{
			{
				ID:          1,
				Type:        TransactionIncome,
				Amount:      decimal.NewFromInt(25000),
				Category:    "Sales",
				Description: "CCTV Installation",
				Date:        "2024-03-15",
			},
			{
				ID:          2,
				Type:        TransactionExpense,
				Amount:      decimal.NewFromInt(15000),
				Category:    "Equipment",
				Description: "Security Cameras Purchase",
				Date:        "2024-03-14",
			},
		}
		s.store.Set(ctx, keyFinances, s.finances)
	}
}

// DefaultCurrentEmployee is the profile the employee panel falls back to on
// first boot and after logout.
func DefaultCurrentEmployee() Employee {
	return Employee{
		ID:       1,
		Name:     "John Doe",
		Role:     RoleTechnician,
		Status:   StatusActive,
		Email:    "john@example.com",
		Phone:    "+91 9876543210",
		JoinDate: "2024-01-15",
	}
}
