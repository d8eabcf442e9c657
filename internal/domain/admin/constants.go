package admin

type Role string

const (
	RoleTechnician Role = "Technician"
	RoleSales      Role = "Sales"
	RoleSupport    Role = "Support"
	RoleManager    Role = "Manager"
)

type EmployeeStatus string

const (
	StatusActive     EmployeeStatus = "Active"
	StatusInactive   EmployeeStatus = "Inactive"
	StatusOnLeave    EmployeeStatus = "On Leave"
	StatusTerminated EmployeeStatus = "Terminated"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
	TaskCancelled  TaskStatus = "Cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

type EventType string

const (
	EventMeeting EventType = "meeting"
	EventTask    EventType = "task"
	EventOther   EventType = "other"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// RangeKey selects the start bound for financial aggregation.
type RangeKey string

const (
	RangeCurrentWeek  RangeKey = "currentWeek"
	RangeLastWeek     RangeKey = "lastWeek"
	RangeCurrentMonth RangeKey = "currentMonth"
	RangeCurrentYear  RangeKey = "currentYear"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleTechnician, RoleSales, RoleSupport, RoleManager:
		return true
	}
	return false
}

func ValidEmployeeStatus(s EmployeeStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave, StatusTerminated:
		return true
	}
	return false
}

func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ValidEventType(t EventType) bool {
	switch t {
	case EventMeeting, EventTask, EventOther:
		return true
	}
	return false
}

func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionIncome, TransactionExpense:
		return true
	}
	return false
}
