package admin

import "github.com/shopspring/decimal"

// Employee carries an open-task counter kept in step with the Tasks
// collection: it counts non-completed tasks currently assigned by name.
type Employee struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Role      Role           `json:"role"`
	Status    EmployeeStatus `json:"status"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	JoinDate  string         `json:"joinDate"`
	OpenTasks int            `json:"tasks"`
}

// Task references its assignee by employee name, not id; lookups resolve
// the name at read time.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	AssignedTo  string     `json:"assignedTo"`
	Deadline    string     `json:"deadline"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Description string     `json:"description"`
}

type Event struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Type         EventType `json:"type"`
	Participants []string  `json:"participants"`
	Description  string    `json:"description"`
}

// Transaction is immutable once recorded; there is no edit or delete.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// EmployeePatch carries optional field updates; nil means leave unchanged.
type EmployeePatch struct {
	Name     *string         `json:"name"`
	Role     *Role           `json:"role"`
	Email    *string         `json:"email"`
	Phone    *string         `json:"phone"`
	JoinDate *string         `json:"joinDate"`
	Status   *EmployeeStatus `json:"status"`
}

type EventPatch struct {
	Title        *string    `json:"title"`
	Date         *string    `json:"date"`
	Time         *string    `json:"time"`
	Type         *EventType `json:"type"`
	Participants *[]string  `json:"participants"`
	Description  *string    `json:"description"`
}

type Statistics struct {
	TotalEmployees  int `json:"totalEmployees"`
	ActiveEmployees int `json:"activeEmployees"`
	TotalTasks      int `json:"totalTasks"`
	CompletedTasks  int `json:"completedTasks"`
	PendingTasks    int `json:"pendingTasks"`
	UpcomingEvents  int `json:"upcomingEvents"`
}

// FinancialStats holds a daily time series from the range start through the
// current day, with parallel revenue and expense sequences.
type FinancialStats struct {
	TotalRevenue  decimal.Decimal   `json:"totalRevenue"`
	TotalExpenses decimal.Decimal   `json:"totalExpenses"`
	Labels        []string          `json:"labels"`
	Revenue       []decimal.Decimal `json:"revenue"`
	Expenses      []decimal.Decimal `json:"expenses"`
}
