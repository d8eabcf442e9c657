package notifications

const (
	CategoryDashboard = "dashboard"
	CategoryEmployees = "employees"
	CategoryTasks     = "tasks"
	CategorySchedule  = "schedule"
	CategoryMessages  = "messages"
	CategoryFinance   = "finance"
	CategoryAnalytics = "analytics"
	CategoryReports   = "reports"
	CategorySettings  = "settings"
	CategoryProfile   = "profile"
)

// Categories lists every section a notification can be filed under.
func Categories() []string {
	return []string{
		CategoryDashboard,
		CategoryEmployees,
		CategoryTasks,
		CategorySchedule,
		CategoryMessages,
		CategoryFinance,
		CategoryAnalytics,
		CategoryReports,
		CategorySettings,
		CategoryProfile,
	}
}
