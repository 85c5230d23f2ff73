package types

var projectStatuses = map[string]bool{
	"planning":    true,
	"in_progress": true,
	"review":      true,
	"completed":   true,
	"on_hold":     true,
}

var milestoneStatuses = map[string]bool{
	"pending":     true,
	"in_progress": true,
	"completed":   true,
}

var invoiceStatuses = map[string]bool{
	"draft":     true,
	"sent":      true,
	"paid":      true,
	"overdue":   true,
	"cancelled": true,
}

func ValidProjectStatus(s string) bool {
	return projectStatuses[s]
}

func ValidMilestoneStatus(s string) bool {
	return milestoneStatuses[s]
}

func ValidInvoiceStatus(s string) bool {
	return invoiceStatuses[s]
}

func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleUser
}
