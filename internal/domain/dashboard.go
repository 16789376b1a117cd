package domain

// DashboardCounts backs the admin landing page.
type DashboardCounts struct {
	NewContacts     int64 `json:"new_contacts"`
	PendingLoans    int64 `json:"pending_loans"`
	PendingComments int64 `json:"pending_comments"`
	Posts           int64 `json:"posts"`
}
