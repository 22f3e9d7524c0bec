package domain

// LibrarySummary is the dashboard snapshot: stock by status plus loan and
// fine aggregates.
type LibrarySummary struct {
	BooksByStatus       map[BookStatus]int64 `json:"books_by_status"`
	ActiveLoans         int64                `json:"active_loans"`
	OverdueLoans        int64                `json:"overdue_loans"`
	FinesCollectedCents int64                `json:"fines_collected_cents"`
}
