package service

import "time"

// ComputeFine derives the late-return fine in cents. Both dates are reduced
// to calendar days in UTC before comparison, so the time of day a book comes
// back never changes the fine. A loan without a due date accrues nothing.
func ComputeFine(dueDate *time.Time, returnDate time.Time, graceDays int, perDayCents int64) int64 {
	if dueDate == nil || perDayCents <= 0 {
		return 0
	}
	overdueDays := daysBetween(*dueDate, returnDate) - graceDays
	if overdueDays <= 0 {
		return 0
	}
	return perDayCents * int64(overdueDays)
}

// daysBetween counts whole calendar days from a to b, negative when b is
// before a.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
