package jobs

import (
	"context"
	"time"

	"ilas-backend/internal/logger"
)

// ScanOverdueLoans finds active issues past their due date and emails the
// borrowers a reminder. It only reads loan state: fines accrue at return
// time, never from a background job.
func (jr *JobRunner) ScanOverdueLoans() {
	jr.runWithRecovery("ScanOverdueLoans", func() {
		ctx := context.Background()
		now := time.Now()

		overdue, err := jr.store.TransactionRepository.ListOverdueActive(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue loans")
			return
		}

		reminded := 0
		for _, txn := range overdue {
			daysOverdue := int(now.Sub(*txn.DueDate).Hours() / 24)
			logger.Warn("Overdue loan",
				"txn_id", txn.ID, "book_id", txn.BookID, "member_id", txn.MemberID, "days_overdue", daysOverdue)

			if txn.MemberID == nil {
				continue
			}
			member, err := jr.store.MemberRepository.GetByID(ctx, *txn.MemberID)
			if err != nil {
				logger.Error("Failed to load member for reminder", "member_id", *txn.MemberID, "error", err)
				continue
			}
			book, err := jr.store.BookRepository.GetByID(ctx, txn.BookID)
			if err != nil {
				logger.Error("Failed to load book for reminder", "book_id", txn.BookID, "error", err)
				continue
			}

			if err := jr.email.SendOverdueReminder(ctx, member.Email, member.Username, book.Title, daysOverdue); err != nil {
				// Reminder failures are operational noise, not loan-state
				// problems.
				logger.Error("Failed to send overdue reminder", "member_id", member.ID, "error", err)
				continue
			}
			reminded++
		}

		logger.Info("Overdue scan finished", "overdue", len(overdue), "reminders_sent", reminded)
	})
}
