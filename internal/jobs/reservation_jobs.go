package jobs

import (
	"context"
	"time"

	"outdoor-rental-backend/internal/logger"
)

// SyncReservationStatuses advances pending reservations to borrowed and
// elapsed ones to returned, matching what the admin listing shows.
func (jr *JobRunner) SyncReservationStatuses() {
	jr.runWithRecovery("SyncReservationStatuses", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		updated, err := jr.reservations.SyncStatuses(ctx)
		if err != nil {
			logger.Error("Failed to sync reservation statuses", "error", err)
			return
		}
		logger.Info("Synced reservation statuses", "updated", updated)
	})
}

// SendReturnReminders mails every customer whose rental ends tomorrow.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := jr.reservations.SendReturnReminders(ctx)
		if err != nil {
			logger.Error("Failed to send return reminders", "error", err)
			return
		}
		logger.Info("Sent return reminders", "count", sent)
	})
}
