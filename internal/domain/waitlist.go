package domain

import "time"

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistWaiting  WaitlistStatus = "waiting"
	WaitlistNotified WaitlistStatus = "notified"
)

// WaitlistEntry is a user's place in the FIFO queue of a slot.
// At most one waiting entry exists per (UserID, CourtID, StartTime).
// An entry goes waiting -> notified once and never back.
type WaitlistEntry struct {
	ID         int64
	UserID     int64
	CourtID    int64
	StartTime  time.Time
	Status     WaitlistStatus
	NotifiedAt *time.Time
	CreatedAt  time.Time
}

// IsWaiting returns true if the entry has not been promoted yet
func (e *WaitlistEntry) IsWaiting() bool {
	return e.Status == WaitlistWaiting
}

// Slot returns the slot the entry waits for
func (e *WaitlistEntry) Slot() Slot {
	return Slot{CourtID: e.CourtID, StartTime: e.StartTime}
}

// WaitlistPromotion describes a waiting entry promoted after its slot was released by a cancellation
type WaitlistPromotion struct {
	EntryID            int64
	UserID             int64
	CourtID            int64
	CourtName          string
	StartTime          time.Time
	CancelledBookingID int64
}
