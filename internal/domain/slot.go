package domain

import (
	"fmt"
	"time"
)

// Slot is one bookable unit of time: a court at a start instant
type Slot struct {
	CourtID   int64
	StartTime time.Time
}

// LockKey returns the key used to serialize operations on the slot.
// The start instant is taken in UTC seconds so that equal instants in different zones share a key.
func (s Slot) LockKey() string {
	return fmt.Sprintf("slot:%d:%d", s.CourtID, s.StartTime.UTC().Unix())
}

// IsAligned returns true if the slot starts on a whole hour of the StartTime location
func (s Slot) IsAligned() bool {
	return s.StartTime.Minute() == 0 && s.StartTime.Second() == 0 && s.StartTime.Nanosecond() == 0
}

func (s Slot) String() string {
	return fmt.Sprintf("court=%d start=%s", s.CourtID, s.StartTime.UTC().Format(time.RFC3339))
}
