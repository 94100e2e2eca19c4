package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a one-hour court reservation.
// Only confirmed bookings occupy their slot: no two confirmed bookings share (CourtID, StartTime).
type Booking struct {
	ID          int64
	UserID      int64
	UserName    string // display name supplied by the user at booking time
	CourtID     int64
	CoachID     *int64
	Equipment   []BookingEquipment
	StartTime   time.Time
	TotalPrice  float64
	Status      BookingStatus
	CancelledAt *time.Time
	CreatedAt   time.Time

	// Denormalized data for history
	CourtName     string
	CourtCategory CourtCategory
	CoachName     *string
	CoachRate     *float64
}

// BookingEquipment is one (item, quantity) line of a booking
type BookingEquipment struct {
	ItemID   int64
	Quantity int

	// Denormalized data for history
	ItemName string
	ItemRate float64
}

// EndTime returns the end of the implicit one-hour slot
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(SlotDuration)
}

// IsConfirmed returns true if the booking occupies its slot
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// Slot returns the (court, start) key occupied by the booking
func (b *Booking) Slot() Slot {
	return Slot{CourtID: b.CourtID, StartTime: b.StartTime}
}

// EquipmentSurcharge sums rate × quantity over all equipment lines
func (b *Booking) EquipmentSurcharge() float64 {
	total := 0.0
	for _, item := range b.Equipment {
		total += item.ItemRate * float64(item.Quantity)
	}
	return total
}

// BookingsFilter фильтр для выборки бронирований (административный список)
type BookingsFilter struct {
	UserID  *int64
	CourtID *int64
	Status  *BookingStatus
	From    *time.Time // start_time >= From
	To      *time.Time // start_time < To
	Limit   int
	Offset  int
}
