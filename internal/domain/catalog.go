package domain

import "time"

// CourtCategory represents the kind of court
type CourtCategory string

const (
	CourtIndoor  CourtCategory = "indoor"
	CourtOutdoor CourtCategory = "outdoor"
)

// IsValid returns true for a known category
func (c CourtCategory) IsValid() bool {
	return c == CourtIndoor || c == CourtOutdoor
}

// Court represents a bookable court
type Court struct {
	ID        int64
	Name      string
	Category  CourtCategory
	BasePrice float64 // per hour
	IsActive  bool
	CreatedAt time.Time
}

// Coach represents a coach that can be added to a booking
type Coach struct {
	ID             int64
	Name           string
	HourlyRate     float64
	IsAvailable    bool
	Specialization string
	CreatedAt      time.Time
}

// EquipmentItem represents rentable equipment.
// TotalStock is informational: bookings never decrement it.
type EquipmentItem struct {
	ID          int64
	Name        string
	HourlyRate  float64
	TotalStock  int
	IsAvailable bool
	CreatedAt   time.Time
}

// ActiveResources набор ресурсов, доступных для бронирования
type ActiveResources struct {
	Courts    []*Court
	Coaches   []*Coach
	Equipment []*EquipmentItem
}
