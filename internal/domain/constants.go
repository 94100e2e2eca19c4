package domain

import "time"

// SlotDuration implicit duration of every booking
const SlotDuration = time.Hour

// Peak hours window [PeakStartHour, PeakEndHour)
const (
	PeakStartHour = 18
	PeakEndHour   = 21
)

// Business validation constants
const (
	MaxDisplayNameLength = 100
	MaxNameLength        = 200
	MaxDescriptionLength = 500
	MaxEquipmentLines    = 20
	MaxEquipmentQuantity = 50
	DefaultBookingsLimit = 50
	MaxBookingsLimit     = 500
)

// Time format constants
const (
	TimeFormat = time.RFC3339
	DateFormat = "2006-01-02"
)

// Default venue hours: first slot starts at opening, last one ends at closing
const (
	DefaultOpeningHour = 6
	DefaultClosingHour = 23
)
