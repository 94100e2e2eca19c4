package get_available_slots

import (
	"time"
)

// Request модель запроса расписания корта на день
type Request struct {
	CourtID int64
	Date    time.Time // календарная дата, берутся только год, месяц и день
}

// Response модель ответа со слотами дня
type Response struct {
	Date      time.Time // полночь дня в часовом поясе площадки
	CourtID   int64
	CourtName string
	Slots     []Slot
}

// Slot часовой слот корта
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool    // нет подтверждённого бронирования
	Price     float64 // цена корта по активным правилам, без тренера и инвентаря
}

// Hours часы работы площадки: слоты начинаются с OpeningHour, последний заканчивается в ClosingHour
type Hours struct {
	OpeningHour int
	ClosingHour int
}
