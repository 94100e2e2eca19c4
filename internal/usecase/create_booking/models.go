package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// EquipmentLine строка инвентаря в запросе
type EquipmentLine struct {
	ItemID   int64
	Quantity int
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64           // ID пользователя из заголовка авторизации
	UserName  string          // Отображаемое имя (опционально)
	CourtID   int64           // ID корта
	CoachID   *int64          // ID тренера (опционально)
	Equipment []EquipmentLine // Инвентарь (может быть пустым)
	StartTime time.Time       // Начало часового слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	UserID     int64
	UserName   string
	CourtID    int64
	CoachID    *int64
	StartTime  time.Time
	EndTime    time.Time
	TotalPrice float64
	Status     string

	// Денормализованные данные
	CourtName     string
	CourtCategory string
	CoachName     *string
	CoachRate     *float64
	Equipment     []domain.BookingEquipment

	CreatedAt time.Time
}
