package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64
	UserID    int64 // ID пользователя из заголовка авторизации
	IsAdmin   bool  // администратор может отменить любое бронирование
}

// Response модель ответа с отменённым бронированием
type Response struct {
	BookingID   int64
	Status      string
	CancelledAt time.Time

	// Запись очереди ожидания, переведённая в notified (если была)
	PromotedEntryID *int64
	PromotedUserID  *int64
}
