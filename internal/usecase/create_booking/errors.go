package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrResourceUnavailable возвращается, когда корт неактивен, тренер или инвентарь недоступны
	// (в том числе не существуют)
	ErrResourceUnavailable = errors.New("create_booking: resource is unavailable")

	// ErrSlotConflict возвращается, когда слот уже занят подтверждённым бронированием
	ErrSlotConflict = errors.New("create_booking: slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
