package waitlist

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCourtNotFound возвращается, когда корт не найден или неактивен
	ErrCourtNotFound = errors.New("court not found")

	// ErrDuplicateWaitlistEntry пользователь уже ожидает этот слот
	ErrDuplicateWaitlistEntry = errors.New("user is already waiting for this slot")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
