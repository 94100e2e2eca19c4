package notificationservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notificationservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notificationservice client: invalid response")

	// ErrRecipientNotFound сервис уведомлений не знает пользователя
	ErrRecipientNotFound = errors.New("notificationservice client: recipient not found")
)
