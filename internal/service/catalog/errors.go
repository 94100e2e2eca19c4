package catalog

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("court not found")

	// ErrCoachNotFound возвращается, когда тренер не найден
	ErrCoachNotFound = errors.New("coach not found")

	// ErrEquipmentNotFound возвращается, когда инвентарь не найден
	ErrEquipmentNotFound = errors.New("equipment not found")

	// ErrPricingRuleNotFound возвращается, когда правило не найдено
	ErrPricingRuleNotFound = errors.New("pricing rule not found")

	// ErrResourceUnavailable ресурс для расчёта цены неактивен или недоступен
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrResourceInUse ресурс нельзя удалить, на него ссылаются бронирования
	ErrResourceInUse = errors.New("resource is referenced by bookings")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
