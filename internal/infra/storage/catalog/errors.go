package catalog

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("catalog.repository: court not found")

	// ErrCoachNotFound возвращается, когда тренер не найден
	ErrCoachNotFound = errors.New("catalog.repository: coach not found")

	// ErrEquipmentNotFound возвращается, когда инвентарь не найден
	ErrEquipmentNotFound = errors.New("catalog.repository: equipment not found")

	// ErrPricingRuleNotFound возвращается, когда правило ценообразования не найдено
	ErrPricingRuleNotFound = errors.New("catalog.repository: pricing rule not found")

	// ErrResourceInUse возвращается при удалении ресурса, на который ссылаются бронирования
	ErrResourceInUse = errors.New("catalog.repository: resource is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
