package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	// ErrDuplicateEntry возвращается, когда у пользователя уже есть ожидающая запись на слот
	// (сработал уникальный индекс waitlist_waiting_uniq)
	ErrDuplicateEntry = errors.New("waitlist.repository: waiting entry already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
