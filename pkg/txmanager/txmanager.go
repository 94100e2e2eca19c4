// Package txmanager управляет транзакциями: транзакция передаётся в репозитории через context
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
)

// DefaultMaxAttempts сколько раз выполняется сериализуемая транзакция при конфликтах
const DefaultMaxAttempts = 3

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted транзакция так и не прошла из-за конфликтов сериализации
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

type retryableTx interface {
	RetryableError() error
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db          TxBeginner
	maxAttempts int
}

// Option настройка менеджера
type Option func(*TransactionManager)

// WithMaxAttempts задаёт число попыток сериализуемой транзакции
func WithMaxAttempts(n int) Option {
	return func(m *TransactionManager) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{db: db, maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При конфликте сериализации (40001) или дедлоке (40P01) транзакция повторяется целиком,
// не более maxAttempts раз. Бизнес-ошибки fn не повторяются.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		retry, err := m.runOnce(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}

	return fmt.Errorf("%w: after %d attempts: %v", ErrRetriesExhausted, m.maxAttempts, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	_, err := m.runOnce(ctx, opts, fn)
	return err
}

// runOnce выполняет одну попытку. Возвращает признак того, что попытку можно повторить.
func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (retry bool, err error) {
	// Вложенный вызов - используем уже открытую транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return false, fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return dbmetrics.IsRetryable(err), fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return isRetryable(tx, err), err
	}

	if err := tx.Commit(); err != nil {
		return isRetryable(tx, err), fmt.Errorf("%w: %v", ErrCommitTx, err)
	}

	return false, nil
}

func isRetryable(tx dbmetrics.TxExecutor, err error) bool {
	if dbmetrics.IsRetryable(err) {
		return true
	}
	if rt, ok := tx.(retryableTx); ok {
		return rt.RetryableError() != nil
	}
	return false
}
