// Package txmanager runs a function inside a database transaction carried by
// the context. Participants that are not part of the SQL transaction (in-memory
// or Redis state) register compensations with OnRollback; they run when the
// function fails or the commit does.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-CanteenBooking/pkg/dbmetrics"
)

var (
	// ErrBegin ошибка начала транзакции
	ErrBegin = errors.New("txmanager: failed to begin transaction")

	// ErrCommit ошибка фиксации транзакции
	ErrCommit = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner поддерживается *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Manager менеджер SQL-транзакций
type Manager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *Manager {
	return &Manager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (READ COMMITTED)
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

func (m *Manager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов присоединяется к внешней транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBegin, err)
	}

	txCtx, hooks := withHooks(dbmetrics.WithTx(ctx, tx))

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			hooks.run(ctx)
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		_ = tx.Rollback()
		hooks.run(ctx)
		return err
	}

	if err = tx.Commit(); err != nil {
		hooks.run(ctx)
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}

// NoopManager менеджер без базы данных: только компенсации OnRollback
type NoopManager struct{}

// NewNoopManager создает менеджер для in-memory хранилищ
func NewNoopManager() *NoopManager {
	return &NoopManager{}
}

func (m *NoopManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return runWithHooks(ctx, fn)
}

func (m *NoopManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return runWithHooks(ctx, fn)
}

func runWithHooks(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(hooksKey{}).(*rollbackHooks); ok {
		return fn(ctx)
	}

	txCtx, hooks := withHooks(ctx)

	defer func() {
		if p := recover(); p != nil {
			hooks.run(ctx)
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		hooks.run(ctx)
		return err
	}
	return nil
}

// OnRollback регистрирует компенсацию для текущей транзакции.
// Возвращает false, если контекст не принадлежит транзакции.
func OnRollback(ctx context.Context, fn func(ctx context.Context)) bool {
	hooks, ok := ctx.Value(hooksKey{}).(*rollbackHooks)
	if !ok {
		return false
	}
	hooks.add(fn)
	return true
}

type hooksKey struct{}

type rollbackHooks struct {
	mu  sync.Mutex
	fns []func(ctx context.Context)
}

func withHooks(ctx context.Context) (context.Context, *rollbackHooks) {
	if existing, ok := ctx.Value(hooksKey{}).(*rollbackHooks); ok {
		return ctx, existing
	}
	hooks := &rollbackHooks{}
	return context.WithValue(ctx, hooksKey{}, hooks), hooks
}

func (h *rollbackHooks) add(fn func(ctx context.Context)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

// run выполняет компенсации в обратном порядке; отмена исходного
// контекста их не прерывает
func (h *rollbackHooks) run(ctx context.Context) {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i](detached)
	}
}
