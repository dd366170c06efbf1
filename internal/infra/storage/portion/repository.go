package portion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CanteenBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CanteenBooking/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

const table = "portion_counters"

// Repository счетчики порций в Postgres.
// Списание - один UPDATE с условием remaining > 0, откат - вместе с транзакцией.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетчиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Ensure создает отсутствующие счетчики (ON CONFLICT DO NOTHING)
func (r *Repository) Ensure(ctx context.Context, date string, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Стабильный порядок строк - стабильный текст запроса
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	insert := psqlbuilder.Insert(table).Columns("booking_date", "portion_key", "remaining")
	for _, key := range keys {
		n := counts[key]
		if n < 0 {
			n = 0
		}
		insert = insert.Values(date, key, n)
	}

	query, args, err := insert.Suffix("ON CONFLICT (booking_date, portion_key) DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%w: Ensure - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Ensure - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Remaining возвращает остаток порций; tracked=false если счетчика нет
func (r *Repository) Remaining(ctx context.Context, date, portionKey string) (int, bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("remaining").
		From(table).
		Where(squirrel.Eq{"booking_date": date, "portion_key": portionKey}).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("%w: Remaining - build select query: %v", ErrBuildQuery, err)
	}

	var remaining int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: Remaining - scan remaining: %v", ErrScanRow, err)
	}

	return remaining, true, nil
}

// TryDecrement списывает одну порцию, если остаток положительный.
// Отсутствующий счетчик означает позицию без лимита.
func (r *Repository) TryDecrement(ctx context.Context, date, portionKey string) (bool, error) {
	if portionKey == "" {
		return true, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("remaining", squirrel.Expr("remaining - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_date": date, "portion_key": portionKey}).
		Where(squirrel.Gt{"remaining": 0}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: TryDecrement - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: TryDecrement - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: TryDecrement - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 1 {
		return true, nil
	}

	// Ни одной строки: либо распродано, либо счетчик не ведется
	_, tracked, err := r.Remaining(ctx, date, portionKey)
	if err != nil {
		return false, err
	}
	return !tracked, nil
}

// Snapshot возвращает все счетчики на дату
func (r *Repository) Snapshot(ctx context.Context, date string) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("portion_key", "remaining").
		From(table).
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("portion_key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Snapshot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var (
			key       string
			remaining int
		)
		if err := rows.Scan(&key, &remaining); err != nil {
			return nil, fmt.Errorf("%w: Snapshot - scan row: %v", ErrScanRow, err)
		}
		result[key] = remaining
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Snapshot - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
