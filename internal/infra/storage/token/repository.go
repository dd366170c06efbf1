package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
	"github.com/m04kA/SMC-CanteenBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CanteenBooking/pkg/psqlbuilder"
)

const (
	table = "booking_tokens"

	pqUniqueViolation = "23505"
)

var columns = []string{
	"token",
	"booking_date",
	"section_name",
	"item_title",
	"price",
	"portion_key",
	"block",
	"floor",
	"created_at",
	"expires_at",
	"consumed",
	"consumed_at",
}

// Repository репозиторий выданных токенов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория токенов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Issue сохраняет выданный токен.
// Если в контексте есть транзакция, вставка выполняется в ней и откатывается вместе со списанием порции.
func (r *Repository) Issue(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			booking.Token,
			booking.Date,
			booking.SectionName,
			booking.ItemTitle,
			booking.Price,
			booking.PortionKey,
			booking.Block,
			booking.Floor,
			booking.CreatedAt,
			booking.ExpiresAt,
			booking.Consumed,
			booking.ConsumedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Issue - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateToken
		}
		return fmt.Errorf("%w: Issue - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Get получает бронирование по токену
func (r *Repository) Get(ctx context.Context, token string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListActive возвращает неиспользованные токены со сроком действия позже now
func (r *Repository) ListActive(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"consumed": false}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("created_at DESC", "token ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan booking: %v", ErrScanRow, err)
		}
		result = append(result, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// MarkConsumed помечает токен использованным.
// Условие consumed = false делает повторное погашение пустым UPDATE.
func (r *Repository) MarkConsumed(ctx context.Context, token string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("consumed", true).
		Set("consumed_at", at).
		Where(squirrel.Eq{"token": token, "consumed": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkConsumed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkConsumed - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// ClearAll удаляет все токены и возвращает их количество
func (r *Repository) ClearAll(ctx context.Context) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ClearAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ClearAll - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ClearAll - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking    domain.Booking
		date       time.Time
		portionKey sql.NullString
		block      sql.NullString
		floor      sql.NullString
		consumedAt sql.NullTime
	)

	err := row.Scan(
		&booking.Token,
		&date,
		&booking.SectionName,
		&booking.ItemTitle,
		&booking.Price,
		&portionKey,
		&block,
		&floor,
		&booking.CreatedAt,
		&booking.ExpiresAt,
		&booking.Consumed,
		&consumedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = date.Format(domain.DateFormat)
	booking.PortionKey = nullString(portionKey)
	booking.Block = nullString(block)
	booking.Floor = nullString(floor)
	if consumedAt.Valid {
		t := consumedAt.Time
		booking.ConsumedAt = &t
	}

	return &booking, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
