package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"space_id",
	"guest_id",
	"start_at",
	"end_at",
	"guest_verified",
	"state",
	"policy_snapshot",
	"amount_paid",
	"refund_amount",
	"rejection_reason",
	"created_at",
	"updated_at",
	"resolved_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSpace захватывает транзакционную advisory-блокировку пространства.
// Блокировка держится до конца транзакции, поэтому вызывать только внутри txmanager.
func (r *Repository) LockSpace(ctx context.Context, spaceID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSpace - no transaction in context", ErrLockSpace)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", spaceID); err != nil {
		return fmt.Errorf("%w: LockSpace - space_id=%d: %w", ErrLockSpace, spaceID, err)
	}
	return nil
}

// Create сохраняет новое бронирование вместе со снимком правил
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	snapshot, err := json.Marshal(reservation.PolicySnapshot)
	if err != nil {
		return fmt.Errorf("%w: Create - marshal snapshot: %v", ErrSnapshot, err)
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(reservationColumns...).
		Values(
			reservation.ID,
			reservation.SpaceID,
			reservation.GuestID,
			reservation.Start,
			reservation.End,
			reservation.GuestVerified,
			reservation.State,
			string(snapshot),
			reservation.AmountPaid,
			nullDecimal(reservation.RefundAmount),
			reservation.RejectionReason,
			reservation.CreatedAt,
			reservation.UpdatedAt,
			reservation.ResolvedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return reservation, nil
}

// UpdateState сохраняет результат перехода workflow.
// Запись обновляется, только если её состояние всё ещё from, иначе ErrStateChanged:
// повторный переход (например, повторное истечение) ничего не меняет.
func (r *Repository) UpdateState(ctx context.Context, reservation *domain.Reservation, from domain.ReservationState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("state", reservation.State).
		Set("refund_amount", nullDecimal(reservation.RefundAmount)).
		Set("rejection_reason", reservation.RejectionReason).
		Set("updated_at", reservation.UpdatedAt).
		Set("resolved_at", reservation.ResolvedAt).
		Where(squirrel.Eq{"id": reservation.ID, "state": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateState - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrStateChanged
	}

	return nil
}

// ListConfirmedIntervals возвращает интервалы подтверждённых бронирований пространства,
// заканчивающиеся после endingAfter
func (r *Repository) ListConfirmedIntervals(ctx context.Context, spaceID int64, endingAfter time.Time) ([]domain.ConfirmedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "start_at", "end_at").
		From("reservations").
		Where(squirrel.Eq{"space_id": spaceID, "state": domain.StateConfirmed}).
		Where(squirrel.Gt{"end_at": endingAfter}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedIntervals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedIntervals - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]domain.ConfirmedInterval, 0)
	for rows.Next() {
		var iv domain.ConfirmedInterval
		if err := rows.Scan(&iv.ReservationID, &iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("%w: ListConfirmedIntervals - scan row: %w", ErrScanRow, err)
		}
		iv.Start = iv.Start.UTC()
		iv.End = iv.End.UTC()
		intervals = append(intervals, iv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedIntervals - rows error: %w", ErrScanRow, err)
	}

	return intervals, nil
}

// ListWithFilter получает бронирования пространства и/или гостя с фильтрацией по
// состоянию и периоду заезда
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListPendingCreatedBefore получает заявки на рассмотрении, созданные не позже deadline
func (r *Repository) ListPendingCreatedBefore(ctx context.Context, deadline time.Time, limit uint64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"state": domain.StatePendingReview}).
		Where(squirrel.LtOrEq{"created_at": deadline}).
		OrderBy("created_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingCreatedBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingCreatedBefore - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Purge физически удаляет архивные бронирования: завершённые до before и
// подтверждённые, чьё пребывание закончилось до before
func (r *Repository) Purge(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildPurgeQuery(before)
	if err != nil {
		return 0, fmt.Errorf("%w: Purge - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: Purge - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: Purge - get rows affected: %w", ErrExecQuery, err)
	}

	return deleted, nil
}

func buildListQuery(filter domain.ReservationsFilter) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations")

	if filter.SpaceID > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"space_id": filter.SpaceID})
	}
	if filter.GuestID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"guest_id": *filter.GuestID})
	}
	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *filter.State})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	return selectBuilder.OrderBy("start_at ASC").ToSql()
}

func buildPurgeQuery(before time.Time) (string, []interface{}, error) {
	terminal := make([]string, len(domain.TerminalStates))
	for i, s := range domain.TerminalStates {
		terminal[i] = string(s)
	}

	return psqlbuilder.Delete("reservations").
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"state": terminal},
				squirrel.Lt{"resolved_at": before},
			},
			squirrel.And{
				squirrel.Eq{"state": domain.StateConfirmed},
				squirrel.Lt{"end_at": before},
			},
		}).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation domain.Reservation
		snapshot    []byte
		refund      decimal.NullDecimal
		reason      sql.NullString
		resolvedAt  sql.NullTime
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.SpaceID,
		&reservation.GuestID,
		&reservation.Start,
		&reservation.End,
		&reservation.GuestVerified,
		&reservation.State,
		&snapshot,
		&reservation.AmountPaid,
		&refund,
		&reason,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(snapshot, &reservation.PolicySnapshot); err != nil {
		return nil, fmt.Errorf("%w: reservation %s: %v", ErrSnapshot, reservation.ID, err)
	}

	if refund.Valid {
		reservation.RefundAmount = &refund.Decimal
	}
	if reason.Valid {
		reservation.RejectionReason = &reason.String
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time.UTC()
		reservation.ResolvedAt = &t
	}
	reservation.Start = reservation.Start.UTC()
	reservation.End = reservation.End.UTC()
	reservation.CreatedAt = reservation.CreatedAt.UTC()
	reservation.UpdatedAt = reservation.UpdatedAt.UTC()

	return &reservation, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
