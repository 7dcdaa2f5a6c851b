package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBookingService/pkg/psqlbuilder"
)

var policyColumns = []string{
	"space_id",
	"approval_mode",
	"accepts_unverified_guests",
	"minimum_notice_hours",
	"maximum_lead_months",
	"allows_overnight_stay",
	"cancellation_tier",
	"preparation_buffer_minutes",
	"check_in_time",
	"check_out_time",
	"minimum_stay_units",
	"blocked_weekdays",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил бронирования пространств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySpaceID получает правила пространства.
// Если правила не заданы, возвращает ErrPolicyNotFound.
func (r *Repository) GetBySpaceID(ctx context.Context, spaceID int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(policyColumns...).
		From("space_policies").
		Where(squirrel.Eq{"space_id": spaceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpaceID - build select query: %v", ErrBuildQuery, err)
	}

	policy, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpaceID - scan policy: %w", ErrScanRow, err)
	}

	return policy, nil
}

// Upsert создает или полностью заменяет правила пространства.
// created_at сохраняется от первой записи, updated_at выставляется в now.
func (r *Repository) Upsert(ctx context.Context, policy *domain.BookingPolicy, now time.Time) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("space_policies").
		Columns(policyColumns...).
		Values(
			policy.SpaceID,
			policy.ApprovalMode,
			policy.AcceptsUnverifiedGuests,
			policy.MinimumNoticeHours,
			policy.MaximumLead.MonthsPtr(),
			policy.AllowsOvernightStay,
			policy.CancellationTier,
			policy.PreparationBufferMinutes,
			policy.CheckInTime,
			policy.CheckOutTime,
			policy.MinimumStayUnits,
			pq.Array(WeekdaysToInts(policy.BlockedWeekdays)),
			now,
			now,
		).
		Suffix(`ON CONFLICT (space_id) DO UPDATE SET
			approval_mode = EXCLUDED.approval_mode,
			accepts_unverified_guests = EXCLUDED.accepts_unverified_guests,
			minimum_notice_hours = EXCLUDED.minimum_notice_hours,
			maximum_lead_months = EXCLUDED.maximum_lead_months,
			allows_overnight_stay = EXCLUDED.allows_overnight_stay,
			cancellation_tier = EXCLUDED.cancellation_tier,
			preparation_buffer_minutes = EXCLUDED.preparation_buffer_minutes,
			check_in_time = EXCLUDED.check_in_time,
			check_out_time = EXCLUDED.check_out_time,
			minimum_stay_units = EXCLUDED.minimum_stay_units,
			blocked_weekdays = EXCLUDED.blocked_weekdays,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *policy
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&saved.CreatedAt, &saved.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}
	saved.CreatedAt = saved.CreatedAt.UTC()
	saved.UpdatedAt = saved.UpdatedAt.UTC()

	return &saved, nil
}

// Delete удаляет правила пространства, после чего действуют правила по умолчанию
func (r *Repository) Delete(ctx context.Context, spaceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("space_policies").
		Where(squirrel.Eq{"space_id": spaceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrPolicyNotFound
	}

	return nil
}

func scanPolicy(row *sql.Row) (*domain.BookingPolicy, error) {
	var (
		policy     domain.BookingPolicy
		leadMonths sql.NullInt64
		weekdays   pq.Int64Array
	)

	err := row.Scan(
		&policy.SpaceID,
		&policy.ApprovalMode,
		&policy.AcceptsUnverifiedGuests,
		&policy.MinimumNoticeHours,
		&leadMonths,
		&policy.AllowsOvernightStay,
		&policy.CancellationTier,
		&policy.PreparationBufferMinutes,
		&policy.CheckInTime,
		&policy.CheckOutTime,
		&policy.MinimumStayUnits,
		&weekdays,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if leadMonths.Valid {
		policy.MaximumLead = domain.BoundedLead(int(leadMonths.Int64))
	} else {
		policy.MaximumLead = domain.UnlimitedLead()
	}
	policy.BlockedWeekdays = WeekdaysFromInts(weekdays)
	policy.CreatedAt = policy.CreatedAt.UTC()
	policy.UpdatedAt = policy.UpdatedAt.UTC()

	return &policy, nil
}

// WeekdaysToInts переводит набор дней в массив 0..6 для колонки SMALLINT[]
func WeekdaysToInts(set domain.WeekdaySet) []int64 {
	days := set.Days()
	out := make([]int64, len(days))
	for i, d := range days {
		out[i] = int64(d)
	}
	return out
}

// WeekdaysFromInts обратное преобразование, значения вне 0..6 пропускаются
func WeekdaysFromInts(values []int64) domain.WeekdaySet {
	var set domain.WeekdaySet
	for _, v := range values {
		if v < 0 || v > 6 {
			continue
		}
		set = set.With(time.Weekday(v))
	}
	return set
}
