package expire_reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-SpaceBookingService/internal/infra/storage/reservation"
)

var now = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

type fakeReservations struct {
	items     map[uuid.UUID]*domain.Reservation
	raced     map[uuid.UUID]bool
	listErr   error
	updateErr error
}

func (f *fakeReservations) ListPendingCreatedBefore(_ context.Context, deadline time.Time, _ uint64) ([]*domain.Reservation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Reservation
	for _, r := range f.items {
		if r.IsPending() && !r.CreatedAt.After(deadline) {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeReservations) UpdateState(_ context.Context, r *domain.Reservation, from domain.ReservationState) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.raced[r.ID] || f.items[r.ID].State != from {
		return reservationRepo.ErrStateChanged
	}
	c := *r
	f.items[r.ID] = &c
	return nil
}

type fakeMetrics struct {
	transitions int
	sweeps      []string
}

func (f *fakeMetrics) RecordTransition(string, string) { f.transitions++ }
func (f *fakeMetrics) RecordExpirySweep(result string) { f.sweeps = append(f.sweeps, result) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pendingCreated(createdAt time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:        uuid.New(),
		SpaceID:   7,
		GuestID:   100,
		State:     domain.StatePendingReview,
		CreatedAt: createdAt,
	}
}

func setup(repo *fakeReservations) (*UseCase, *fakeMetrics) {
	m := &fakeMetrics{}
	uc := NewUseCase(repo, m, nopLogger{})
	uc.timeProvider = fixedTime{t: now}
	return uc, m
}

func TestExecute_ExpiresOverdueOnly(t *testing.T) {
	overdue := pendingCreated(now.Add(-25 * time.Hour))
	exactly := pendingCreated(now.Add(-24 * time.Hour))
	fresh := pendingCreated(now.Add(-23 * time.Hour))
	repo := &fakeReservations{items: map[uuid.UUID]*domain.Reservation{
		overdue.ID: overdue, exactly.ID: exactly, fresh.ID: fresh,
	}}
	uc, m := setup(repo)

	n, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, domain.StateExpired, repo.items[overdue.ID].State)
	assert.Equal(t, domain.StateExpired, repo.items[exactly.ID].State)
	assert.NotNil(t, repo.items[overdue.ID].ResolvedAt)
	assert.Equal(t, domain.StatePendingReview, repo.items[fresh.ID].State)
	assert.Equal(t, 2, m.transitions)
	assert.Equal(t, []string{"ok"}, m.sweeps)

	n, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExecute_SkipsConcurrentlyResolved(t *testing.T) {
	a := pendingCreated(now.Add(-30 * time.Hour))
	b := pendingCreated(now.Add(-30 * time.Hour))
	repo := &fakeReservations{
		items: map[uuid.UUID]*domain.Reservation{a.ID: a, b.ID: b},
		raced: map[uuid.UUID]bool{a.ID: true},
	}
	uc, _ := setup(repo)

	n, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.StateExpired, repo.items[b.ID].State)
}

func TestExecute_StorageErrors(t *testing.T) {
	r := pendingCreated(now.Add(-30 * time.Hour))

	t.Run("list", func(t *testing.T) {
		uc, m := setup(&fakeReservations{listErr: errors.New("db down")})
		_, err := uc.Execute(context.Background())
		require.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, []string{"error"}, m.sweeps)
	})

	t.Run("update", func(t *testing.T) {
		uc, _ := setup(&fakeReservations{
			items:     map[uuid.UUID]*domain.Reservation{r.ID: r},
			updateErr: errors.New("db down"),
		})
		n, err := uc.Execute(context.Background())
		require.ErrorIs(t, err, ErrInternal)
		assert.Zero(t, n)
	})
}
