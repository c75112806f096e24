package services

import (
	"context"
	"errors"
	"testing"
	"time"

	. "girasol/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeApartmentRepo struct {
	apartments map[uuid.UUID]*Apartment
}

func newFakeApartmentRepo(apartments ...Apartment) *fakeApartmentRepo {
	repo := &fakeApartmentRepo{apartments: make(map[uuid.UUID]*Apartment)}
	for i := range apartments {
		a := apartments[i]
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		repo.apartments[a.ID] = &a
	}
	return repo
}

func (f *fakeApartmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*Apartment, error) {
	a, ok := f.apartments[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *a
	return &result, nil
}

func (f *fakeApartmentRepo) GetAll(ctx context.Context) ([]Apartment, error) {
	all := make([]Apartment, 0, len(f.apartments))
	for _, a := range f.apartments {
		all = append(all, *a)
	}
	return all, nil
}

func (f *fakeApartmentRepo) Create(ctx context.Context, apartment *Apartment) error {
	if apartment.ID == uuid.Nil {
		apartment.ID = uuid.New()
	}
	result := *apartment
	f.apartments[apartment.ID] = &result
	return nil
}

func (f *fakeApartmentRepo) Update(ctx context.Context, apartment *Apartment) error {
	if _, ok := f.apartments[apartment.ID]; !ok {
		return ErrNotFound
	}
	result := *apartment
	f.apartments[apartment.ID] = &result
	return nil
}

func (f *fakeApartmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.apartments[id]; !ok {
		return ErrNotFound
	}
	delete(f.apartments, id)
	return nil
}

func activeReservation() Reservation {
	arrival := time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC)
	return Reservation{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		ApartmentID:   uuid.New(),
		TenantName:    "Tenant",
		GuestCount:    2,
		Arrival:       arrival,
		Departure:     arrival.AddDate(0, 0, 4),
		Status:        ReservationCleaning,
	}
}

func TestApplyEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("cleaning done persists the flag", func(t *testing.T) {
		r := activeReservation()
		repo := newFakeReservationRepo(r)
		service := NewLifecycleService(repo, newFakeApartmentRepo())

		updated, err := service.ApplyEvent(ctx, r.ID, CleaningDone{})

		assert.NoError(t, err)
		assert.True(t, updated.CleaningCompleted)

		stored, _ := repo.GetByID(ctx, r.ID)
		assert.True(t, stored.CleaningCompleted)
	})

	t.Run("repeated event skips the write", func(t *testing.T) {
		r := activeReservation()
		r.CleaningCompleted = true
		repo := newFakeReservationRepo(r)
		service := NewLifecycleService(repo, newFakeApartmentRepo())

		_, err := service.ApplyEvent(ctx, r.ID, CleaningDone{})

		assert.NoError(t, err)
		assert.Empty(t, repo.updated)
	})

	t.Run("remark appends to the log", func(t *testing.T) {
		r := activeReservation()
		r.Remarks = "- earlier note"
		repo := newFakeReservationRepo(r)
		service := NewLifecycleService(repo, newFakeApartmentRepo())

		updated, err := service.ApplyEvent(ctx, r.ID, RemarkAdded{Text: "towels restocked"})

		assert.NoError(t, err)
		assert.Equal(t, "- earlier note\n- towels restocked", updated.Remarks)
	})

	t.Run("blank remark is a no-op", func(t *testing.T) {
		r := activeReservation()
		repo := newFakeReservationRepo(r)
		service := NewLifecycleService(repo, newFakeApartmentRepo())

		_, err := service.ApplyEvent(ctx, r.ID, RemarkAdded{Text: "  "})

		assert.NoError(t, err)
		assert.Empty(t, repo.updated)
	})

	t.Run("invalid edit is rejected before the write", func(t *testing.T) {
		r := activeReservation()
		repo := newFakeReservationRepo(r)
		service := NewLifecycleService(repo, newFakeApartmentRepo())

		badCount := 0
		_, err := service.ApplyEvent(ctx, r.ID, DetailsEdited{
			Edit: ReservationEdit{GuestCount: &badCount},
		})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Empty(t, repo.updated)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		repo := newFakeReservationRepo()
		service := NewLifecycleService(repo, newFakeApartmentRepo())

		_, err := service.ApplyEvent(ctx, uuid.New(), CleaningDone{})

		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	arrival := time.Date(2026, 5, 11, 15, 0, 0, 0, time.UTC)

	apartment := Apartment{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Name:          "Sunset Loft",
		Personnel:     PersonnelMap{TaskCleaning: "user-1"},
	}

	t.Run("new stays enter the cleaning workflow", func(t *testing.T) {
		repo := newFakeReservationRepo()
		service := NewLifecycleService(repo, newFakeApartmentRepo(apartment))

		created, err := service.CreateReservation(ctx, NewReservationRequest{
			ApartmentID: apartment.ID,
			TenantName:  "Tenant",
			GuestCount:  2,
			Arrival:     arrival,
			Departure:   arrival.AddDate(0, 0, 3),
		})

		assert.NoError(t, err)
		assert.Equal(t, ReservationCleaning, created.Status)
		assert.False(t, created.CleaningCompleted)
		assert.False(t, created.LaundryCompleted)
	})

	t.Run("empty crew inherits the apartment template", func(t *testing.T) {
		repo := newFakeReservationRepo()
		service := NewLifecycleService(repo, newFakeApartmentRepo(apartment))

		created, err := service.CreateReservation(ctx, NewReservationRequest{
			ApartmentID: apartment.ID,
			TenantName:  "Tenant",
			GuestCount:  1,
			Arrival:     arrival,
			Departure:   arrival.AddDate(0, 0, 2),
		})

		assert.NoError(t, err)
		assert.Equal(t, "user-1", created.Personnel[TaskCleaning])
	})

	t.Run("explicit crew overrides the template", func(t *testing.T) {
		repo := newFakeReservationRepo()
		service := NewLifecycleService(repo, newFakeApartmentRepo(apartment))

		created, err := service.CreateReservation(ctx, NewReservationRequest{
			ApartmentID: apartment.ID,
			TenantName:  "Tenant",
			GuestCount:  1,
			Arrival:     arrival,
			Departure:   arrival.AddDate(0, 0, 2),
			Personnel:   PersonnelMap{TaskLaundry: "user-9"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "user-9", created.Personnel[TaskLaundry])
		_, inherited := created.Personnel[TaskCleaning]
		assert.False(t, inherited)
	})

	t.Run("invalid window is rejected", func(t *testing.T) {
		repo := newFakeReservationRepo()
		service := NewLifecycleService(repo, newFakeApartmentRepo(apartment))

		_, err := service.CreateReservation(ctx, NewReservationRequest{
			ApartmentID: apartment.ID,
			TenantName:  "Tenant",
			GuestCount:  1,
			Arrival:     arrival,
			Departure:   arrival,
		})

		assert.True(t, errors.Is(err, ErrValidation))
		assert.Empty(t, repo.reservations)
	})
}
