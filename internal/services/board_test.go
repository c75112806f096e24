package services

import (
	"testing"
	"time"

	. "girasol/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func boardReservation(apartmentID uuid.UUID, arrival, departure time.Time) Reservation {
	return Reservation{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		ApartmentID:   apartmentID,
		TenantName:    "Tenant",
		GuestCount:    2,
		Arrival:       arrival,
		Departure:     departure,
		Status:        ReservationCleaning,
	}
}

func TestWeekWindow(t *testing.T) {
	t.Run("midweek resolves to the preceding Monday", func(t *testing.T) {
		// Wednesday
		now := time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)

		start, end := WeekWindow(now)

		assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Monday, start.Weekday())
		assert.Equal(t, time.Sunday, end.Weekday())
		assert.True(t, end.Before(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("Sunday belongs to the week that started six days earlier", func(t *testing.T) {
		now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

		start, _ := WeekWindow(now)

		assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("Monday is its own week start", func(t *testing.T) {
		now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

		start, _ := WeekWindow(now)

		assert.Equal(t, now, start)
	})
}

func TestGroupByApartment(t *testing.T) {
	aptA := Apartment{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}, Name: "A"}
	aptB := Apartment{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}, Name: "B"}
	apartments := []Apartment{aptA, aptB}

	base := time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC)
	late := boardReservation(aptA.ID, base, base.AddDate(0, 0, 5))
	early := boardReservation(aptA.ID, base, base.AddDate(0, 0, 2))

	t.Run("empty filter includes every apartment, even without stays", func(t *testing.T) {
		groups := GroupByApartment(apartments, []Reservation{early}, nil)

		assert.Len(t, groups, 2)
		assert.Len(t, groups[0].Reservations, 1)
		assert.NotNil(t, groups[1].Reservations)
		assert.Empty(t, groups[1].Reservations)
	})

	t.Run("reservations sort by departure within a group", func(t *testing.T) {
		groups := GroupByApartment(apartments, []Reservation{late, early}, nil)

		assert.Equal(t, early.ID, groups[0].Reservations[0].ID)
		assert.Equal(t, late.ID, groups[0].Reservations[1].ID)
	})

	t.Run("filter narrows to the named apartments", func(t *testing.T) {
		groups := GroupByApartment(apartments, []Reservation{early}, []uuid.UUID{aptB.ID})

		assert.Len(t, groups, 1)
		assert.Equal(t, aptB.ID, groups[0].Apartment.ID)
	})

	t.Run("archived stays are excluded", func(t *testing.T) {
		archived := boardReservation(aptA.ID, base, base.AddDate(0, 0, 1))
		archived.Status = ReservationArchived

		groups := GroupByApartment(apartments, []Reservation{archived}, nil)

		assert.Empty(t, groups[0].Reservations)
	})
}

func TestBuildWeeklyDigest(t *testing.T) {
	// Wednesday March 11 2026; week runs Mon Mar 9 .. Sun Mar 15
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	aptID := uuid.New()

	t.Run("window membership", func(t *testing.T) {
		inWeek := boardReservation(aptID,
			time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC))
		followingMonday := boardReservation(aptID,
			time.Date(2026, 3, 16, 15, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 20, 11, 0, 0, 0, time.UTC))
		sundayDeparture := boardReservation(aptID,
			time.Date(2026, 3, 5, 15, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC))

		digest := BuildWeeklyDigest(
			[]Reservation{inWeek, followingMonday, sundayDeparture},
			nil,
			now,
		)

		assert.Len(t, digest.Arrivals, 1)
		assert.Equal(t, inWeek.ID, digest.Arrivals[0].ID)

		assert.Len(t, digest.Departures, 2)
	})

	t.Run("arrivals and departures sort chronologically", func(t *testing.T) {
		first := boardReservation(aptID,
			time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC))
		second := boardReservation(aptID,
			time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC))

		digest := BuildWeeklyDigest([]Reservation{second, first}, nil, now)

		assert.Equal(t, first.ID, digest.Arrivals[0].ID)
		assert.Equal(t, second.ID, digest.Arrivals[1].ID)
		assert.Equal(t, second.ID, digest.Departures[0].ID)
		assert.Equal(t, first.ID, digest.Departures[1].ID)
	})

	t.Run("apartment filter applies", func(t *testing.T) {
		mine := boardReservation(aptID,
			time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC))
		other := boardReservation(uuid.New(),
			time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 12, 11, 0, 0, 0, time.UTC))

		digest := BuildWeeklyDigest([]Reservation{mine, other}, []uuid.UUID{aptID}, now)

		assert.Len(t, digest.Arrivals, 1)
		assert.Equal(t, mine.ID, digest.Arrivals[0].ID)
	})

	t.Run("archived stays linger only until departure passes", func(t *testing.T) {
		stillVisible := boardReservation(aptID,
			time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 13, 11, 0, 0, 0, time.UTC))
		stillVisible.Status = ReservationArchived

		gone := boardReservation(aptID,
			time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC))
		gone.Status = ReservationArchived

		digest := BuildWeeklyDigest([]Reservation{stillVisible, gone}, nil, now)

		assert.Len(t, digest.Departures, 1)
		assert.Equal(t, stillVisible.ID, digest.Departures[0].ID)
	})
}
