package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func baseReservation() Reservation {
	return Reservation{
		ApartmentID: uuid.New(),
		TenantName:  "Tenant",
		GuestCount:  2,
		Arrival:     time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
		Departure:   time.Date(2026, 3, 6, 11, 0, 0, 0, time.UTC),
		Status:      ReservationCleaning,
	}
}

func TestMarkCleaningDone_Idempotent(t *testing.T) {
	r := baseReservation()

	assert.True(t, r.MarkCleaningDone())
	assert.True(t, r.CleaningCompleted)

	// Second call changes nothing
	assert.False(t, r.MarkCleaningDone())
	assert.True(t, r.CleaningCompleted)
}

func TestMarkLaundryDone_Idempotent(t *testing.T) {
	r := baseReservation()

	assert.True(t, r.MarkLaundryDone())
	assert.False(t, r.MarkLaundryDone())
	assert.True(t, r.LaundryCompleted)
}

func TestAppendRemark(t *testing.T) {
	t.Run("first remark has no leading newline", func(t *testing.T) {
		r := baseReservation()

		assert.True(t, r.AppendRemark("left keys at reception"))
		assert.Equal(t, "- left keys at reception", r.Remarks)
	})

	t.Run("subsequent remarks append on a new line", func(t *testing.T) {
		r := baseReservation()
		r.AppendRemark("first note")
		r.AppendRemark("second note")

		assert.Equal(t, "- first note\n- second note", r.Remarks)
	})

	t.Run("existing content is preserved exactly", func(t *testing.T) {
		r := baseReservation()
		r.Remarks = "legacy free text\nwith lines"

		r.AppendRemark("new note")

		assert.Equal(t, "legacy free text\nwith lines\n- new note", r.Remarks)
	})

	t.Run("whitespace-only input is ignored", func(t *testing.T) {
		r := baseReservation()
		r.Remarks = "- kept"

		assert.False(t, r.AppendRemark("   "))
		assert.False(t, r.AppendRemark(""))
		assert.Equal(t, "- kept", r.Remarks)
	})

	t.Run("inner whitespace is not trimmed", func(t *testing.T) {
		r := baseReservation()

		r.AppendRemark("  padded  ")
		assert.Equal(t, "-   padded  ", r.Remarks)
	})
}

func TestIsEligibleForArchival(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mutate    func(r *Reservation)
		departure time.Time
		want      bool
	}{
		{
			name: "both tasks done and departed",
			mutate: func(r *Reservation) {
				r.CleaningCompleted = true
				r.LaundryCompleted = true
			},
			departure: now.Add(-time.Hour),
			want:      true,
		},
		{
			name: "cleaning still open",
			mutate: func(r *Reservation) {
				r.LaundryCompleted = true
			},
			departure: now.Add(-time.Hour),
			want:      false,
		},
		{
			name: "laundry still open",
			mutate: func(r *Reservation) {
				r.CleaningCompleted = true
			},
			departure: now.Add(-time.Hour),
			want:      false,
		},
		{
			name: "departure in the future",
			mutate: func(r *Reservation) {
				r.CleaningCompleted = true
				r.LaundryCompleted = true
			},
			departure: now.Add(time.Hour),
			want:      false,
		},
		{
			name: "departure exactly now is not past",
			mutate: func(r *Reservation) {
				r.CleaningCompleted = true
				r.LaundryCompleted = true
			},
			departure: now,
			want:      false,
		},
		{
			name: "already archived",
			mutate: func(r *Reservation) {
				r.CleaningCompleted = true
				r.LaundryCompleted = true
				r.Status = ReservationArchived
			},
			departure: now.Add(-time.Hour),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := baseReservation()
			r.Departure = tt.departure
			tt.mutate(&r)

			assert.Equal(t, tt.want, r.IsEligibleForArchival(now))
		})
	}
}

func TestIsActive(t *testing.T) {
	r := baseReservation()
	assert.True(t, r.IsActive())

	// Legacy statuses still count as active
	r.Status = ReservationUpcoming
	assert.True(t, r.IsActive())
	r.Status = ReservationLaundry
	assert.True(t, r.IsActive())

	r.Status = ReservationArchived
	assert.False(t, r.IsActive())
}

func TestValidate(t *testing.T) {
	t.Run("valid reservation", func(t *testing.T) {
		r := baseReservation()
		assert.NoError(t, r.Validate())
	})

	t.Run("guest count below one", func(t *testing.T) {
		r := baseReservation()
		r.GuestCount = 0

		err := r.Validate()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("departure not after arrival", func(t *testing.T) {
		r := baseReservation()
		r.Departure = r.Arrival

		err := r.Validate()
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestApplyEdit(t *testing.T) {
	t.Run("nil fields are untouched", func(t *testing.T) {
		r := baseReservation()
		name := "New Tenant"

		err := r.ApplyEdit(ReservationEdit{TenantName: &name})

		assert.NoError(t, err)
		assert.Equal(t, "New Tenant", r.TenantName)
		assert.Equal(t, 2, r.GuestCount)
	})

	t.Run("invalid edit leaves reservation unchanged", func(t *testing.T) {
		r := baseReservation()
		before := r
		badCount := 0

		err := r.ApplyEdit(ReservationEdit{GuestCount: &badCount})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Equal(t, before, r)
	})

	t.Run("personnel is cloned not aliased", func(t *testing.T) {
		r := baseReservation()
		crew := PersonnelMap{TaskCleaning: "user-1"}

		err := r.ApplyEdit(ReservationEdit{Personnel: &crew})
		assert.NoError(t, err)

		crew[TaskCleaning] = "user-2"
		assert.Equal(t, "user-1", r.Personnel[TaskCleaning])
	})
}
