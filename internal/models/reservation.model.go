package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the lifecycle state of a stay. Upcoming and Laundry
// exist in stored documents from earlier app versions but the engine never
// produces them: progress through the workflow is tracked by the two
// completion flags, and the only transition emitted here is to Archived.
type ReservationStatus string

const (
	ReservationUpcoming ReservationStatus = "upcoming"
	ReservationCleaning ReservationStatus = "cleaning"
	ReservationLaundry  ReservationStatus = "laundry"
	ReservationArchived ReservationStatus = "archived"
)

type Reservation struct {
	BaseUUIDModel
	ApartmentID       uuid.UUID         `gorm:"type:uuid;index;not null"           json:"apartmentId"`
	TenantName        string            `gorm:"type:text;not null"                 json:"tenantName"`
	GuestCount        int               `gorm:"type:int;not null;default:1"        json:"guestCount"`
	Arrival           time.Time         `gorm:"type:timestamptz;not null"          json:"arrival"`
	Departure         time.Time         `gorm:"type:timestamptz;not null;index"    json:"departure"`
	Personnel         PersonnelMap      `gorm:"type:jsonb;default:'{}'"            json:"personnel"`
	Remarks           string            `gorm:"type:text"                          json:"remarks"`
	Status            ReservationStatus `gorm:"type:text;not null;index"           json:"status"`
	CleaningCompleted bool              `gorm:"type:bool;default:false"            json:"cleaningCompleted"`
	LaundryCompleted  bool              `gorm:"type:bool;default:false"            json:"laundryCompleted"`
}

// IsActive reports whether the reservation still belongs on the operational
// board. Legacy documents may carry Upcoming or Laundry; anything short of
// Archived counts as active.
func (r *Reservation) IsActive() bool {
	return r.Status != ReservationArchived
}

// MarkCleaningDone flips the cleaning flag. Idempotent: the flag is never
// reset, there is no undo at this layer. Returns whether the record changed.
func (r *Reservation) MarkCleaningDone() bool {
	if r.CleaningCompleted {
		return false
	}
	r.CleaningCompleted = true
	return true
}

// MarkLaundryDone flips the laundry flag, symmetric to MarkCleaningDone.
func (r *Reservation) MarkLaundryDone() bool {
	if r.LaundryCompleted {
		return false
	}
	r.LaundryCompleted = true
	return true
}

// AppendRemark adds a dash-prefixed line to the remarks log. Remarks are an
// append-only free-text log: prior content is preserved byte-for-byte.
// Whitespace-only input is ignored. Returns whether the record changed.
func (r *Reservation) AppendRemark(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	line := "- " + text
	if r.Remarks == "" {
		r.Remarks = line
	} else {
		r.Remarks = r.Remarks + "\n" + line
	}
	return true
}

// IsEligibleForArchival is the sole gate for automatic archival: both tasks
// complete and the stay already ended. The clock is passed in so the
// scheduler and tests share one definition.
func (r *Reservation) IsEligibleForArchival(now time.Time) bool {
	return r.Status != ReservationArchived &&
		r.CleaningCompleted &&
		r.LaundryCompleted &&
		r.Departure.Before(now)
}

// Validate checks the record invariants. Violations wrap ErrValidation.
func (r *Reservation) Validate() error {
	if r.GuestCount < 1 {
		return fmt.Errorf("%w: guest count must be at least 1, got %d", ErrValidation, r.GuestCount)
	}
	if !r.Departure.After(r.Arrival) {
		return fmt.Errorf("%w: departure must be after arrival", ErrValidation)
	}
	return nil
}

// ReservationEdit is a partial update: nil fields are left untouched.
// Completion flags and status are deliberately absent, those move through
// their own events.
type ReservationEdit struct {
	ApartmentID *uuid.UUID    `json:"apartmentId,omitempty"`
	TenantName  *string       `json:"tenantName,omitempty"`
	GuestCount  *int          `json:"guestCount,omitempty"`
	Arrival     *time.Time    `json:"arrival,omitempty"`
	Departure   *time.Time    `json:"departure,omitempty"`
	Remarks     *string       `json:"remarks,omitempty"`
	Personnel   *PersonnelMap `json:"personnel,omitempty"`
}

// ApplyEdit merges the supplied fields and re-validates the result. On a
// validation failure the reservation is left unchanged.
func (r *Reservation) ApplyEdit(edit ReservationEdit) error {
	merged := *r
	if edit.ApartmentID != nil {
		merged.ApartmentID = *edit.ApartmentID
	}
	if edit.TenantName != nil {
		merged.TenantName = *edit.TenantName
	}
	if edit.GuestCount != nil {
		merged.GuestCount = *edit.GuestCount
	}
	if edit.Arrival != nil {
		merged.Arrival = *edit.Arrival
	}
	if edit.Departure != nil {
		merged.Departure = *edit.Departure
	}
	if edit.Remarks != nil {
		merged.Remarks = *edit.Remarks
	}
	if edit.Personnel != nil {
		merged.Personnel = edit.Personnel.Clone()
	}

	if err := merged.Validate(); err != nil {
		return err
	}

	*r = merged
	return nil
}

// NewReservationRequest is the payload for creating a reservation. Status is
// not a caller choice: new stays always enter the cleaning workflow.
type NewReservationRequest struct {
	ApartmentID uuid.UUID    `json:"apartmentId"`
	TenantName  string       `json:"tenantName"`
	GuestCount  int          `json:"guestCount"`
	Arrival     time.Time    `json:"arrival"`
	Departure   time.Time    `json:"departure"`
	Remarks     string       `json:"remarks"`
	Personnel   PersonnelMap `json:"personnel"`
}
