package models

import (
	"gorm.io/datatypes"
)

// CleaningStatus is the housekeeping state of an apartment itself, distinct
// from the per-reservation workflow flags.
type CleaningStatus string

const (
	CleaningToBeCleaned CleaningStatus = "to_be_cleaned"
	CleaningInProgress  CleaningStatus = "in_progress"
	CleaningClean       CleaningStatus = "clean"
)

type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Apartment struct {
	BaseUUIDModel
	Name        string                              `gorm:"type:text;not null"      json:"name"`
	Address     string                              `gorm:"type:text"               json:"address"`
	Description string                              `gorm:"type:text"               json:"description"`
	// Personnel is the default crew template copied into new reservations.
	Personnel PersonnelMap                       `gorm:"type:jsonb;default:'{}'" json:"personnel"`
	Status    CleaningStatus                     `gorm:"type:text;not null"      json:"status"`
	Checklist datatypes.JSONSlice[ChecklistItem] `gorm:"type:jsonb"              json:"checklist"`
}

// ApartmentEdit is a partial update; nil fields are left untouched.
type ApartmentEdit struct {
	Name        *string          `json:"name,omitempty"`
	Address     *string          `json:"address,omitempty"`
	Description *string          `json:"description,omitempty"`
	Personnel   *PersonnelMap    `json:"personnel,omitempty"`
	Status      *CleaningStatus  `json:"status,omitempty"`
	Checklist   *[]ChecklistItem `json:"checklist,omitempty"`
}

func (a *Apartment) ApplyEdit(edit ApartmentEdit) {
	if edit.Name != nil {
		a.Name = *edit.Name
	}
	if edit.Address != nil {
		a.Address = *edit.Address
	}
	if edit.Description != nil {
		a.Description = *edit.Description
	}
	if edit.Personnel != nil {
		a.Personnel = edit.Personnel.Clone()
	}
	if edit.Status != nil {
		a.Status = *edit.Status
	}
	if edit.Checklist != nil {
		a.Checklist = datatypes.NewJSONSlice(*edit.Checklist)
	}
}
