package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TaskType is the closed set of turnover tasks personnel can be assigned to.
// Only Cleaning and Laundry carry completion flags on a reservation;
// Concierge is assignment-only.
type TaskType string

const (
	TaskConcierge TaskType = "concierge"
	TaskCleaning  TaskType = "cleaning"
	TaskLaundry   TaskType = "laundry"
)

func AllTaskTypes() []TaskType {
	return []TaskType{TaskConcierge, TaskCleaning, TaskLaundry}
}

func (t TaskType) IsValid() bool {
	switch t {
	case TaskConcierge, TaskCleaning, TaskLaundry:
		return true
	}
	return false
}

// PersonnelMap maps a task to the assigned user id. The map is sparse:
// unassigned tasks are absent, never stored as an empty value, so "assigned"
// is queryable by key presence alone. Persisted as a jsonb column.
type PersonnelMap map[TaskType]string

// Assign sets or clears the assignment for a task. An empty userID removes
// the key entirely.
func (p PersonnelMap) Assign(task TaskType, userID string) {
	if userID == "" {
		delete(p, task)
		return
	}
	p[task] = userID
}

func (p PersonnelMap) Clone() PersonnelMap {
	clone := make(PersonnelMap, len(p))
	for task, userID := range p {
		clone[task] = userID
	}
	return clone
}

func (p PersonnelMap) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	bytes, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

func (p *PersonnelMap) Scan(value any) error {
	if value == nil {
		*p = PersonnelMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for PersonnelMap: %T", value)
	}

	return json.Unmarshal(bytes, p)
}

func (PersonnelMap) GormDataType() string {
	return "jsonb"
}
