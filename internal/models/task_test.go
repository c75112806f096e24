package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonnelMapAssign(t *testing.T) {
	t.Run("assign sets the user", func(t *testing.T) {
		p := PersonnelMap{}
		p.Assign(TaskCleaning, "user-1")

		assert.Equal(t, "user-1", p[TaskCleaning])
	})

	t.Run("empty user removes the key entirely", func(t *testing.T) {
		p := PersonnelMap{TaskCleaning: "user-1", TaskLaundry: "user-2"}
		p.Assign(TaskCleaning, "")

		_, present := p[TaskCleaning]
		assert.False(t, present)
		assert.Len(t, p, 1)
	})

	t.Run("clearing an absent task is a no-op", func(t *testing.T) {
		p := PersonnelMap{}
		p.Assign(TaskConcierge, "")

		assert.Empty(t, p)
	})
}

func TestPersonnelMapClone(t *testing.T) {
	original := PersonnelMap{TaskCleaning: "user-1"}
	clone := original.Clone()

	clone.Assign(TaskCleaning, "user-2")

	assert.Equal(t, "user-1", original[TaskCleaning])
	assert.Equal(t, "user-2", clone[TaskCleaning])
}

func TestTaskTypeIsValid(t *testing.T) {
	for _, task := range AllTaskTypes() {
		assert.True(t, task.IsValid(), "task %s", task)
	}

	assert.False(t, TaskType("gardening").IsValid())
	assert.False(t, TaskType("").IsValid())
}
