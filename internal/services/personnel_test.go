package services

import (
	"context"
	"errors"
	"testing"

	. "girasol/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*User
}

func newFakeUserRepo(users ...User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*User)}
	for i := range users {
		u := users[i]
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		repo.users[u.ID] = &u
	}
	return repo
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *u
	return &result, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]User, error) {
	all := make([]User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, *u)
	}
	return all, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	result := *user
	f.users[user.ID] = &result
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *User) error {
	if _, ok := f.users[user.ID]; !ok {
		return ErrNotFound
	}
	result := *user
	f.users[user.ID] = &result
	return nil
}

func taskUser(name string, tasks ...TaskType) User {
	return User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Name:          name,
		Email:         name + "@example.com",
		Role:          RolePersonnel,
		Tasks:         datatypes.NewJSONSlice(tasks),
	}
}

func TestEligibleUsers(t *testing.T) {
	cleaner := taskUser("cleaner", TaskCleaning)
	allRounder := taskUser("allrounder", TaskCleaning, TaskLaundry, TaskConcierge)
	concierge := taskUser("concierge", TaskConcierge)
	idle := taskUser("idle")

	users := []User{cleaner, allRounder, concierge, idle}

	eligible := EligibleUsers(users, TaskCleaning)
	assert.Len(t, eligible, 2)

	eligible = EligibleUsers(users, TaskLaundry)
	assert.Len(t, eligible, 1)
	assert.Equal(t, allRounder.ID, eligible[0].ID)

	assert.Empty(t, EligibleUsers([]User{idle}, TaskConcierge))
}

func TestAssignReservation(t *testing.T) {
	ctx := context.Background()
	cleaner := taskUser("cleaner", TaskCleaning)

	newService := func(r Reservation) (*PersonnelService, *fakeReservationRepo) {
		repo := newFakeReservationRepo(r)
		service := NewPersonnelService(
			newFakeUserRepo(cleaner),
			repo,
			newFakeApartmentRepo(),
		)
		return service, repo
	}

	t.Run("assigns an existing user", func(t *testing.T) {
		r := activeReservation()
		service, repo := newService(r)

		updated, err := service.AssignReservation(ctx, r.ID, TaskCleaning, cleaner.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, cleaner.ID.String(), updated.Personnel[TaskCleaning])

		stored, _ := repo.GetByID(ctx, r.ID)
		assert.Equal(t, cleaner.ID.String(), stored.Personnel[TaskCleaning])
	})

	t.Run("empty user clears the assignment", func(t *testing.T) {
		r := activeReservation()
		r.Personnel = PersonnelMap{TaskCleaning: cleaner.ID.String()}
		service, _ := newService(r)

		updated, err := service.AssignReservation(ctx, r.ID, TaskCleaning, "")

		assert.NoError(t, err)
		_, present := updated.Personnel[TaskCleaning]
		assert.False(t, present)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		r := activeReservation()
		service, _ := newService(r)

		_, err := service.AssignReservation(ctx, r.ID, TaskCleaning, uuid.New().String())

		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("malformed user id is a validation error", func(t *testing.T) {
		r := activeReservation()
		service, _ := newService(r)

		_, err := service.AssignReservation(ctx, r.ID, TaskCleaning, "not-a-uuid")

		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("unknown task is a validation error", func(t *testing.T) {
		r := activeReservation()
		service, _ := newService(r)

		_, err := service.AssignReservation(ctx, r.ID, TaskType("gardening"), "")

		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestAssignApartment(t *testing.T) {
	ctx := context.Background()
	cleaner := taskUser("cleaner", TaskCleaning)

	apartment := Apartment{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Name:          "Sunset Loft",
		Personnel:     PersonnelMap{},
	}

	service := NewPersonnelService(
		newFakeUserRepo(cleaner),
		newFakeReservationRepo(),
		newFakeApartmentRepo(apartment),
	)

	updated, err := service.AssignApartment(ctx, apartment.ID, TaskCleaning, cleaner.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, cleaner.ID.String(), updated.Personnel[TaskCleaning])
}

func TestListEligibleUsers(t *testing.T) {
	cleaner := taskUser("cleaner", TaskCleaning)
	service := NewPersonnelService(
		newFakeUserRepo(cleaner),
		newFakeReservationRepo(),
		newFakeApartmentRepo(),
	)

	users, err := service.ListEligibleUsers(context.Background(), TaskCleaning)
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = service.ListEligibleUsers(context.Background(), TaskType("bogus"))
	assert.True(t, errors.Is(err, ErrValidation))
}
