package repositories

import (
	"context"
	"errors"
	"fmt"

	"girasol/internal/constants"
	"girasol/internal/database"
	"girasol/internal/events"
	. "girasol/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

type userRepository struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger
}

func NewUserRepository(db database.DB, eventBus *events.EventBus) UserRepository {
	return &userRepository{
		db:       db,
		eventBus: eventBus,
		log:      logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if found, err := r.getCacheByID(ctx, id, &user); err == nil && found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
		}
		return nil, log.Err("failed to get user", storeErr(err), "id", id)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return nil, log.Err("failed to get user by email", storeErr(err), "email", email)
	}

	return &user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]User, error) {
	log := r.log.Function("GetAll")

	var users []User
	if err := r.db.SQLWithContext(ctx).Order("name ASC").Find(&users).Error; err != nil {
		return nil, log.Err("failed to list users", storeErr(err))
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *User) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(user).Error; err != nil {
		return log.Err("failed to create user", storeErr(err), "email", user.Email)
	}

	r.notifyChanged()
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *User) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", storeErr(err), "id", user.ID)
	}

	if err := r.clearUserCache(ctx, user.ID); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	r.notifyChanged()
	return nil
}

func (r *userRepository) getCacheByID(ctx context.Context, id uuid.UUID, user *User) (bool, error) {
	return database.NewCacheBuilder(r.db.Cache.User, id).
		WithPrefix(constants.UserCachePrefix).
		WithContext(ctx).
		Get(user)
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	return database.NewCacheBuilder(r.db.Cache.User, user.ID).
		WithPrefix(constants.UserCachePrefix).
		WithStruct(user).
		WithTTL(constants.UserCacheExpiry).
		WithContext(ctx).
		Set()
}

func (r *userRepository) clearUserCache(ctx context.Context, id uuid.UUID) error {
	return database.NewCacheBuilder(r.db.Cache.User, id).
		WithPrefix(constants.UserCachePrefix).
		WithContext(ctx).
		Delete()
}

func (r *userRepository) notifyChanged() {
	if r.eventBus == nil {
		return
	}
	if err := r.eventBus.PublishCollectionChanged(events.USERS_CHANNEL, "users"); err != nil {
		r.log.Function("notifyChanged").Warn("failed to publish collection change", "error", err)
	}
}
