package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleAdmin     Role = "Admin"
	RolePersonnel Role = "Personnel"
)

type User struct {
	BaseUUIDModel
	Name         string                        `gorm:"type:text;not null"        json:"name"`
	Email        string                        `gorm:"type:text;uniqueIndex"     json:"email"`
	PasswordHash string                        `gorm:"type:text"                 json:"-"`
	Role         Role                          `gorm:"type:text;not null"        json:"role"`
	Tasks        datatypes.JSONSlice[TaskType] `gorm:"type:jsonb"                json:"tasks"`
}

// HasTask reports task eligibility: a user is eligible for a task iff it is
// in their task set.
func (u *User) HasTask(task TaskType) bool {
	for _, t := range u.Tasks {
		if t == task {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

type RegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     Role       `json:"role"`
	Tasks    []TaskType `json:"tasks"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile is the public shape of a user, safe to push to clients.
type UserProfile struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  Role       `json:"role"`
	Tasks []TaskType `json:"tasks"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Tasks: u.Tasks,
	}
}

// UserEdit is a partial update for name, role, and task set. Email and
// password change through dedicated flows.
type UserEdit struct {
	Name  *string     `json:"name,omitempty"`
	Role  *Role       `json:"role,omitempty"`
	Tasks *[]TaskType `json:"tasks,omitempty"`
}

func (u *User) ApplyEdit(edit UserEdit) {
	if edit.Name != nil {
		u.Name = *edit.Name
	}
	if edit.Role != nil {
		u.Role = *edit.Role
	}
	if edit.Tasks != nil {
		u.Tasks = datatypes.NewJSONSlice(*edit.Tasks)
	}
}
