package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"girasol/config"
	. "girasol/internal/models"
	"girasol/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims carried inside issued tokens. Role is embedded so middleware can
// gate admin routes without a user lookup.
type TokenClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and validates the signed tokens that identify a user
// to the HTTP API and the websocket hub.
type AuthService struct {
	userRepo repositories.UserRepository
	config   config.Config
	log      logger.Logger
}

func NewAuthService(userRepo repositories.UserRepository, config config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		config:   config,
		log:      logger.New("AuthService"),
	}
}

// Register creates a new user account. Email is normalized to lower case;
// the role defaults to Personnel when unset.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	log := s.log.Function("Register")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = RolePersonnel
	}

	for _, task := range req.Tasks {
		if !task.IsValid() {
			return nil, fmt.Errorf("%w: unknown task type %q", ErrValidation, task)
		}
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user := &User{
		Name:  req.Name,
		Email: email,
		Role:  role,
	}
	user.Tasks = datatypes.NewJSONSlice(req.Tasks)
	if err := user.SetPassword(req.Password); err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a token. Credential failures are
// indistinguishable between unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.CheckPassword(req.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// GenerateToken signs a token for the user with the configured lifetime.
func (s *AuthService) GenerateToken(user *User) (string, error) {
	log := s.log.Function("GenerateToken")

	now := time.Now()
	claims := TokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.config.JWTExpiryHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", log.Err("failed to sign token", err)
	}

	return signed, nil
}

// ValidateToken parses and verifies a token, returning the user id and
// role it carries.
func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, Role, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", ErrInvalidCredentials
	}

	return userID, claims.Role, nil
}

// GetUser loads the profile behind a validated token.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
