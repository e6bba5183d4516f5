package auth

import (
	"github.com/inkpress/core/internal/models"
	"github.com/inkpress/core/internal/pkg/jwt"
	"github.com/inkpress/core/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// Service implements the authentication boundary: it owns credential hashing
// and token issuance. The store itself persists whatever credential it is
// handed.
type Service struct {
	store *storage.Store
}

func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

// Register creates a regular account with a bcrypt-hashed password.
func (s *Service) Register(dto *RegisterDTO) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.store.CreateUser(storage.CreateUser{
		Username: dto.Username,
		Password: string(hash),
		Email:    dto.Email,
		Name:     dto.Name,
		Role:     models.RoleUser,
	})
}

// Login verifies credentials and issues a signed token.
func (s *Service) Login(username, password string) (string, *models.User, error) {
	u := s.store.UserByUsername(username)
	if u == nil {
		return "", nil, errUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, errWrongPassword
	}
	if !u.IsActive {
		return "", nil, errUserInactive
	}

	token, err := jwt.Sign(u.ID, jwt.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// EnsureAdmin bootstraps a seeded admin account. It is a no-op when the
// username is already taken.
func (s *Service) EnsureAdmin(username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	if s.store.UserByUsername(username) != nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.store.CreateUser(storage.CreateUser{
		Username: username,
		Password: string(hash),
		Email:    email,
		Role:     models.RoleAdmin,
	})
	return err
}
