package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inkpress/core/internal/models"
)

// CreateUser describes a new account. Role defaults to "user" and IsActive
// to true when unset.
type CreateUser struct {
	Username string
	Password string
	Email    string
	Name     string
	Bio      string
	Avatar   string
	Role     models.Role
}

// UserPatch is a shallow-merge partial update; nil fields are left untouched.
type UserPatch struct {
	Username *string
	Password *string
	Email    *string
	Name     *string
	Bio      *string
	Avatar   *string
	Role     *models.Role
	IsActive *bool
}

// CreateUser inserts a new user. Username and email must be unique
// (case-insensitive); violations return ErrConflict.
func (s *Store) CreateUser(in CreateUser) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserByUsername(in.Username) != 0 {
		return nil, fmt.Errorf("username %q: %w", in.Username, ErrConflict)
	}
	if s.findUserByEmail(in.Email) != 0 {
		return nil, fmt.Errorf("email %q: %w", in.Email, ErrConflict)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("role %q: %w", role, ErrValidation)
	}

	u := models.User{
		ID:       s.nextID(&s.ids.user),
		Username: in.Username,
		Password: in.Password,
		Email:    in.Email,
		Name:     in.Name,
		Bio:      in.Bio,
		Avatar:   in.Avatar,
		Role:     role,
		IsActive: true,
	}
	s.users[u.ID] = u
	return &u, nil
}

// UserByID returns the user or nil when absent.
func (s *Store) UserByID(id int) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u
	}
	return nil
}

// UserByUsername matches case-insensitively.
func (s *Store) UserByUsername(username string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id := s.findUserByUsername(username); id != 0 {
		u := s.users[id]
		return &u
	}
	return nil
}

// UserByEmail matches case-insensitively.
func (s *Store) UserByEmail(email string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id := s.findUserByEmail(email); id != 0 {
		u := s.users[id]
		return &u
	}
	return nil
}

// Users returns all users ordered by id.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateUser shallow-merges the patch over the stored user. Returns (nil, nil)
// when the id is unknown. Username/email changes re-check uniqueness.
func (s *Store) UpdateUser(id int, patch UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}

	if patch.Username != nil && !strings.EqualFold(*patch.Username, u.Username) {
		if other := s.findUserByUsername(*patch.Username); other != 0 && other != id {
			return nil, fmt.Errorf("username %q: %w", *patch.Username, ErrConflict)
		}
		u.Username = *patch.Username
	}
	if patch.Email != nil && !strings.EqualFold(*patch.Email, u.Email) {
		if other := s.findUserByEmail(*patch.Email); other != 0 && other != id {
			return nil, fmt.Errorf("email %q: %w", *patch.Email, ErrConflict)
		}
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return nil, fmt.Errorf("role %q: %w", *patch.Role, ErrValidation)
		}
		u.Role = *patch.Role
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.IsActive != nil {
		u.IsActive = *patch.IsActive
	}

	s.users[id] = u
	return &u, nil
}

// DeleteUser removes the user. Authored posts keep their authorId; the
// dangling reference is tolerated. Idempotent.
func (s *Store) DeleteUser(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *Store) findUserByUsername(username string) int {
	for id, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return id
		}
	}
	return 0
}

func (s *Store) findUserByEmail(email string) int {
	for id, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return id
		}
	}
	return 0
}
