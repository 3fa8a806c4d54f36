package store

import (
	"context"
	"fmt"

	"turkish_shop_backend/internal/apperr"
	"turkish_shop_backend/internal/models"

	"github.com/gocql/gocql"
)

// Users is the accessor for staff/customer accounts. The admin gate reads the
// role field off these records; it never trusts the token alone.
type Users struct {
	session *gocql.Session
}

func NewUsers(session *gocql.Session) *Users {
	return &Users{session: session}
}

// Create inserts a user record and its email index row.
func (s *Users) Create(ctx context.Context, u *models.User) error {
	err := s.session.Query(`
		INSERT INTO users (user_id, email, name, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.UserID, u.Email, u.Name, u.Role, u.PasswordHash, u.CreatedAt).WithContext(ctx).Exec()
	if err != nil {
		return err
	}
	return s.session.Query(`
		INSERT INTO users_by_email (email, user_id) VALUES (?, ?)
	`, u.Email, u.UserID).WithContext(ctx).Exec()
}

func (s *Users) GetByID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := s.session.Query(`
		SELECT user_id, email, name, role, password_hash, created_at
		FROM users WHERE user_id = ?
	`, userID).WithContext(ctx).Scan(&u.UserID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err == gocql.ErrNotFound {
		return nil, fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var userID string
	err := s.session.Query(`
		SELECT user_id FROM users_by_email WHERE email = ?
	`, email).WithContext(ctx).Scan(&userID)
	if err == gocql.ErrNotFound {
		return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, userID)
}

// SetRole changes a user's role. The existing record is read first so a typo'd
// user id errors instead of upserting a phantom row.
func (s *Users) SetRole(ctx context.Context, userID, role string) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.session.Query(`
		UPDATE users SET role = ? WHERE user_id = ?
	`, role, userID).WithContext(ctx).Exec()
}

// GetRole returns the role of a user record. Missing record reads as no role,
// so the admin gate fails closed.
func (s *Users) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := s.session.Query(`
		SELECT role FROM users WHERE user_id = ?
	`, userID).WithContext(ctx).Scan(&role)
	if err == gocql.ErrNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}
