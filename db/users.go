package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"schoolhub_backend/models"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(database *sql.DB) *UserStore {
	return &UserStore{db: database}
}

// CreateUser inserts a new account. Duplicate emails surface as
// ErrDuplicateEmail via the unique constraint, so concurrent registrations
// for the same address converge on one row.
func (s *UserStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt)

	if isUniqueViolation(err) {
		return models.User{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

func (s *UserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, password_hash, role, COALESCE(phone, ''), created_at
		FROM users WHERE email = $1
	`, email))
}

func (s *UserStore) FindUserByID(ctx context.Context, id int) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, password_hash, role, COALESCE(phone, ''), created_at
		FROM users WHERE id = $1
	`, id))
}

func (s *UserStore) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Role, &user.Phone, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, id int, req models.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		UPDATE users SET first_name = $1, last_name = $2, phone = $3
		WHERE id = $4
		RETURNING id, first_name, last_name, email, password_hash, role, COALESCE(phone, ''), created_at
	`, req.FirstName, req.LastName, req.Phone, id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email,
			&user.PasswordHash, &user.Role, &user.Phone, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return &user, nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, role, COALESCE(phone, ''), created_at
		FROM users ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName,
			&user.Email, &user.Role, &user.Phone, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
