// Package users provides user profile storage and request identity.
package users

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/brenofinance/dashboard/internal/domain"
	"github.com/rs/zerolog"
)

// ErrUserNotFound is returned when no user has the requested id.
var ErrUserNotFound = errors.New("user not found")

// Repository handles user persistence in app.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "users").Logger(),
	}
}

const userColumns = "id, email, password_hash, name, currency, locale, tier, avatar_url"

// GetByID returns the user or ErrUserNotFound.
func (r *Repository) GetByID(id string) (*domain.User, error) {
	row := r.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return user, nil
}

// Update overwrites the editable profile fields of an existing user.
func (r *Repository) Update(user *domain.User) error {
	result, err := r.db.Exec(
		`UPDATE users SET name = ?, email = ?, currency = ?, locale = ?, avatar_url = ? WHERE id = ?`,
		user.Name, user.Email, string(user.Currency), user.Locale, user.AvatarURL, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	r.log.Debug().Str("user_id", user.ID).Msg("Updated user profile")
	return nil
}

// Create inserts a user.
func (r *Repository) Create(user *domain.User) error {
	_, err := r.db.Exec(
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.PasswordHash, user.Name, string(user.Currency), user.Locale, user.Tier, user.AvatarURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", user.ID, err)
	}
	return nil
}

// Count returns the number of users.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var currency string
	var avatar sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &currency, &u.Locale, &u.Tier, &avatar); err != nil {
		return nil, err
	}
	u.Currency = domain.Currency(currency)
	if avatar.Valid {
		u.AvatarURL = &avatar.String
	}
	return &u, nil
}
