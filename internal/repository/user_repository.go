package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripline/vehicle-location-go/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns its ID
func (r *UserRepository) Create(user *models.User) (int64, error) {
	query := `INSERT INTO users (username, password_hash, email, created_at) VALUES (?, ?, ?, ?)`

	res, err := r.db.Exec(query, user.Username, user.PasswordHash, user.Email, user.CreatedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read user id: %w", err)
	}
	return id, nil
}

// GetByUsername retrieves a user by username, or nil if none exists
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, email, created_at FROM users WHERE username = ?`

	var u models.User
	var createdAt int64
	err := r.db.QueryRow(query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}

// GetByID retrieves a user by ID, or nil if none exists
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	query := `SELECT id, username, password_hash, email, created_at FROM users WHERE id = ?`

	var u models.User
	var createdAt int64
	err := r.db.QueryRow(query, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}
