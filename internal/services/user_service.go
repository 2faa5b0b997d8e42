package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	SaveUser(username, password string) (models.SafeUser, error)
	GetUserByUsername(username string) (models.SafeUser, error)
	LoginUser(username, password string) (models.SafeUser, error)
	DeleteUserByUsername(username string) (models.SafeUser, error)
	UpdateUser(username string, update models.UserUpdate) (models.SafeUser, error)
}

// UserService provides business logic for user management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// SaveUser creates a new user, hashing their password. The returned
// representation never carries password material.
func (s *UserService) SaveUser(username, password string) (models.SafeUser, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.SafeUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		DateJoined:   time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, password_hash, date_joined) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.SafeUser{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Username, user.PasswordHash, user.DateJoined)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return models.SafeUser{}, ErrUsernameTaken
		}
		return models.SafeUser{}, err
	}

	return user.Safe(), nil
}

// GetUserByUsername retrieves a single user by their username.
func (s *UserService) GetUserByUsername(username string) (models.SafeUser, error) {
	user, err := s.getFullUser(username)
	if err != nil {
		return models.SafeUser{}, err
	}
	return user.Safe(), nil
}

// getFullUser loads a user including the password hash. Internal use only.
func (s *UserService) getFullUser(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, date_joined FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.DateJoined)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// LoginUser verifies a user's credentials. The two failure cases keep
// distinct messages: an unknown username reports ErrUserNotFound, a
// wrong password reports ErrInvalidCredentials. They must not be swapped.
func (s *UserService) LoginUser(username, password string) (models.SafeUser, error) {
	user, err := s.getFullUser(username)
	if err != nil {
		return models.SafeUser{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.SafeUser{}, ErrInvalidCredentials
	}

	return user.Safe(), nil
}

// DeleteUserByUsername removes a user and returns their last known safe
// representation.
func (s *UserService) DeleteUserByUsername(username string) (models.SafeUser, error) {
	user, err := s.getFullUser(username)
	if err != nil {
		return models.SafeUser{}, err
	}

	if _, err := s.db.Exec("DELETE FROM users WHERE username = ?", username); err != nil {
		return models.SafeUser{}, err
	}
	return user.Safe(), nil
}

// UpdateUser applies a partial update to a user. A new password is
// hashed before it is stored.
func (s *UserService) UpdateUser(username string, update models.UserUpdate) (models.SafeUser, error) {
	user, err := s.getFullUser(username)
	if err != nil {
		return models.SafeUser{}, err
	}

	if update.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.SafeUser{}, fmt.Errorf("failed to hash password: %w", err)
		}
		if _, err := s.db.Exec("UPDATE users SET password_hash = ? WHERE username = ?", string(hashedPassword), username); err != nil {
			return models.SafeUser{}, err
		}
	}

	return user.Safe(), nil
}
