package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tsutsun/magicaltsutsunlist/internal/utils"
)

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	IsRegistered bool
	Username     string
	Email        string
	PasswordHash string
	Role         string
}

// RoleDefault is assigned to signups that don't request a role; only an
// operator hands out "admin".
const RoleDefault = "otaku"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a registered user and returns its ID.  The password is
// bcrypt-hashed before it touches the database.
func (r *UserRepo) Create(ctx context.Context, username, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if role == "" {
		role = RoleDefault
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (is_registered, username, email, pass, role) VALUES (1,?,?,?,?)",
		username, email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByLogin fetches a registered user by username or email.  Username
// comparison is case-sensitive (BINARY), email is normalized lowercase.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, is_registered, username, email, pass, role FROM users
		 WHERE is_registered=1 AND (email=? OR username=BINARY ?) LIMIT 1`,
		strings.ToLower(strings.TrimSpace(login)), login).
		Scan(&u.ID, &u.IsRegistered, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	return u, err
}

// GetByEmail fetches a registered user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, is_registered, username, email, pass, role FROM users WHERE is_registered=1 AND email=? LIMIT 1",
		email).Scan(&u.ID, &u.IsRegistered, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	return u, err
}

// UpdatePassword replaces the stored hash for the registered user with the
// given email.  ErrNotFound is returned when no such user exists.
func (r *UserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET pass=? WHERE is_registered=1 AND email=?",
		passwordHash, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such user" from "same hash": bcrypt output is
		// salted, so an unchanged row means the email did not match.
		return ErrNotFound
	}
	return nil
}
