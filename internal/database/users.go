package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"client-portal-backend/internal/models"
)

const userColumns = "id, email, name, role, auth_subject, avatar_url, created_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Role,
		&user.AuthSubject, &user.AvatarURL, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}

func (c *Client) GetUserByID(id uuid.UUID) (*models.User, error) {
	return scanUser(c.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (c *Client) GetUserByAuthSubject(subject string) (*models.User, error) {
	return scanUser(c.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users
		WHERE auth_subject = $1
	`, subject))
}

func (c *Client) GetUserByEmail(email string) (*models.User, error) {
	return scanUser(c.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (c *Client) CreateUser(user *models.User) (*models.User, error) {
	return scanUser(c.db.QueryRow(`
		INSERT INTO users (id, email, name, role, auth_subject, avatar_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns+`
	`, user.ID, user.Email, user.Name, user.Role, user.AuthSubject, user.AvatarURL))
}

// InsertOrGetUserByEmail inserts an invitation placeholder, or returns the
// existing row when the email is already taken. The conflict clause makes the
// lookup-then-create race deterministic.
func (c *Client) InsertOrGetUserByEmail(email, name string, role models.Role) (*models.User, error) {
	return scanUser(c.db.QueryRow(`
		INSERT INTO users (id, email, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING `+userColumns+`
	`, uuid.New(), email, name, role))
}

// UpdateUserProfile overwrites name/email/avatar; the identity provider is
// authoritative for these fields.
func (c *Client) UpdateUserProfile(id uuid.UUID, name, email string, avatarURL sql.NullString) (*models.User, error) {
	return scanUser(c.db.QueryRow(`
		UPDATE users
		SET name = $1, email = $2, avatar_url = $3
		WHERE id = $4
		RETURNING `+userColumns+`
	`, name, email, avatarURL, id))
}

// LinkAuthSubject attaches an external identity to an invitation placeholder
// on the invitee's first login.
func (c *Client) LinkAuthSubject(id uuid.UUID, subject, name string, avatarURL sql.NullString) (*models.User, error) {
	return scanUser(c.db.QueryRow(`
		UPDATE users
		SET auth_subject = $1, name = $2, avatar_url = $3
		WHERE id = $4
		RETURNING `+userColumns+`
	`, subject, name, avatarURL, id))
}

func (c *Client) SetUserRole(id uuid.UUID, role models.Role) error {
	_, err := c.db.Exec(`
		UPDATE users
		SET role = $1
		WHERE id = $2
	`, role, id)
	return err
}
