package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// User is the internal account record. Invitation placeholders created by
// project creation have no AuthSubject until the invitee's first login links
// it by email match.
type User struct {
	ID          uuid.UUID
	Email       string
	Name        string
	Role        Role
	AuthSubject sql.NullString
	AvatarURL   sql.NullString
	CreatedAt   time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
