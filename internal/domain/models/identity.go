package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity roles. A role is assigned at registration and never changes;
// it decides which profile collection holds the account's profile.
const (
	RoleSeeker       = "seeker"
	RoleOrganization = "organization"
)

// Account statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// AuthIdentity is the canonical login record for an account, independent
// of whether the account is a seeker or an organization. Exactly one
// profile document (in the collection matching Role) exists per identity.
type AuthIdentity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // seeker | organization
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
