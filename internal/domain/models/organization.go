package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrganizationProfile is the profile document for a hiring organization.
// It is structurally parallel to SeekerProfile so the directory can expose
// both behind one tagged actor type.
type OrganizationProfile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IdentityID primitive.ObjectID `bson:"identity_id" json:"identity_id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Headline   string             `bson:"headline,omitempty" json:"headline,omitempty"`
	Picture    string             `bson:"picture,omitempty" json:"picture,omitempty"`

	FollowerIDs []primitive.ObjectID `bson:"follower_ids,omitempty" json:"follower_ids"`
	FollowedIDs []primitive.ObjectID `bson:"followed_ids,omitempty" json:"followed_ids"`
	ViewCount   int64                `bson:"view_count" json:"view_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
