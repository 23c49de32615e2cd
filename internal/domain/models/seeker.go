package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeekerProfile is the profile document for a job seeker.
//
// FollowerIDs and FollowedIDs hold *profile* ids (seeker or organization),
// never identity ids. Anything that needs actor metadata for those ids must
// go back through the directory.
//
// ViewCount is a derived cache over the profile_views log and can be rebuilt
// by replay; the log is authoritative.
type SeekerProfile struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IdentityID primitive.ObjectID `bson:"identity_id" json:"identity_id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Headline   string             `bson:"headline,omitempty" json:"headline,omitempty"`
	Picture    string             `bson:"picture,omitempty" json:"picture,omitempty"`

	FollowerIDs []primitive.ObjectID `bson:"follower_ids,omitempty" json:"follower_ids"`
	FollowedIDs []primitive.ObjectID `bson:"followed_ids,omitempty" json:"followed_ids"`
	ViewCount   int64                `bson:"view_count" json:"view_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
