package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileView is one record in the append-only view log.
//
// ViewerID is the viewer's *identity* id and is nil for anonymous views.
// Anonymous views are never deduplicated (there is no stable key to dedup
// on); VisitorToken is an opaque per-event correlation token so anonymous
// traffic can still be grouped in offline analysis.
//
// Day is the UTC calendar day ("YYYY-MM-DD") of CreatedAt and backs the
// unique dedup index for identified viewers.
type ProfileView struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ViewerID     *primitive.ObjectID `bson:"viewer_id,omitempty" json:"viewer_id,omitempty"`
	ViewedID     primitive.ObjectID  `bson:"viewed_id" json:"viewed_id"`
	Day          string              `bson:"day" json:"day"`
	VisitorToken string              `bson:"visitor_token,omitempty" json:"-"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}
