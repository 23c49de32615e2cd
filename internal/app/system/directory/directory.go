// Package directory resolves account identities to profiles.
//
// Seekers and organizations live in separate collections with no shared
// canonical actor table. The directory is the only place that knows which
// collection holds a given actor; everything else works with the tagged
// Actor value and the kind-dispatched write methods, so no caller ever
// branches on kind.
package directory

import (
	"context"
	"errors"

	identitystore "github.com/dalemusser/workseek/internal/app/store/identities"
	organizationstore "github.com/dalemusser/workseek/internal/app/store/organizations"
	seekerstore "github.com/dalemusser/workseek/internal/app/store/seekers"
	"github.com/dalemusser/workseek/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Kind tags which profile collection an actor lives in.
type Kind string

const (
	Seeker       Kind = "seeker"
	Organization Kind = "organization"
)

// ErrNotFound is returned when an identity or its profile is missing.
// A dangling identity (identity without a profile) is a corruption
// condition and maps here too; it is never silently defaulted.
var ErrNotFound = errors.New("actor not found")

// Actor is the tagged view of a profile regardless of kind.
type Actor struct {
	Kind       Kind
	ProfileID  primitive.ObjectID
	IdentityID primitive.ObjectID
	Name       string
	Email      string
	Headline   string
	Picture    string

	FollowerIDs []primitive.ObjectID
	FollowedIDs []primitive.ObjectID
	ViewCount   int64
}

// Directory resolves identities and profile ids to actors.
type Directory struct {
	identities *identitystore.Store
	seekers    *seekerstore.Store
	orgs       *organizationstore.Store
}

func New(db *mongo.Database) *Directory {
	return &Directory{
		identities: identitystore.New(db),
		seekers:    seekerstore.New(db),
		orgs:       organizationstore.New(db),
	}
}

// Resolve maps an identity id to its actor. The identity's role decides
// which profile store is consulted.
func (d *Directory) Resolve(ctx context.Context, identityID primitive.ObjectID) (Actor, error) {
	identity, err := d.identities.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Actor{}, ErrNotFound
		}
		return Actor{}, err
	}

	switch identity.Role {
	case models.RoleSeeker:
		profile, err := d.seekers.GetByIdentityID(ctx, identityID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return Actor{}, ErrNotFound
			}
			return Actor{}, err
		}
		return seekerActor(profile), nil
	case models.RoleOrganization:
		profile, err := d.orgs.GetByIdentityID(ctx, identityID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return Actor{}, ErrNotFound
			}
			return Actor{}, err
		}
		return orgActor(profile), nil
	}
	return Actor{}, ErrNotFound
}

// ResolveByProfileID maps a profile id to its actor by probing the seeker
// store first, then the organization store. ObjectIDs make a cross-store
// collision vanishingly unlikely; first match wins.
func (d *Directory) ResolveByProfileID(ctx context.Context, profileID primitive.ObjectID) (Actor, error) {
	seeker, err := d.seekers.GetByID(ctx, profileID)
	if err == nil {
		return seekerActor(seeker), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return Actor{}, err
	}

	org, err := d.orgs.GetByID(ctx, profileID)
	if err == nil {
		return orgActor(org), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return Actor{}, err
	}
	return Actor{}, ErrNotFound
}

// ResolveProfiles batch-resolves profile ids, preserving input order.
// Ids that no longer resolve (deleted accounts are not pruned out of
// follower lists) are dropped from the result.
func (d *Directory) ResolveProfiles(ctx context.Context, profileIDs []primitive.ObjectID) ([]Actor, error) {
	if len(profileIDs) == 0 {
		return nil, nil
	}

	byID := make(map[primitive.ObjectID]Actor, len(profileIDs))

	seekers, err := d.seekers.GetByIDs(ctx, profileIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range seekers {
		byID[p.ID] = seekerActor(p)
	}

	orgs, err := d.orgs.GetByIDs(ctx, profileIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range orgs {
		if _, taken := byID[p.ID]; !taken {
			byID[p.ID] = orgActor(p)
		}
	}

	actors := make([]Actor, 0, len(profileIDs))
	for _, id := range profileIDs {
		if a, ok := byID[id]; ok {
			actors = append(actors, a)
		}
	}
	return actors, nil
}

// AddFollower appends followerProfileID to the actor's follower set.
func (d *Directory) AddFollower(ctx context.Context, a Actor, followerProfileID primitive.ObjectID) error {
	if a.Kind == Seeker {
		return d.seekers.AddFollower(ctx, a.ProfileID, followerProfileID)
	}
	return d.orgs.AddFollower(ctx, a.ProfileID, followerProfileID)
}

func (d *Directory) RemoveFollower(ctx context.Context, a Actor, followerProfileID primitive.ObjectID) error {
	if a.Kind == Seeker {
		return d.seekers.RemoveFollower(ctx, a.ProfileID, followerProfileID)
	}
	return d.orgs.RemoveFollower(ctx, a.ProfileID, followerProfileID)
}

// AddFollowed appends followedProfileID to the actor's followed set.
func (d *Directory) AddFollowed(ctx context.Context, a Actor, followedProfileID primitive.ObjectID) error {
	if a.Kind == Seeker {
		return d.seekers.AddFollowed(ctx, a.ProfileID, followedProfileID)
	}
	return d.orgs.AddFollowed(ctx, a.ProfileID, followedProfileID)
}

func (d *Directory) RemoveFollowed(ctx context.Context, a Actor, followedProfileID primitive.ObjectID) error {
	if a.Kind == Seeker {
		return d.seekers.RemoveFollowed(ctx, a.ProfileID, followedProfileID)
	}
	return d.orgs.RemoveFollowed(ctx, a.ProfileID, followedProfileID)
}

// IncrementViewCount bumps the actor's cached view counter by one.
func (d *Directory) IncrementViewCount(ctx context.Context, a Actor) error {
	if a.Kind == Seeker {
		return d.seekers.IncViewCount(ctx, a.ProfileID, 1)
	}
	return d.orgs.IncViewCount(ctx, a.ProfileID, 1)
}

// SetViewCount rewrites the cached counter after a replay of the view log.
func (d *Directory) SetViewCount(ctx context.Context, a Actor, n int64) error {
	if a.Kind == Seeker {
		return d.seekers.SetViewCount(ctx, a.ProfileID, n)
	}
	return d.orgs.SetViewCount(ctx, a.ProfileID, n)
}

func seekerActor(p models.SeekerProfile) Actor {
	return Actor{
		Kind:        Seeker,
		ProfileID:   p.ID,
		IdentityID:  p.IdentityID,
		Name:        p.FullName,
		Email:       p.Email,
		Headline:    p.Headline,
		Picture:     p.Picture,
		FollowerIDs: p.FollowerIDs,
		FollowedIDs: p.FollowedIDs,
		ViewCount:   p.ViewCount,
	}
}

func orgActor(p models.OrganizationProfile) Actor {
	return Actor{
		Kind:        Organization,
		ProfileID:   p.ID,
		IdentityID:  p.IdentityID,
		Name:        p.Name,
		Email:       p.Email,
		Headline:    p.Headline,
		Picture:     p.Picture,
		FollowerIDs: p.FollowerIDs,
		FollowedIDs: p.FollowedIDs,
		ViewCount:   p.ViewCount,
	}
}
