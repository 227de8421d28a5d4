package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FolloweeKind names the collection a followee reference resolves in.
type FolloweeKind string

const (
	FolloweeUsers       FolloweeKind = "users"
	FolloweeCommunities FolloweeKind = "communities"
)

func (k FolloweeKind) Valid() bool {
	return k == FolloweeUsers || k == FolloweeCommunities
}

// ParseFolloweeKind maps a wire value to a kind. Only the two collection
// names are accepted.
func ParseFolloweeKind(s string) (FolloweeKind, error) {
	k := FolloweeKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown followee kind %q", s)
	}
	return k, nil
}

// Followee is a polymorphic reference: a target id plus the discriminator
// naming the collection it lives in. Build one through UserFollowee or
// CommunityFollowee so the (kind, id) pair is always consistent.
type Followee struct {
	Kind FolloweeKind       `bson:"followeeModel" json:"followeeModel"`
	ID   primitive.ObjectID `bson:"followee_id" json:"followee_id"`
}

func UserFollowee(id primitive.ObjectID) Followee {
	return Followee{Kind: FolloweeUsers, ID: id}
}

func CommunityFollowee(id primitive.ObjectID) Followee {
	return Followee{Kind: FolloweeCommunities, ID: id}
}

func (f Followee) Validate() error {
	if !f.Kind.Valid() {
		return fmt.Errorf("unknown followee kind %q", f.Kind)
	}
	if f.ID.IsZero() {
		return fmt.Errorf("followee id is required")
	}
	return nil
}

// Following records that a user follows either another user or a community.
type Following struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FollowerID primitive.ObjectID `bson:"follower_id" json:"follower_id"`
	Followee   `bson:",inline"`
	CreatedAt  int64 `bson:"createdAt" json:"createdAt"`
}
