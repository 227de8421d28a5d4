package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Community struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"community_name" json:"community_name"`
	Description string             `bson:"description" json:"description"`
	Image       []byte             `bson:"community_image,omitempty" json:"community_image,omitempty"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
}

// Membership joins a user to a community. One document per (user, community)
// pair, enforced by a unique compound index.
type Membership struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	CommunityID primitive.ObjectID `bson:"community_id" json:"community_id"`
	CreatedAt   int64              `bson:"createdAt" json:"createdAt"`
}
