package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Like marks that a user liked a post. A unique compound index on
// (user_id, post_id) keeps it to at most one per pair.
type Like struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	PostID    primitive.ObjectID `bson:"post_id" json:"post_id"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
}
