package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered member. Created by the registration service and never
// mutated afterwards. The JSON keys mirror the registration response payload.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"UserID"`
	Name           string             `bson:"name" json:"Name"`
	Email          string             `bson:"email" json:"Email"`
	HashedPassword string             `bson:"hashedPassword" json:"HashedPassword"`
	UserName       string             `bson:"userName" json:"UserName"`
	ProfileImg     []byte             `bson:"profile_img,omitempty" json:"profile_img"`
	Bio            string             `bson:"bio" json:"bio"`
	CreatedAt      int64              `bson:"createdAt" json:"createdAt"`
}
