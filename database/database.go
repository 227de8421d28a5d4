package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB bundles the client and the collection handles the handlers work
// against. Built once at startup and passed down explicitly.
type DB struct {
	Client      *mongo.Client
	Users       *mongo.Collection
	Communities *mongo.Collection
	Memberships *mongo.Collection
	Followings  *mongo.Collection
	Comments    *mongo.Collection
	Likes       *mongo.Collection
	Posts       *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	return &DB{
		Client:      client,
		Users:       db.Collection("users"),
		Communities: db.Collection("communities"),
		Memberships: db.Collection("memberships"),
		Followings:  db.Collection("followings"),
		Comments:    db.Collection("comments"),
		Likes:       db.Collection("likes"),
		Posts:       db.Collection("posts"),
	}, nil
}

// EnsureIndexes creates the store-level invariants: unique email per user,
// and one document per link-entity pair for likes, memberships, and follows.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	specs := []struct {
		coll *mongo.Collection
		idx  mongo.IndexModel
	}{
		{db.Users, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{db.Likes, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "post_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{db.Memberships, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "community_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{db.Followings, mongo.IndexModel{
			Keys: bson.D{
				{Key: "follower_id", Value: 1},
				{Key: "followeeModel", Value: 1},
				{Key: "followee_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		}},
		{db.Comments, mongo.IndexModel{
			Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "timestamp", Value: 1}},
		}},
	}

	for _, s := range specs {
		if _, err := s.coll.Indexes().CreateOne(ctx, s.idx); err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) Disconnect(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}
