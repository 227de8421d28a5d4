package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"agrinet/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type followRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	FolloweeID   string `json:"followee_id" binding:"required"`
	FolloweeKind string `json:"followeeModel" binding:"required"`
}

func (h *Handler) parseFollowRequest(c *gin.Context) (primitive.ObjectID, models.Followee, bool) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id, followee_id and followeeModel are required"})
		return primitive.NilObjectID, models.Followee{}, false
	}

	follower, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, models.Followee{}, false
	}
	target, err := primitive.ObjectIDFromHex(req.FolloweeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid followee ID"})
		return primitive.NilObjectID, models.Followee{}, false
	}
	kind, err := models.ParseFolloweeKind(req.FolloweeKind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return primitive.NilObjectID, models.Followee{}, false
	}

	var followee models.Followee
	switch kind {
	case models.FolloweeUsers:
		followee = models.UserFollowee(target)
	case models.FolloweeCommunities:
		followee = models.CommunityFollowee(target)
	}
	return follower, followee, true
}

// Follow creates a following edge. The followee must resolve in the
// collection named by its discriminator.
func (h *Handler) Follow(c *gin.Context) {
	follower, followee, ok := h.parseFollowRequest(c)
	if !ok {
		return
	}
	if follower == followee.ID && followee.Kind == models.FolloweeUsers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := h.requireExists(ctx, h.db.Users, follower, c, "User"); err != nil {
		return
	}
	targetColl := h.db.Users
	label := "User"
	if followee.Kind == models.FolloweeCommunities {
		targetColl = h.db.Communities
		label = "Community"
	}
	if err := h.requireExists(ctx, targetColl, followee.ID, c, label); err != nil {
		return
	}

	following := models.Following{
		ID:         primitive.NewObjectID(),
		FollowerID: follower,
		Followee:   followee,
		CreatedAt:  time.Now().Unix(),
	}

	if _, err := h.db.Followings.InsertOne(ctx, following); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already following"})
			return
		}
		log.Printf("Follow error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Now following"})
}

func (h *Handler) Unfollow(c *gin.Context) {
	follower, followee, ok := h.parseFollowRequest(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := h.db.Followings.DeleteOne(ctx, bson.M{
		"follower_id":   follower,
		"followeeModel": followee.Kind,
		"followee_id":   followee.ID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not following"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// GetFollowing lists everything a user follows, resolving display names per
// followee kind.
func (h *Handler) GetFollowing(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	cursor, err := h.db.Followings.Find(ctx, bson.M{"follower_id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
		return
	}
	defer cursor.Close(ctx)

	var followings []models.Following
	if err := cursor.All(ctx, &followings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode following"})
		return
	}

	if len(followings) == 0 {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	var userIDs, communityIDs []primitive.ObjectID
	for _, f := range followings {
		switch f.Kind {
		case models.FolloweeUsers:
			userIDs = append(userIDs, f.Followee.ID)
		case models.FolloweeCommunities:
			communityIDs = append(communityIDs, f.Followee.ID)
		}
	}

	names := make(map[primitive.ObjectID]string)
	if len(userIDs) > 0 {
		userCursor, err := h.db.Users.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err == nil {
			var users []models.User
			if err := userCursor.All(ctx, &users); err == nil {
				for _, u := range users {
					names[u.ID] = u.UserName
				}
			}
		}
	}
	if len(communityIDs) > 0 {
		commCursor, err := h.db.Communities.Find(ctx, bson.M{"_id": bson.M{"$in": communityIDs}})
		if err == nil {
			var communities []models.Community
			if err := commCursor.All(ctx, &communities); err == nil {
				for _, cm := range communities {
					names[cm.ID] = cm.Name
				}
			}
		}
	}

	response := make([]gin.H, 0, len(followings))
	for _, f := range followings {
		entry := gin.H{
			"followee_id":   f.Followee.ID.Hex(),
			"followeeModel": f.Kind,
			"createdAt":     f.CreatedAt,
		}
		if name, ok := names[f.Followee.ID]; ok {
			entry["name"] = name
		}
		response = append(response, entry)
	}

	c.JSON(http.StatusOK, response)
}

// GetFollowers lists the users following the given user.
func (h *Handler) GetFollowers(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	cursor, err := h.db.Followings.Find(ctx, bson.M{
		"followeeModel": models.FolloweeUsers,
		"followee_id":   userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}
	defer cursor.Close(ctx)

	var followings []models.Following
	if err := cursor.All(ctx, &followings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode followers"})
		return
	}

	response := make([]gin.H, 0, len(followings))
	for _, f := range followings {
		response = append(response, gin.H{
			"follower_id": f.FollowerID.Hex(),
			"createdAt":   f.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
