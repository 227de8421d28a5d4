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

type createCommunityRequest struct {
	Name        string `json:"community_name" binding:"required"`
	Description string `json:"description"`
	Image       []byte `json:"community_image"`
}

func (h *Handler) CreateCommunity(c *gin.Context) {
	var req createCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "community_name is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	community := models.Community{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		CreatedAt:   time.Now().Unix(),
	}

	if _, err := h.db.Communities.InsertOne(ctx, community); err != nil {
		log.Printf("CreateCommunity error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create community"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Community created",
		"communityId": community.ID.Hex(),
	})
}

func (h *Handler) GetCommunity(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var community models.Community
	err = h.db.Communities.FindOne(ctx, bson.M{"_id": id}).Decode(&community)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, community)
}

func (h *Handler) ListCommunities(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	cursor, err := h.db.Communities.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch communities"})
		return
	}
	defer cursor.Close(ctx)

	var communities []models.Community
	if err := cursor.All(ctx, &communities); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode communities"})
		return
	}
	if communities == nil {
		communities = []models.Community{}
	}

	c.JSON(http.StatusOK, communities)
}

type membershipRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *Handler) JoinCommunity(c *gin.Context) {
	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID"})
		return
	}

	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	// The referenced documents must exist before the link is written.
	if err := h.requireExists(ctx, h.db.Users, userID, c, "User"); err != nil {
		return
	}
	if err := h.requireExists(ctx, h.db.Communities, communityID, c, "Community"); err != nil {
		return
	}

	membership := models.Membership{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		CommunityID: communityID,
		CreatedAt:   time.Now().Unix(),
	}

	if _, err := h.db.Memberships.InsertOne(ctx, membership); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Already a member"})
			return
		}
		log.Printf("JoinCommunity error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join community"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Joined community"})
}

func (h *Handler) LeaveCommunity(c *gin.Context) {
	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID"})
		return
	}

	// user_id may arrive as a query parameter or in the body.
	userIDStr := c.Query("user_id")
	if userIDStr == "" {
		var req membershipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		userIDStr = req.UserID
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := h.db.Memberships.DeleteOne(ctx, bson.M{
		"user_id":      userID,
		"community_id": communityID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave community"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Membership not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left community"})
}

func (h *Handler) GetCommunityMembers(c *gin.Context) {
	communityID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	cursor, err := h.db.Memberships.Find(ctx, bson.M{"community_id": communityID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch memberships"})
		return
	}
	defer cursor.Close(ctx)

	var memberships []models.Membership
	if err := cursor.All(ctx, &memberships); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode memberships"})
		return
	}

	if len(memberships) == 0 {
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	var userIDs []primitive.ObjectID
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}

	userCursor, err := h.db.Users.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer userCursor.Close(ctx)

	var users []models.User
	if err := userCursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	userMap := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	response := make([]gin.H, 0, len(memberships))
	for _, m := range memberships {
		member := gin.H{
			"user_id":  m.UserID.Hex(),
			"joinedAt": m.CreatedAt,
		}
		if u, ok := userMap[m.UserID]; ok {
			member["name"] = u.Name
			member["userName"] = u.UserName
		}
		response = append(response, member)
	}

	c.JSON(http.StatusOK, response)
}

// requireExists checks that id resolves in coll, writing the error response
// itself when it does not.
func (h *Handler) requireExists(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, c *gin.Context, label string) error {
	count, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return err
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": label + " not found"})
		return mongo.ErrNoDocuments
	}
	return nil
}
