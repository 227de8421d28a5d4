// Package handlers adapts HTTP requests to the service and storage layers.
package handlers

import (
	"time"

	"agrinet/database"
	"agrinet/registration"

	"github.com/gin-gonic/gin"
)

// Collection operations run against this deadline, matching the storage
// client's behavior elsewhere in the app.
const requestTimeout = 10 * time.Second

// Handler carries the dependencies of every route. Built once in main and
// wired into the router; no package-level state.
type Handler struct {
	db    *database.DB
	users registration.UserStore
	reg   *registration.Service
}

func New(db *database.DB) *Handler {
	store := database.NewUserStore(db)
	return &Handler{
		db:    db,
		users: store,
		reg:   registration.NewService(store),
	}
}

// reject reports a failed logical outcome. These are ordinary responses,
// not HTTP errors: the caller reads the proceed flag.
func reject(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"proceed": false,
		"message": message,
	})
}
