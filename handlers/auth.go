package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"agrinet/registration"
	"agrinet/validation"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Name     string `form:"name" json:"name"`
	UserName string `form:"userName" json:"userName"`
	Bio      string `form:"bio" json:"bio"`
}

type loginRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Register handles signup. Rejections (bad email, weak password, duplicate
// address) come back as HTTP 200 with proceed:false; only storage faults
// produce a 500.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		reject(c, http.StatusBadRequest, "INVALID REQUEST BODY")
		return
	}

	// The profile image rides along as an optional multipart file.
	var image []byte
	if file, err := c.FormFile("profile_img"); err == nil {
		f, err := file.Open()
		if err != nil {
			reject(c, http.StatusInternalServerError, "ERROR SIGNING UP")
			return
		}
		image, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			reject(c, http.StatusInternalServerError, "ERROR SIGNING UP")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	user, err := h.reg.Register(ctx, registration.Input{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		UserName:     req.UserName,
		Bio:          req.Bio,
		ProfileImage: image,
	})

	var pwErr *validation.PasswordError
	switch {
	case err == nil:
	case errors.Is(err, registration.ErrInvalidEmail):
		reject(c, http.StatusOK, "INVALID EMAIL ADDRESS")
		return
	case errors.As(err, &pwErr):
		reject(c, http.StatusOK, "INVALID PASSWORD: "+pwErr.Requirements())
		return
	case errors.Is(err, registration.ErrEmailInUse):
		reject(c, http.StatusOK, "EMAIL ALREADY IN USE")
		return
	default:
		log.Printf("Register error: %v", err)
		reject(c, http.StatusInternalServerError, "ERROR SIGNING UP")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proceed": true,
		"message": "USER CREATED SUCCESSFULLY",
		"data": gin.H{
			"UserID":         user.ID.Hex(),
			"Name":           user.Name,
			"Email":          user.Email,
			"HashedPassword": user.HashedPassword,
			"UserName":       user.UserName,
			"profile_img":    user.ProfileImg,
			"bio":            user.Bio,
		},
	})
}

// Login verifies an email/password pair. No token is issued; the response
// carries the user payload for the client to proceed with.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		reject(c, http.StatusBadRequest, "EMAIL AND PASSWORD ARE REQUIRED")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("Login error: %v", err)
		reject(c, http.StatusInternalServerError, "ERROR LOGGING IN")
		return
	}
	if user == nil {
		reject(c, http.StatusOK, "INVALID EMAIL OR PASSWORD")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		reject(c, http.StatusOK, "INVALID EMAIL OR PASSWORD")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proceed": true,
		"message": "LOGIN SUCCESSFUL",
		"data": gin.H{
			"UserID":   user.ID.Hex(),
			"Name":     user.Name,
			"Email":    user.Email,
			"UserName": user.UserName,
			"bio":      user.Bio,
		},
	})
}
