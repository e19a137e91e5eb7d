package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/models"

	"github.com/gin-gonic/gin"
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	Users  UserFinder
	Tokens *auth.TokenManager
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(c, apperr.Persistence("find user", err))
		return
	}
	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if user.Status != models.UserStatusActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is " + user.Status})
		return
	}

	token, err := h.Tokens.Generate(user.Email, user.Role, user.RegistrationNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}
