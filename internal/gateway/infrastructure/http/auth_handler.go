package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/viyasan/FlowPoints/internal/auth/domain"
	"github.com/viyasan/FlowPoints/internal/gateway/domain"
)

type loginRequestBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	service domain.AuthService
}

func NewAuthHandler(service domain.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequestBody

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid request body"})
		return
	}

	profile, token, err := h.service.Authenticate(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, &authdomain.CredentialsMismatchError{}) {
			c.JSON(http.StatusUnauthorized, gin.H{"errors": "invalid credentials"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":      profile.Username,
		"loyaltyPoints": profile.PointsBalance,
		"token":         token,
	})
}
