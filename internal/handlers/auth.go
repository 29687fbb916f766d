package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ownessay/ownessay-backend/internal/requestdata"
	"github.com/ownessay/ownessay-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func currentUser(c *gin.Context) (*requestdata.RequestData, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusUnauthorized, ErrorEnvelope{Error: APIError{Message: "not authenticated"}})
		return nil, false
	}
	return rd, true
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req.Email, req.Nickname, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	tokens, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, tokens)
}

// Logout only acknowledges the request; dropping the token is the
// client's responsibility.
func (ah *AuthHandler) Logout(c *gin.Context) {
	RespondOK(c, gin.H{"message": "logged out"})
}

func (ah *AuthHandler) GetProfile(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := ah.authService.GetProfile(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": profile})
}

func (ah *AuthHandler) UpdateProfile(c *gin.Context) {
	rd, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Nickname *string `json:"nickname"`
		Timezone *string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "invalid request body")
		return
	}
	profile, err := ah.authService.UpdateProfile(c.Request.Context(), rd.UserID, req.Nickname, req.Timezone)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"user": profile})
}
