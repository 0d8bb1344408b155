package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	usershttpmapper "github.com/brewlabs/coffee-store-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
)

// UserAPI wires HTTP transport with the users bounded context service.
type UserAPI struct {
	service usersports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service usersports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /v1/auth/register
// Creates a new account
func (api *UserAPI) Register(c *gin.Context) {
	var payload usershttpmapper.RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input, err := usershttpmapper.ToRegisterInput(payload)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), input)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usershttpmapper.FromDomainUser(user))
}

// Post /v1/auth/login
// Exchanges credentials for an access/refresh token pair
func (api *UserAPI) Login(c *gin.Context) {
	var payload usershttpmapper.LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, pair, err := api.service.Login(c.Request.Context(), usersports.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usershttpmapper.LoginResponse{
		User:   usershttpmapper.FromDomainUser(user),
		Tokens: usershttpmapper.FromTokenPair(pair),
	})
}

// Post /v1/auth/refresh
// Rotates a refresh token into a fresh token pair
func (api *UserAPI) Refresh(c *gin.Context) {
	var payload usershttpmapper.RefreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	pair, err := api.service.Refresh(c.Request.Context(), payload.RefreshToken)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usershttpmapper.FromTokenPair(pair))
}

// Post /v1/auth/logout
// Revokes one refresh token
func (api *UserAPI) Logout(c *gin.Context) {
	var payload usershttpmapper.RefreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.RevokeToken(c.Request.Context(), payload.RefreshToken); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/auth/logout-all
// Revokes every refresh token of the authenticated user
func (api *UserAPI) LogoutAll(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	if err := api.service.RevokeAllUserTokens(c.Request.Context(), claims.UserID); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/users/me
// Returns the authenticated account
func (api *UserAPI) Me(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	user, err := api.service.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usershttpmapper.FromDomainUser(user))
}
