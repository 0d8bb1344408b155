package mapper

import (
	"time"

	"github.com/google/uuid"

	usersdomain "github.com/brewlabs/coffee-store-api/internal/domains/users/domain"
	usersports "github.com/brewlabs/coffee-store-api/internal/domains/users/ports"
)

// RegisterPayload is the transport shape of a registration request.
type RegisterPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// LoginPayload is the transport shape of a login request.
type LoginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshPayload carries an opaque refresh token.
type RefreshPayload struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// User is the transport representation of an account. The password hash never
// leaves the service.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenPair is the transport representation of issued tokens.
type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// LoginResponse pairs the account with its tokens.
type LoginResponse struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// ToRegisterInput converts the payload. An absent role defaults to customer.
func ToRegisterInput(payload RegisterPayload) (usersports.RegisterInput, error) {
	role := usersdomain.RoleCustomer
	if payload.Role != "" {
		parsed, err := usersdomain.ParseRole(payload.Role)
		if err != nil {
			return usersports.RegisterInput{}, err
		}
		role = parsed
	}
	return usersports.RegisterInput{
		Email:    payload.Email,
		Password: payload.Password,
		FullName: payload.FullName,
		Role:     role,
	}, nil
}

// FromDomainUser converts a domain user to transport.
func FromDomainUser(user *usersdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// FromTokenPair converts the service token pair to transport.
func FromTokenPair(pair *usersports.TokenPair) TokenPair {
	if pair == nil {
		return TokenPair{}
	}
	return TokenPair{
		AccessToken:           pair.AccessToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
	}
}
