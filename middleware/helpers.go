package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sitevoice/backend/config"
	"github.com/sitevoice/backend/models"
)

// GetClaims returns the JWT claims stashed by JWTMiddleware, or nil.
func GetClaims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(userClaimsKey).(*Claims)
	return claims
}

// GetRole returns the role from the request's claims.
func GetRole(r *http.Request) string {
	if claims := GetClaims(r); claims != nil {
		return claims.Role
	}
	return ""
}

// GetUserID parses the claims' user id. Returns uuid.Nil when unauthenticated
// or malformed.
func GetUserID(r *http.Request) uuid.UUID {
	claims := GetClaims(r)
	if claims == nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetCompanyID parses the claims' company id.
func GetCompanyID(r *http.Request) uuid.UUID {
	claims := GetClaims(r)
	if claims == nil || claims.CompanyID == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetUser loads the full user record for the authenticated request.
func GetUser(r *http.Request) *models.User {
	userID := GetUserID(r)
	if userID == uuid.Nil {
		return nil
	}
	var user models.User
	if err := config.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil
	}
	return &user
}
