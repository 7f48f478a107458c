// Package authorization decides whether a verified identity may perform an
// operation, and carries that identity through gin requests.
package authorization

import (
	"strings"

	"SmartCare360/apperrors"
	"SmartCare360/logger"
	"SmartCare360/models"
	"SmartCare360/role"

	"github.com/gin-gonic/gin"
)

const (
	credentialKey = "credential"
	// CookieName is the http-only cookie the login response sets.
	CookieName = "token"
)

// Authorize permits cred when its role is one of roles. No roles means any
// authenticated identity.
func Authorize(cred models.Credential, roles ...role.Role) error {
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if cred.Role == r {
			return nil
		}
	}
	return apperrors.NewForbiddenError()
}

type TokenVerifier interface {
	VerifyToken(raw string) (models.Credential, error)
}

// tokenFrom prefers the bearer header and falls back to the cookie.
func tokenFrom(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": apperrors.Message(err)})
}

/*
* JWTAuth rejects the request unless it carries a valid token
* The verified credential is stored on the context for the handlers
 */
func JWTAuth(verifier TokenVerifier, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFrom(c)
		if raw == "" {
			abort(c, apperrors.NewUnauthorizedError(nil))
			return
		}
		cred, err := verifier.VerifyToken(raw)
		if err != nil {
			log.Security("invalid_token", map[string]interface{}{
				"path":      c.FullPath(),
				"client_ip": c.ClientIP(),
			})
			abort(c, err)
			return
		}
		c.Set(credentialKey, cred)
		c.Next()
	}
}

// OptionalAuth stores the credential when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := tokenFrom(c); raw != "" {
			if cred, err := verifier.VerifyToken(raw); err == nil {
				c.Set(credentialKey, cred)
			}
		}
		c.Next()
	}
}

// RequireRoles must run after JWTAuth.
func RequireRoles(roles ...role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		cred, ok := CredentialFrom(c)
		if !ok {
			abort(c, apperrors.NewUnauthorizedError(nil))
			return
		}
		if err := Authorize(cred, roles...); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

func CredentialFrom(c *gin.Context) (models.Credential, bool) {
	v, ok := c.Get(credentialKey)
	if !ok {
		return models.Credential{}, false
	}
	cred, ok := v.(models.Credential)
	return cred, ok
}

// SetCredential is used by handler tests that bypass token verification.
func SetCredential(c *gin.Context, cred models.Credential) {
	c.Set(credentialKey, cred)
}

