package services

import (
	"errors"
	"fmt"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/role"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), issuer: issuer, now: time.Now}
}

func (t *TokenIssuer) IssueToken(cred models.Credential) (string, error) {
	issuedAt := t.now()
	claims := tokenClaims{
		ID:    cred.ID,
		Email: cred.Email,
		Role:  string(cred.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.ID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

/*
* VerifyToken accepts only HS256 tokens signed with our secret that carry exp
* A token is valid strictly before its exp instant
 */
func (t *TokenIssuer) VerifyToken(raw string) (models.Credential, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)

	claims := &tokenClaims{}
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return models.Credential{}, apperrors.NewUnauthorizedError(err)
	}
	if !token.Valid {
		return models.Credential{}, apperrors.NewUnauthorizedError(errors.New("token is not valid"))
	}

	r := role.Role(claims.Role)
	if !r.Valid() || claims.ID == "" {
		return models.Credential{}, apperrors.NewUnauthorizedError(fmt.Errorf("unexpected claims for role %q", claims.Role))
	}
	return models.Credential{ID: claims.ID, Email: claims.Email, Role: r}, nil
}
