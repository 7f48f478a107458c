package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/logger"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store"

	"golang.org/x/crypto/bcrypt"
)

type AuthConfig struct {
	BcryptCost       int
	SelfRegistration bool
}

type AuthService struct {
	users     store.UserStore
	tokens    *TokenIssuer
	audit     Auditor
	cfg       AuthConfig
	dummyHash []byte
	log       *logger.Logger
	now       func() time.Time
}

func NewAuthService(users store.UserStore, tokens *TokenIssuer, audit Auditor, cfg AuthConfig, log *logger.Logger) (*AuthService, error) {
	// Compared against when no account matches, so every failure costs one bcrypt run.
	dummy, err := bcrypt.GenerateFromPassword([]byte("smartcare-dummy-password"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hashing: %w", err)
	}
	return &AuthService{
		users:     users,
		tokens:    tokens,
		audit:     audit,
		cfg:       cfg,
		dummyHash: dummy,
		log:       log,
		now:       time.Now,
	}, nil
}

/*
* Authenticate looks the account up by email and role together
* Unknown email, other role and wrong password all fail the same way
 */
func (s *AuthService) Authenticate(ctx context.Context, email, password, rawRole string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || strings.TrimSpace(rawRole) == "" {
		return nil, apperrors.NewValidationError("Email, password, and role are required")
	}

	r, err := role.Parse(rawRole)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, apperrors.NewInvalidCredentialsError()
	}

	user, err := s.users.FindUserByEmailAndRole(ctx, email, r)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, apperrors.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Security("login_failed", map[string]interface{}{"role": string(r)})
		return nil, apperrors.NewInvalidCredentialsError()
	}

	s.audit.Record(ctx, user.ID, models.ActionLogin, fmt.Sprintf("User logged in as %s", r))
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in models.Login) (*models.LoginResult, error) {
	user, err := s.Authenticate(ctx, in.Email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.IssueToken(user.Credential())
	if err != nil {
		return nil, err
	}
	return &models.LoginResult{User: user, Token: token}, nil
}

func (s *AuthService) VerifyToken(raw string) (models.Credential, error) {
	return s.tokens.VerifyToken(raw)
}

// Profile returns the caller's account. A token whose user is gone is
// treated as unauthenticated.
func (s *AuthService) Profile(ctx context.Context, cred models.Credential) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, cred.ID)
	if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewUnauthorizedError(err)
	}
	return user, err
}

/*
* Register creates an account
* Admins may create any role; without a caller only patients, and only when self registration is on
 */
func (s *AuthService) Register(ctx context.Context, caller *models.Credential, in models.Registration) (string, error) {
	if caller == nil {
		if !s.cfg.SelfRegistration {
			return "", apperrors.NewUnauthorizedError(nil)
		}
	} else if caller.Role != role.Admin {
		return "", apperrors.NewForbiddenError()
	}

	if blank(in.Email, in.Password, in.Role, in.FirstName, in.LastName) {
		return "", apperrors.NewValidationError(msgRequiredFields)
	}
	r, err := role.Parse(in.Role)
	if err != nil {
		return "", apperrors.NewValidationError("Invalid role")
	}
	if caller == nil && r != role.Patient {
		return "", apperrors.NewForbiddenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	now := s.now().UTC()
	user := &models.User{
		Email:     strings.TrimSpace(in.Email),
		Password:  string(hash),
		Role:      r,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if r == role.Doctor {
		user.Specialization = strings.TrimSpace(in.Specialization)
		user.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	actor := user.ID
	if caller != nil {
		actor = caller.ID
	}
	s.audit.Record(ctx, actor, models.ActionCreateUser, fmt.Sprintf("Created %s user: %s", r, user.Email))
	s.log.WithComponent("auth").WithField("role", string(r)).Info("User registered")
	return user.ID, nil
}
