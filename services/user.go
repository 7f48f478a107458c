package services

import (
	"context"
	"fmt"

	"SmartCare360/authorization"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store"
)

type UserService struct {
	users store.UserStore
	audit Auditor
}

func NewUserService(users store.UserStore, audit Auditor) *UserService {
	return &UserService{users: users, audit: audit}
}

func (s *UserService) ListUsers(ctx context.Context, cred models.Credential) ([]models.User, error) {
	if err := authorization.Authorize(cred, role.Admin); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

func (s *UserService) ListDoctors(ctx context.Context) ([]models.User, error) {
	return s.users.ListDoctors(ctx)
}

// ListPatients returns the patients that have at least one appointment with
// the calling doctor.
func (s *UserService) ListPatients(ctx context.Context, cred models.Credential) ([]models.PatientSummary, error) {
	if err := authorization.Authorize(cred, role.Doctor); err != nil {
		return nil, err
	}
	return s.users.ListPatientsOfDoctor(ctx, cred.ID)
}

/*
* DeleteUser removes the account only
* Appointments and prescriptions that name it stay listable
 */
func (s *UserService) DeleteUser(ctx context.Context, cred models.Credential, id string) error {
	if err := authorization.Authorize(cred, role.Admin); err != nil {
		return err
	}
	if err := validateID(id, "user"); err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, cred.ID, models.ActionDeleteUser, fmt.Sprintf("Deleted user with ID: %s", id))
	return nil
}
