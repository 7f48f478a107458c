package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/authorization"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store"
)

type PrescriptionService struct {
	store store.PrescriptionStore
	audit Auditor
	now   func() time.Time
}

func NewPrescriptionService(s store.PrescriptionStore, audit Auditor) *PrescriptionService {
	return &PrescriptionService{store: s, audit: audit, now: time.Now}
}

func (s *PrescriptionService) List(ctx context.Context, cred models.Credential) ([]models.PrescriptionView, error) {
	return s.store.ListPrescriptions(ctx, store.ScopeFor(cred))
}

// Create records a prescription written by the calling doctor.
func (s *PrescriptionService) Create(ctx context.Context, cred models.Credential, in models.NewPrescription) (string, error) {
	if err := authorization.Authorize(cred, role.Doctor); err != nil {
		return "", err
	}
	if blank(in.PatientID, in.Medication, in.Dosage, in.Frequency, in.Duration) {
		return "", apperrors.NewValidationError(msgRequiredFields)
	}
	patientID := strings.TrimSpace(in.PatientID)
	if err := validateID(patientID, "patient"); err != nil {
		return "", err
	}

	p := &models.Prescription{
		PatientID:    patientID,
		DoctorID:     cred.ID,
		Medication:   strings.TrimSpace(in.Medication),
		Dosage:       strings.TrimSpace(in.Dosage),
		Frequency:    strings.TrimSpace(in.Frequency),
		Duration:     strings.TrimSpace(in.Duration),
		Instructions: strings.TrimSpace(in.Instructions),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreatePrescription(ctx, p); err != nil {
		return "", err
	}

	s.audit.Record(ctx, cred.ID, models.ActionCreatePrescription,
		fmt.Sprintf("Created prescription for patient ID: %s", patientID))
	return p.ID, nil
}
