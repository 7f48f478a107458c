package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/authorization"
	"SmartCare360/logger"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store"
)

type AppointmentService struct {
	store store.AppointmentStore
	audit Auditor
	log   *logger.Logger
	now   func() time.Time
}

func NewAppointmentService(s store.AppointmentStore, audit Auditor, log *logger.Logger) *AppointmentService {
	return &AppointmentService{store: s, audit: audit, log: log, now: time.Now}
}

// List returns the caller's own appointments, or all of them for admins.
func (s *AppointmentService) List(ctx context.Context, cred models.Credential) ([]models.AppointmentView, error) {
	return s.store.ListAppointments(ctx, store.ScopeFor(cred))
}

/*
* Create books an appointment
* A patient always books for themselves, other roles must name the patient
* Overlapping bookings are accepted
 */
func (s *AppointmentService) Create(ctx context.Context, cred models.Credential, in models.NewAppointment) (string, error) {
	patientID := strings.TrimSpace(in.PatientID)
	if cred.Role == role.Patient {
		patientID = cred.ID
	}
	if blank(patientID, in.DoctorID, in.Date, in.Time) {
		return "", apperrors.NewValidationError(msgRequiredFields)
	}
	if err := validateID(patientID, "patient"); err != nil {
		return "", err
	}
	if err := validateID(strings.TrimSpace(in.DoctorID), "doctor"); err != nil {
		return "", err
	}

	method := in.BookingMethod
	if method == "" {
		method = models.BookingForm
	}
	if !method.Valid() {
		return "", apperrors.NewValidationError("Invalid booking method")
	}

	appt := &models.Appointment{
		PatientID:     patientID,
		DoctorID:      strings.TrimSpace(in.DoctorID),
		Date:          strings.TrimSpace(in.Date),
		Time:          strings.TrimSpace(in.Time),
		Status:        models.StatusScheduled,
		Notes:         in.Notes,
		BookingMethod: method,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.CreateAppointment(ctx, appt); err != nil {
		return "", err
	}

	s.audit.Record(ctx, cred.ID, models.ActionCreateAppointment,
		fmt.Sprintf("Created appointment for %s at %s", appt.Date, appt.Time))
	return appt.ID, nil
}

/*
* SetStatus moves a scheduled appointment to another status
* Completed and cancelled are final; repeating the current status is a no-op
 */
func (s *AppointmentService) SetStatus(ctx context.Context, cred models.Credential, id string, status models.AppointmentStatus) error {
	if err := authorization.Authorize(cred, role.Doctor, role.Admin); err != nil {
		return err
	}
	if !status.Valid() {
		return apperrors.NewInvalidStatusError("Invalid status")
	}
	if err := validateID(id, "appointment"); err != nil {
		return err
	}

	changed, err := s.store.TransitionAppointmentStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !changed {
		current, err := s.store.FindAppointmentByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == status {
			return nil
		}
		return apperrors.NewInvalidStatusError(fmt.Sprintf("Appointment is already %s", current.Status))
	}

	s.audit.Record(ctx, cred.ID, models.ActionUpdateAppointmentStatus,
		fmt.Sprintf("Updated appointment %s status to %s", id, status))
	return nil
}
