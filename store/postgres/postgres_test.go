package postgres

import (
	"context"
	"testing"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/logger"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, logger.Discard()), mock
}

var appointmentViewColumns = []string{
	"id", "patient_id", "doctor_id", "appointment_date", "appointment_time", "status",
	"notes", "booking_method", "created_at", "patient_first_name", "patient_last_name",
	"doctor_first_name", "doctor_last_name", "specialization",
}

func TestCreateUser_AssignsID(t *testing.T) {
	s, mock := setupTestStore(t)
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{Email: "a@b.com", Password: "hash", Role: role.Patient, FirstName: "A", LastName: "B"}
	require.NoError(t, s.CreateUser(context.Background(), u))
	assert.NotEmpty(t, u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s, mock := setupTestStore(t)
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(&pq.Error{Code: "23505"})

	err := s.CreateUser(context.Background(), &models.User{Email: "a@b.com", Role: role.Patient})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConflict))
	assert.Equal(t, "Email already exists", apperrors.Message(err))
}

func TestFindUserByEmailAndRole_NotFound(t *testing.T) {
	s, mock := setupTestStore(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WithArgs("a@b.com", "doctor").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.FindUserByEmailAndRole(context.Background(), "a@b.com", role.Doctor)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByID(t *testing.T) {
	s, mock := setupTestStore(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "email", "password", "role", "first_name", "last_name",
		"phone", "specialization", "license_number", "created_at", "updated_at",
	}).AddRow("u1", "d@x.com", "hash", "doctor", "Sarah", "Johnson", nil, "General Medicine", "MD12345", now, now)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).WithArgs("u1").WillReturnRows(rows)

	u, err := s.FindUserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, role.Doctor, u.Role)
	assert.Equal(t, "", u.Phone)
	assert.Equal(t, "General Medicine", u.Specialization)
}

func TestDeleteUser_Missing(t *testing.T) {
	s, mock := setupTestStore(t)
	mock.ExpectExec(`DELETE FROM "users"`).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteUser(context.Background(), "u1")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}

func TestListAppointments_DoctorScopeKeepsOrphans(t *testing.T) {
	s, mock := setupTestStore(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows(appointmentViewColumns).
		AddRow("a1", "p-gone", "d1", "2030-01-01", "09:00", "scheduled", nil, "chatbot", now,
			nil, nil, "Sarah", "Johnson", "General Medicine")
	mock.ExpectQuery(`SELECT (.+) FROM "appointments" AS "a" LEFT JOIN (.+) WHERE \("a"."doctor_id" = \$1\)`).
		WithArgs("d1").
		WillReturnRows(rows)

	out, err := s.ListAppointments(context.Background(), store.Scope{Kind: store.ScopeDoctor, UserID: "d1"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0].PatientFirstName)
	assert.Equal(t, "Sarah", out[0].DoctorFirstName)
	assert.Equal(t, models.BookingChatbot, out[0].BookingMethod)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppointments_EmptyIsNotNil(t *testing.T) {
	s, mock := setupTestStore(t)
	mock.ExpectQuery(`SELECT (.+) FROM "appointments"`).WillReturnRows(sqlmock.NewRows(appointmentViewColumns))

	out, err := s.ListAppointments(context.Background(), store.Scope{Kind: store.ScopeAll})
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListAppointments_UnknownScope(t *testing.T) {
	s, _ := setupTestStore(t)
	_, err := s.ListAppointments(context.Background(), store.Scope{Kind: store.ScopeKind(42)})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInternal))
}

func TestTransitionAppointmentStatus(t *testing.T) {
	s, mock := setupTestStore(t)
	mock.ExpectExec(`UPDATE "appointments" SET "status"=\$1 WHERE`).
		WithArgs("cancelled", "a1", "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "appointments"`).
		WithArgs("completed", "a1", "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := s.TransitionAppointmentStatus(context.Background(), "a1", models.StatusCancelled)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = s.TransitionAppointmentStatus(context.Background(), "a1", models.StatusCompleted)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPrescriptions_PatientScope(t *testing.T) {
	s, mock := setupTestStore(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "patient_id", "doctor_id", "medication", "dosage", "frequency", "duration",
		"instructions", "created_at", "patient_first_name", "patient_last_name",
		"doctor_first_name", "doctor_last_name", "specialization",
	}).AddRow("rx1", "p1", "d-gone", "Amoxicillin", "500mg", "3x daily", "7 days", "With food", now,
		"John", "Doe", nil, nil, nil)
	mock.ExpectQuery(`SELECT (.+) FROM "prescriptions" AS "rx" (.+) WHERE \("rx"."patient_id" = \$1\)`).
		WithArgs("p1").
		WillReturnRows(rows)

	out, err := s.ListPrescriptions(context.Background(), store.Scope{Kind: store.ScopePatient, UserID: "p1"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "John", out[0].PatientFirstName)
	assert.Equal(t, "", out[0].DoctorLastName)
}

func TestAppendAudit_Anonymous(t *testing.T) {
	s, mock := setupTestStore(t)
	mock.ExpectExec(`INSERT INTO "system_logs" \("action", "created_at", "details", "id", "ip_address"\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	entry := &models.AuditLogEntry{Action: models.ActionCreateUser, Details: "Created patient user", CreatedAt: time.Now()}
	require.NoError(t, s.AppendAudit(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
