package services

import (
	"context"
	"testing"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteUser(t *testing.T) {
	st := new(storetest.MockStore)
	audit := &recordingAuditor{}
	svc := NewUserService(st, audit)

	st.On("DeleteUser", mock.Anything, patientID).Return(nil).Once()
	require.NoError(t, svc.DeleteUser(context.Background(), adminCred, patientID))
	assert.Equal(t, auditCall{adminID, models.ActionDeleteUser, "Deleted user with ID: " + patientID}, audit.calls[0])

	st.On("DeleteUser", mock.Anything, otherID).Return(apperrors.NewNotFoundError("User not found")).Once()
	err := svc.DeleteUser(context.Background(), adminCred, otherID)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	assert.Len(t, audit.calls, 1)

	err = svc.DeleteUser(context.Background(), adminCred, "42")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))

	err = svc.DeleteUser(context.Background(), doctorCred, patientID)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden))
}

func TestListPatients_OnlyForDoctors(t *testing.T) {
	st := new(storetest.MockStore)
	svc := NewUserService(st, &recordingAuditor{})
	st.On("ListPatientsOfDoctor", mock.Anything, doctorID).
		Return([]models.PatientSummary{{ID: patientID, FirstName: "John"}}, nil)

	out, err := svc.ListPatients(context.Background(), doctorCred)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = svc.ListPatients(context.Background(), adminCred)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden))
}

func TestListUsers_AdminOnly(t *testing.T) {
	st := new(storetest.MockStore)
	svc := NewUserService(st, &recordingAuditor{})
	st.On("ListUsers", mock.Anything).Return([]models.User{{ID: adminID, Role: role.Admin}}, nil)

	users, err := svc.ListUsers(context.Background(), adminCred)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.ListUsers(context.Background(), patientCred)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden))
}

func TestStats(t *testing.T) {
	st := new(storetest.MockStore)
	st.On("ListUsers", mock.Anything).Return([]models.User{
		{Role: role.Admin}, {Role: role.Doctor}, {Role: role.Doctor}, {Role: role.Patient},
	}, nil)
	view := func(s models.AppointmentStatus, m models.BookingMethod) models.AppointmentView {
		return models.AppointmentView{Appointment: models.Appointment{Status: s, BookingMethod: m}}
	}
	st.On("ListAppointments", mock.Anything, mock.Anything).Return([]models.AppointmentView{
		view(models.StatusScheduled, models.BookingChatbot),
		view(models.StatusScheduled, models.BookingForm),
		view(models.StatusCompleted, models.BookingChatbot),
		view(models.StatusCancelled, models.BookingForm),
	}, nil)

	stats, err := NewStatsService(st, st).Stats(context.Background(), adminCred)
	require.NoError(t, err)
	assert.Equal(t, models.Stats{
		TotalUsers: 4, Doctors: 2, Patients: 1, Admins: 1,
		TotalAppointments: 4, ScheduledAppointments: 2, CompletedAppointments: 1, CancelledAppointments: 1,
		ChatbotBookings: 2,
	}, *stats)

	_, err = NewStatsService(st, st).Stats(context.Background(), doctorCred)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden))
}
