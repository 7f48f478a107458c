package services

import (
	"context"
	"testing"

	"SmartCare360/apperrors"
	"SmartCare360/logger"
	"SmartCare360/models"
	"SmartCare360/store"
	"SmartCare360/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAppointmentService() (*AppointmentService, *storetest.MockStore, *recordingAuditor) {
	st := new(storetest.MockStore)
	audit := &recordingAuditor{}
	return NewAppointmentService(st, audit, logger.Discard()), st, audit
}

func TestAppointmentList_ScopedByRole(t *testing.T) {
	svc, st, _ := newAppointmentService()
	st.On("ListAppointments", mock.Anything, store.Scope{Kind: store.ScopeDoctor, UserID: doctorID}).Return([]models.AppointmentView{}, nil)
	st.On("ListAppointments", mock.Anything, store.Scope{Kind: store.ScopePatient, UserID: patientID}).Return([]models.AppointmentView{}, nil)
	st.On("ListAppointments", mock.Anything, store.Scope{Kind: store.ScopeAll}).Return([]models.AppointmentView{}, nil)

	for _, cred := range []models.Credential{doctorCred, patientCred, adminCred} {
		_, err := svc.List(context.Background(), cred)
		require.NoError(t, err)
	}
	st.AssertExpectations(t)
}

func TestAppointmentCreate_PatientBooksForSelf(t *testing.T) {
	svc, st, audit := newAppointmentService()
	st.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
		return a.PatientID == patientID && a.DoctorID == doctorID &&
			a.Status == models.StatusScheduled && a.BookingMethod == models.BookingForm
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Appointment).ID = "appt-1"
	}).Return(nil)

	id, err := svc.Create(context.Background(), patientCred, models.NewAppointment{
		PatientID: otherID, DoctorID: doctorID, Date: "2030-01-01", Time: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "appt-1", id)
	require.Len(t, audit.calls, 1)
	assert.Equal(t, auditCall{patientID, models.ActionCreateAppointment, "Created appointment for 2030-01-01 at 09:00"}, audit.calls[0])
}

func TestAppointmentCreate_Validation(t *testing.T) {
	svc, st, audit := newAppointmentService()
	cases := map[string]struct {
		cred models.Credential
		in   models.NewAppointment
	}{
		"missing doctor":         {patientCred, models.NewAppointment{Date: "2030-01-01", Time: "09:00"}},
		"missing date":           {patientCred, models.NewAppointment{DoctorID: doctorID, Time: "09:00"}},
		"missing time":           {patientCred, models.NewAppointment{DoctorID: doctorID, Date: "2030-01-01"}},
		"admin without patient":  {adminCred, models.NewAppointment{DoctorID: doctorID, Date: "2030-01-01", Time: "09:00"}},
		"doctor id not an id":    {patientCred, models.NewAppointment{DoctorID: "7", Date: "2030-01-01", Time: "09:00"}},
		"unknown booking method": {patientCred, models.NewAppointment{DoctorID: doctorID, Date: "2030-01-01", Time: "09:00", BookingMethod: "phone"}},
	}
	for name, tc := range cases {
		_, err := svc.Create(context.Background(), tc.cred, tc.in)
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation), name)
	}
	st.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
	assert.Empty(t, audit.calls)
}

func TestAppointmentCreate_AdminBooksForPatient(t *testing.T) {
	svc, st, _ := newAppointmentService()
	st.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
		return a.PatientID == patientID && a.BookingMethod == models.BookingChatbot
	})).Return(nil)

	_, err := svc.Create(context.Background(), adminCred, models.NewAppointment{
		PatientID: patientID, DoctorID: doctorID, Date: "2030-01-01", Time: "09:00", BookingMethod: models.BookingChatbot,
	})
	require.NoError(t, err)
	st.AssertExpectations(t)
}

func TestAppointmentSetStatus(t *testing.T) {
	const apptID = "00000000-0000-4000-8000-0000000000aa"

	t.Run("scheduled to completed", func(t *testing.T) {
		svc, st, audit := newAppointmentService()
		st.On("TransitionAppointmentStatus", mock.Anything, apptID, models.StatusCompleted).Return(true, nil)
		require.NoError(t, svc.SetStatus(context.Background(), doctorCred, apptID, models.StatusCompleted))
		assert.Equal(t, []string{models.ActionUpdateAppointmentStatus}, audit.actions())
	})

	t.Run("terminal status is final", func(t *testing.T) {
		svc, st, audit := newAppointmentService()
		st.On("TransitionAppointmentStatus", mock.Anything, apptID, models.StatusScheduled).Return(false, nil)
		st.On("FindAppointmentByID", mock.Anything, apptID).Return(&models.Appointment{ID: apptID, Status: models.StatusCancelled}, nil)

		err := svc.SetStatus(context.Background(), adminCred, apptID, models.StatusScheduled)
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInvalidStatus))
		assert.Empty(t, audit.calls)
	})

	t.Run("same terminal status is a no-op", func(t *testing.T) {
		svc, st, audit := newAppointmentService()
		st.On("TransitionAppointmentStatus", mock.Anything, apptID, models.StatusCancelled).Return(false, nil)
		st.On("FindAppointmentByID", mock.Anything, apptID).Return(&models.Appointment{ID: apptID, Status: models.StatusCancelled}, nil)

		assert.NoError(t, svc.SetStatus(context.Background(), adminCred, apptID, models.StatusCancelled))
		assert.Empty(t, audit.calls)
	})

	t.Run("missing appointment", func(t *testing.T) {
		svc, st, _ := newAppointmentService()
		st.On("TransitionAppointmentStatus", mock.Anything, apptID, models.StatusCompleted).Return(false, nil)
		st.On("FindAppointmentByID", mock.Anything, apptID).Return(nil, apperrors.NewNotFoundError("Appointment not found"))

		err := svc.SetStatus(context.Background(), doctorCred, apptID, models.StatusCompleted)
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("invalid status and role", func(t *testing.T) {
		svc, st, _ := newAppointmentService()
		err := svc.SetStatus(context.Background(), doctorCred, apptID, "done")
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInvalidStatus))

		err = svc.SetStatus(context.Background(), patientCred, apptID, models.StatusCancelled)
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden))
		st.AssertNotCalled(t, "TransitionAppointmentStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
