package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/chatbot"
	"SmartCare360/logger"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatService() (*ChatService, *storetest.MockStore, *chatbot.MemoryStore, *recordingAuditor) {
	st := new(storetest.MockStore)
	audit := &recordingAuditor{}
	drafts := chatbot.NewMemoryStore(time.Hour)
	appts := NewAppointmentService(st, audit, logger.Discard())
	return NewChatService(st, drafts, appts, logger.Discard()), st, drafts, audit
}

var doctorUser = models.User{ID: doctorID, Role: role.Doctor, FirstName: "Sarah", LastName: "Johnson", Specialization: "General Medicine"}

func send(t *testing.T, svc *ChatService, msg string) *models.ChatReply {
	t.Helper()
	reply, err := svc.Send(context.Background(), patientCred, msg)
	require.NoError(t, err)
	return reply
}

func TestChat_BooksThroughLedger(t *testing.T) {
	svc, st, drafts, audit := newChatService()
	st.On("ListDoctors", mock.Anything).Return([]models.User{doctorUser}, nil)
	st.On("CreateAppointment", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
		return a.PatientID == patientID && a.DoctorID == doctorID && a.Date == "2030-03-04" &&
			a.Time == "10:30" && a.Notes == "" && a.BookingMethod == models.BookingChatbot
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Appointment).ID = "appt-9"
	}).Return(nil)

	r := send(t, svc, "book appointment")
	assert.Equal(t, "doctor", r.Stage)
	assert.Contains(t, r.Reply, "1. Dr. Sarah Johnson - General Medicine")

	assert.Equal(t, "date", send(t, svc, "1").Stage)
	assert.Equal(t, "time", send(t, svc, "2030-03-04").Stage)
	assert.Equal(t, "notes", send(t, svc, "10:30").Stage)

	r = send(t, svc, "no")
	assert.Equal(t, "idle", r.Stage)
	assert.Equal(t, chatbot.ReplyBooked, r.Reply)
	assert.Equal(t, "appt-9", r.AppointmentID)
	assert.Equal(t, 0, drafts.Len())
	assert.Equal(t, []string{models.ActionCreateAppointment}, audit.actions())
	st.AssertNumberOfCalls(t, "ListDoctors", 1)
}

func TestChat_FailedBookingKeepsDraft(t *testing.T) {
	svc, st, drafts, _ := newChatService()
	ctx := context.Background()
	doc := chatbot.Doctor{ID: doctorID, FirstName: "Sarah", LastName: "Johnson"}
	notes := chatbot.AwaitingNotes{Doctor: doc, Date: "2030-03-04", Time: "10:30"}
	require.NoError(t, drafts.Save(ctx, patientID, notes))

	st.On("CreateAppointment", mock.Anything, mock.Anything).
		Return(apperrors.NewInternalError("failed to create appointment", errors.New("db down")))

	var outcomes []bool
	svc.ObserveBookings(func(ok bool) { outcomes = append(outcomes, ok) })

	r := send(t, svc, "bring reports")
	assert.Equal(t, []bool{false}, outcomes)
	assert.Equal(t, "notes", r.Stage)
	assert.Empty(t, r.AppointmentID)
	assert.Contains(t, r.Reply, apperrors.MsgInternal)

	state, err := drafts.Load(ctx, patientID)
	require.NoError(t, err)
	assert.Equal(t, notes, state)
}

func TestChat_NoDoctors(t *testing.T) {
	svc, st, drafts, _ := newChatService()
	st.On("ListDoctors", mock.Anything).Return([]models.User{}, nil)

	r := send(t, svc, "book")
	assert.Equal(t, "idle", r.Stage)
	assert.Equal(t, chatbot.ReplyNoDoctors, r.Reply)
	assert.Equal(t, 0, drafts.Len())
}

func TestChat_PatientsOnlyAndNonEmpty(t *testing.T) {
	svc, _, _, _ := newChatService()
	_, err := svc.Send(context.Background(), doctorCred, "book")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeForbidden))

	_, err = svc.Send(context.Background(), patientCred, "   ")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}
