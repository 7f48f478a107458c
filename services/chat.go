package services

import (
	"context"
	"fmt"
	"strings"

	"SmartCare360/apperrors"
	"SmartCare360/authorization"
	"SmartCare360/chatbot"
	"SmartCare360/logger"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store"
)

// ChatService runs the booking dialogue for patients. Turns of one patient
// are handled one at a time.
type ChatService struct {
	users        store.UserStore
	drafts       chatbot.DraftStore
	appointments *AppointmentService
	locks        *chatbot.KeyLock
	log          *logger.Logger
	onBooking    func(success bool)
}

func NewChatService(users store.UserStore, drafts chatbot.DraftStore, appointments *AppointmentService, log *logger.Logger) *ChatService {
	return &ChatService{
		users:        users,
		drafts:       drafts,
		appointments: appointments,
		locks:        chatbot.NewKeyLock(),
		log:          log,
	}
}

// ObserveBookings registers fn to be told the outcome of every booking attempt.
func (s *ChatService) ObserveBookings(fn func(success bool)) {
	s.onBooking = fn
}

func (s *ChatService) doctors(ctx context.Context) ([]chatbot.Doctor, error) {
	users, err := s.users.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]chatbot.Doctor, 0, len(users))
	for _, u := range users {
		out = append(out, chatbot.Doctor{
			ID:             u.ID,
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			Specialization: u.Specialization,
		})
	}
	return out, nil
}

/*
* Send feeds one message into the caller's dialogue
* The finished dialogue is booked before the draft is cleared
* A failed booking keeps the draft at the notes step
 */
func (s *ChatService) Send(ctx context.Context, cred models.Credential, message string) (*models.ChatReply, error) {
	if err := authorization.Authorize(cred, role.Patient); err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("Message is required")
	}

	unlock := s.locks.Lock(cred.ID)
	defer unlock()

	state, err := s.drafts.Load(ctx, cred.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load chat draft", err)
	}

	var doctors []chatbot.Doctor
	if state.Stage() == chatbot.StageIdle {
		if doctors, err = s.doctors(ctx); err != nil {
			return nil, err
		}
	}

	next, reply, booking := chatbot.Transition(state, message, doctors)
	out := &models.ChatReply{Reply: reply}

	if booking != nil {
		id, err := s.appointments.Create(ctx, cred, models.NewAppointment{
			DoctorID:      booking.DoctorID,
			Date:          booking.Date,
			Time:          booking.Time,
			Notes:         booking.Notes,
			BookingMethod: models.BookingChatbot,
		})
		if s.onBooking != nil {
			s.onBooking(err == nil)
		}
		if err != nil {
			s.log.WithComponent("chat").WithError(err).WithField("user_id", cred.ID).Warn("Chat booking failed")
			next = state
			out.Reply = fmt.Sprintf("Sorry, I couldn't book that appointment: %s. Send your notes again to retry.",
				apperrors.Message(err))
		} else {
			out.AppointmentID = id
		}
	}

	if err := s.drafts.Save(ctx, cred.ID, next); err != nil {
		return nil, apperrors.NewInternalError("failed to save chat draft", err)
	}
	out.Stage = string(next.Stage())
	return out, nil
}
