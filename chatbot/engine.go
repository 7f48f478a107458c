package chatbot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	ReplyGreeting      = "Hello! I'm your SmartCare assistant. I can help you book appointments with doctors. Type 'book appointment' to get started!"
	ReplyNoDoctors     = "Sorry, there are no doctors available right now. Please try again later."
	ReplyInvalidDoctor = "Invalid number. Please enter a valid doctor number from the list."
	ReplyInvalidDate   = "Invalid format. Please use YYYY-MM-DD."
	ReplyAskTime       = "Got it. Enter appointment time (HH:MM)."
	ReplyInvalidTime   = "Invalid format. Please use HH:MM (24-hour)."
	ReplyAskNotes      = "Any notes? Type 'no' to skip."
	ReplyBooked        = "Your appointment has been booked! ✅"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

/*
* Transition advances the dialogue by one user message
* doctors is only consulted when a new booking starts
* A non-nil BookingRequest means the dialogue finished and the caller must book
 */
func Transition(state State, input string, doctors []Doctor) (State, string, *BookingRequest) {
	text := strings.TrimSpace(input)
	folded := strings.ToLower(text)

	switch s := state.(type) {
	case AwaitingDoctor:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > len(s.Options) {
			return s, ReplyInvalidDoctor, nil
		}
		doc := s.Options[n-1]
		return AwaitingDate{Doctor: doc},
			fmt.Sprintf("Selected %s. Please enter the appointment date (YYYY-MM-DD).", doc.DisplayName()), nil

	case AwaitingDate:
		if !datePattern.MatchString(text) {
			return s, ReplyInvalidDate, nil
		}
		return AwaitingTime{Doctor: s.Doctor, Date: text}, ReplyAskTime, nil

	case AwaitingTime:
		if !timePattern.MatchString(text) {
			return s, ReplyInvalidTime, nil
		}
		return AwaitingNotes{Doctor: s.Doctor, Date: s.Date, Time: text}, ReplyAskNotes, nil

	case AwaitingNotes:
		notes := text
		if folded == "no" {
			notes = ""
		}
		return Idle{}, ReplyBooked, &BookingRequest{
			DoctorID: s.Doctor.ID,
			Date:     s.Date,
			Time:     s.Time,
			Notes:    notes,
		}
	}

	// Idle, or anything unrecognised.
	if !strings.Contains(folded, "book") {
		return Idle{}, ReplyGreeting, nil
	}
	if len(doctors) == 0 {
		return Idle{}, ReplyNoDoctors, nil
	}
	options := append([]Doctor(nil), doctors...)
	return AwaitingDoctor{Options: options}, doctorMenu(options), nil
}

func doctorMenu(doctors []Doctor) string {
	var b strings.Builder
	b.WriteString("Great! I'll help you book an appointment. Here are the available doctors:\n\n")
	for i, d := range doctors {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, d.DisplayName(), d.Specialization)
	}
	b.WriteString("\nPlease enter the number of the doctor you'd like to book with.")
	return b.String()
}
