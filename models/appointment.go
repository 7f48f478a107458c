package models

import "time"

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is accepted.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type BookingMethod string

const (
	BookingForm    BookingMethod = "form"
	BookingChatbot BookingMethod = "chatbot"
)

func (b BookingMethod) Valid() bool {
	return b == BookingForm || b == BookingChatbot
}

type Appointment struct {
	ID            string            `json:"id" bson:"_id" db:"id"`
	PatientID     string            `json:"patientId" bson:"patientId" db:"patient_id"`
	DoctorID      string            `json:"doctorId" bson:"doctorId" db:"doctor_id"`
	Date          string            `json:"appointmentDate" bson:"appointmentDate" db:"appointment_date"`
	Time          string            `json:"appointmentTime" bson:"appointmentTime" db:"appointment_time"`
	Status        AppointmentStatus `json:"status" bson:"status" db:"status"`
	Notes         string            `json:"notes,omitempty" bson:"notes,omitempty" db:"notes"`
	BookingMethod BookingMethod     `json:"bookingMethod" bson:"bookingMethod" db:"booking_method"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt" db:"created_at"`
}

// AppointmentView is an appointment joined with the display fields of both
// participants. The names are empty when the referenced user is gone.
type AppointmentView struct {
	Appointment
	PatientFirstName string `json:"patientFirstName"`
	PatientLastName  string `json:"patientLastName"`
	DoctorFirstName  string `json:"doctorFirstName"`
	DoctorLastName   string `json:"doctorLastName"`
	Specialization   string `json:"specialization,omitempty"`
}

// NewAppointment is the validated input of the appointment ledger.
type NewAppointment struct {
	PatientID     string        `json:"patientId"`
	DoctorID      string        `json:"doctorId"`
	Date          string        `json:"appointmentDate"`
	Time          string        `json:"appointmentTime"`
	Notes         string        `json:"notes"`
	BookingMethod BookingMethod `json:"bookingMethod"`
}

type StatusChange struct {
	Status AppointmentStatus `json:"status"`
}
