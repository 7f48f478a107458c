// Package chatbot implements the scripted appointment-booking dialogue. The
// dialogue is a closed set of states and a pure Transition function; booking
// is returned as data for the caller to execute.
package chatbot

import "fmt"

type Stage string

const (
	StageIdle   Stage = "idle"
	StageDoctor Stage = "doctor"
	StageDate   Stage = "date"
	StageTime   Stage = "time"
	StageNotes  Stage = "notes"
)

// Doctor is the part of a doctor account the dialogue shows and remembers.
type Doctor struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Specialization string `json:"specialization,omitempty"`
}

func (d Doctor) DisplayName() string {
	return fmt.Sprintf("Dr. %s %s", d.FirstName, d.LastName)
}

// State is one of Idle, AwaitingDoctor, AwaitingDate, AwaitingTime or
// AwaitingNotes. Each variant holds exactly the data collected so far.
type State interface {
	Stage() Stage
	sealed()
}

type Idle struct{}

// AwaitingDoctor keeps the list that was shown so a number picks the same
// doctor even if the directory changes meanwhile.
type AwaitingDoctor struct {
	Options []Doctor
}

type AwaitingDate struct {
	Doctor Doctor
}

type AwaitingTime struct {
	Doctor Doctor
	Date   string
}

type AwaitingNotes struct {
	Doctor Doctor
	Date   string
	Time   string
}

func (Idle) Stage() Stage           { return StageIdle }
func (AwaitingDoctor) Stage() Stage { return StageDoctor }
func (AwaitingDate) Stage() Stage   { return StageDate }
func (AwaitingTime) Stage() Stage   { return StageTime }
func (AwaitingNotes) Stage() Stage  { return StageNotes }

func (Idle) sealed()           {}
func (AwaitingDoctor) sealed() {}
func (AwaitingDate) sealed()   {}
func (AwaitingTime) sealed()   {}
func (AwaitingNotes) sealed()  {}

// BookingRequest is emitted when the dialogue completes.
type BookingRequest struct {
	DoctorID string
	Date     string
	Time     string
	Notes    string
}
