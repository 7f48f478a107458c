package chatbot

import (
	"context"
	"fmt"
)

// Draft is the serialisable form of a State.
type Draft struct {
	Stage   Stage    `json:"stage"`
	Options []Doctor `json:"options,omitempty"`
	Doctor  *Doctor  `json:"doctor,omitempty"`
	Date    string   `json:"date,omitempty"`
	Time    string   `json:"time,omitempty"`
}

func DraftOf(state State) Draft {
	switch s := state.(type) {
	case AwaitingDoctor:
		return Draft{Stage: StageDoctor, Options: s.Options}
	case AwaitingDate:
		doc := s.Doctor
		return Draft{Stage: StageDate, Doctor: &doc}
	case AwaitingTime:
		doc := s.Doctor
		return Draft{Stage: StageTime, Doctor: &doc, Date: s.Date}
	case AwaitingNotes:
		doc := s.Doctor
		return Draft{Stage: StageNotes, Doctor: &doc, Date: s.Date, Time: s.Time}
	}
	return Draft{Stage: StageIdle}
}

// State rebuilds the dialogue state. A draft missing the data its stage
// needs is rejected.
func (d Draft) State() (State, error) {
	switch d.Stage {
	case StageIdle, "":
		return Idle{}, nil
	case StageDoctor:
		return AwaitingDoctor{Options: d.Options}, nil
	case StageDate, StageTime, StageNotes:
	default:
		return nil, fmt.Errorf("unknown chat stage %q", d.Stage)
	}

	if d.Doctor == nil {
		return nil, fmt.Errorf("chat draft at stage %q has no doctor", d.Stage)
	}
	switch d.Stage {
	case StageDate:
		return AwaitingDate{Doctor: *d.Doctor}, nil
	case StageTime:
		return AwaitingTime{Doctor: *d.Doctor, Date: d.Date}, nil
	}
	return AwaitingNotes{Doctor: *d.Doctor, Date: d.Date, Time: d.Time}, nil
}

// DraftStore keeps one dialogue per user. Load returns Idle when nothing is
// stored or the draft expired; saving Idle removes the draft.
type DraftStore interface {
	Load(ctx context.Context, userID string) (State, error)
	Save(ctx context.Context, userID string, state State) error
}
