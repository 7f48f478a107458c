package services

import (
	"context"
	"sync"

	"SmartCare360/models"
	"SmartCare360/role"
)

type auditCall struct {
	UserID, Action, Details string
}

// recordingAuditor keeps every entry in memory.
type recordingAuditor struct {
	mu    sync.Mutex
	calls []auditCall
}

func (a *recordingAuditor) Record(_ context.Context, userID, action, details string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, auditCall{userID, action, details})
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.calls))
	for _, c := range a.calls {
		out = append(out, c.Action)
	}
	return out
}

const (
	adminID   = "00000000-0000-4000-8000-000000000001"
	doctorID  = "00000000-0000-4000-8000-000000000002"
	patientID = "00000000-0000-4000-8000-000000000003"
	otherID   = "00000000-0000-4000-8000-000000000004"
)

var (
	adminCred   = models.Credential{ID: adminID, Email: "admin@smartcare.com", Role: role.Admin}
	doctorCred  = models.Credential{ID: doctorID, Email: "doctor@smartcare.com", Role: role.Doctor}
	patientCred = models.Credential{ID: patientID, Email: "patient@smartcare.com", Role: role.Patient}
)
