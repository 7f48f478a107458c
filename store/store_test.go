package store

import (
	"testing"

	"SmartCare360/models"
	"SmartCare360/role"

	"github.com/stretchr/testify/assert"
)

func TestScopeFor(t *testing.T) {
	assert.Equal(t, Scope{Kind: ScopeDoctor, UserID: "d1"}, ScopeFor(models.Credential{ID: "d1", Role: role.Doctor}))
	assert.Equal(t, Scope{Kind: ScopePatient, UserID: "p1"}, ScopeFor(models.Credential{ID: "p1", Role: role.Patient}))
	assert.Equal(t, Scope{Kind: ScopeAll}, ScopeFor(models.Credential{ID: "a1", Role: role.Admin}))
}
