package models

import "time"

const (
	ActionLogin                   = "login"
	ActionCreateAppointment       = "create_appointment"
	ActionUpdateAppointmentStatus = "update_appointment_status"
	ActionCreatePrescription      = "create_prescription"
	ActionCreateUser              = "create_user"
	ActionDeleteUser              = "delete_user"
)

type AuditLogEntry struct {
	ID        string    `json:"id" bson:"_id" db:"id"`
	UserID    string    `json:"userId,omitempty" bson:"userId,omitempty" db:"user_id"`
	Action    string    `json:"action" bson:"action" db:"action"`
	Details   string    `json:"details" bson:"details" db:"details"`
	IPAddress string    `json:"ipAddress,omitempty" bson:"ipAddress,omitempty" db:"ip_address"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
}
