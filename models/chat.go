package models

type ChatMessage struct {
	Message string `json:"message"`
}

type ChatReply struct {
	Reply         string `json:"reply"`
	Stage         string `json:"stage"`
	AppointmentID string `json:"appointmentId,omitempty"`
}
