package models

type Stats struct {
	TotalUsers            int `json:"totalUsers"`
	Doctors               int `json:"doctors"`
	Patients              int `json:"patients"`
	Admins                int `json:"admins"`
	TotalAppointments     int `json:"totalAppointments"`
	ScheduledAppointments int `json:"scheduledAppointments"`
	CompletedAppointments int `json:"completedAppointments"`
	CancelledAppointments int `json:"cancelledAppointments"`
	ChatbotBookings       int `json:"chatbotBookings"`
}
