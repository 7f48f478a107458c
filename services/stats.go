package services

import (
	"context"

	"SmartCare360/authorization"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store"
)

type StatsService struct {
	users        store.UserStore
	appointments store.AppointmentStore
}

func NewStatsService(users store.UserStore, appointments store.AppointmentStore) *StatsService {
	return &StatsService{users: users, appointments: appointments}
}

// Stats are the admin dashboard counters.
func (s *StatsService) Stats(ctx context.Context, cred models.Credential) (*models.Stats, error) {
	if err := authorization.Authorize(cred, role.Admin); err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	appts, err := s.appointments.ListAppointments(ctx, store.Scope{Kind: store.ScopeAll})
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{TotalUsers: len(users), TotalAppointments: len(appts)}
	for _, u := range users {
		switch u.Role {
		case role.Doctor:
			stats.Doctors++
		case role.Patient:
			stats.Patients++
		case role.Admin:
			stats.Admins++
		}
	}
	for _, a := range appts {
		switch a.Status {
		case models.StatusScheduled:
			stats.ScheduledAppointments++
		case models.StatusCompleted:
			stats.CompletedAppointments++
		case models.StatusCancelled:
			stats.CancelledAppointments++
		}
		if a.BookingMethod == models.BookingChatbot {
			stats.ChatbotBookings++
		}
	}
	return stats, nil
}
