package mongostore

import (
	"context"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	appt.ID = newID(appt.ID)
	if _, err := s.appointments().InsertOne(ctx, appt); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}
	return nil
}

func (s *Store) FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	var a models.Appointment
	err := s.appointments().FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if isNoDocuments(err) {
		return nil, apperrors.NewNotFoundError("Appointment not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}
	return &a, nil
}

func (s *Store) ListAppointments(ctx context.Context, scope store.Scope) ([]models.AppointmentView, error) {
	filter, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "appointmentDate", Value: -1}, {Key: "appointmentTime", Value: -1}})
	cursor, err := s.appointments().Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, apperrors.NewInternalError("failed to decode appointments", err)
	}

	pairs := make([][2]string, len(appts))
	for i, a := range appts {
		pairs[i] = [2]string{a.PatientID, a.DoctorID}
	}
	index, err := s.userIndex(ctx, participantIDs(pairs))
	if err != nil {
		return nil, err
	}

	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		v := models.AppointmentView{Appointment: a}
		if p, ok := index[a.PatientID]; ok {
			v.PatientFirstName, v.PatientLastName = p.FirstName, p.LastName
		}
		if d, ok := index[a.DoctorID]; ok {
			v.DoctorFirstName, v.DoctorLastName = d.FirstName, d.LastName
			v.Specialization = d.Specialization
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *Store) TransitionAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (bool, error) {
	res, err := s.appointments().UpdateOne(ctx,
		bson.M{"_id": id, "status": string(models.StatusScheduled)},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return false, apperrors.NewInternalError("failed to update appointment status", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *Store) CreatePrescription(ctx context.Context, p *models.Prescription) error {
	p.ID = newID(p.ID)
	if _, err := s.prescriptions().InsertOne(ctx, p); err != nil {
		return apperrors.NewInternalError("failed to create prescription", err)
	}
	return nil
}

func (s *Store) ListPrescriptions(ctx context.Context, scope store.Scope) ([]models.PrescriptionView, error) {
	filter, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	cursor, err := s.prescriptions().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list prescriptions", err)
	}
	var items []models.Prescription
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperrors.NewInternalError("failed to decode prescriptions", err)
	}

	pairs := make([][2]string, len(items))
	for i, p := range items {
		pairs[i] = [2]string{p.PatientID, p.DoctorID}
	}
	index, err := s.userIndex(ctx, participantIDs(pairs))
	if err != nil {
		return nil, err
	}

	views := make([]models.PrescriptionView, 0, len(items))
	for _, p := range items {
		v := models.PrescriptionView{Prescription: p}
		if u, ok := index[p.PatientID]; ok {
			v.PatientFirstName, v.PatientLastName = u.FirstName, u.LastName
		}
		if u, ok := index[p.DoctorID]; ok {
			v.DoctorFirstName, v.DoctorLastName = u.FirstName, u.LastName
			v.Specialization = u.Specialization
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *Store) AppendAudit(ctx context.Context, entry *models.AuditLogEntry) error {
	entry.ID = newID(entry.ID)
	if _, err := s.systemLogs().InsertOne(ctx, entry); err != nil {
		return apperrors.NewInternalError("failed to append audit entry", err)
	}
	return nil
}
