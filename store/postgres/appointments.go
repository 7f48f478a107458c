package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/store"

	"github.com/doug-martin/goqu/v9"
)

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	appt.ID = newID(appt.ID)
	query, args, err := s.goqu.Insert("appointments").Rows(goqu.Record{
		"id":               appt.ID,
		"patient_id":       appt.PatientID,
		"doctor_id":        appt.DoctorID,
		"appointment_date": appt.Date,
		"appointment_time": appt.Time,
		"status":           string(appt.Status),
		"notes":            appt.Notes,
		"booking_method":   string(appt.BookingMethod),
		"created_at":       appt.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return buildErr("insert appointment", err)
	}
	if _, err := s.exec(ctx, query, args); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}
	return nil
}

func (s *Store) FindAppointmentByID(ctx context.Context, id string) (*models.Appointment, error) {
	query, args, err := s.goqu.From("appointments").
		Select("id", "patient_id", "doctor_id", "appointment_date", "appointment_time",
			"status", "notes", "booking_method", "created_at").
		Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return nil, buildErr("select appointment", err)
	}

	var (
		a              models.Appointment
		status, method string
		notes          sql.NullString
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.PatientID, &a.DoctorID,
		&a.Date, &a.Time, &status, &notes, &method, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Appointment not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}
	a.Status = models.AppointmentStatus(status)
	a.BookingMethod = models.BookingMethod(method)
	a.Notes = notes.String
	return &a, nil
}

/*
* One base query joined with both participants
* LEFT JOIN keeps rows whose patient or doctor was deleted
 */
func (s *Store) appointmentsQuery() *goqu.SelectDataset {
	return s.goqu.From(goqu.T("appointments").As("a")).
		LeftJoin(goqu.T("users").As("p"), goqu.On(goqu.I("a.patient_id").Eq(goqu.I("p.id")))).
		LeftJoin(goqu.T("users").As("d"), goqu.On(goqu.I("a.doctor_id").Eq(goqu.I("d.id")))).
		Select(
			goqu.I("a.id"), goqu.I("a.patient_id"), goqu.I("a.doctor_id"),
			goqu.I("a.appointment_date"), goqu.I("a.appointment_time"), goqu.I("a.status"),
			goqu.I("a.notes"), goqu.I("a.booking_method"), goqu.I("a.created_at"),
			goqu.I("p.first_name").As("patient_first_name"), goqu.I("p.last_name").As("patient_last_name"),
			goqu.I("d.first_name").As("doctor_first_name"), goqu.I("d.last_name").As("doctor_last_name"),
			goqu.I("d.specialization"),
		).
		Order(goqu.I("a.appointment_date").Desc(), goqu.I("a.appointment_time").Desc())
}

// scoped applies the role variant. An unknown scope matches nothing.
func scoped(ds *goqu.SelectDataset, scope store.Scope, patientCol, doctorCol string) (*goqu.SelectDataset, error) {
	switch scope.Kind {
	case store.ScopeAll:
		return ds, nil
	case store.ScopeDoctor:
		return ds.Where(goqu.I(doctorCol).Eq(scope.UserID)), nil
	case store.ScopePatient:
		return ds.Where(goqu.I(patientCol).Eq(scope.UserID)), nil
	}
	return nil, apperrors.NewInternalError("unknown listing scope", fmt.Errorf("scope kind %d", scope.Kind))
}

func (s *Store) ListAppointments(ctx context.Context, scope store.Scope) ([]models.AppointmentView, error) {
	ds, err := scoped(s.appointmentsQuery(), scope, "a.patient_id", "a.doctor_id")
	if err != nil {
		return nil, err
	}
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, buildErr("list appointments", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	out := []models.AppointmentView{}
	for rows.Next() {
		var (
			v                                   models.AppointmentView
			status, method                      string
			notes, pFirst, pLast, dFirst, dLast sql.NullString
			spec                                sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.PatientID, &v.DoctorID, &v.Date, &v.Time, &status,
			&notes, &method, &v.CreatedAt, &pFirst, &pLast, &dFirst, &dLast, &spec); err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		v.Status = models.AppointmentStatus(status)
		v.BookingMethod = models.BookingMethod(method)
		v.Notes = notes.String
		v.PatientFirstName, v.PatientLastName = pFirst.String, pLast.String
		v.DoctorFirstName, v.DoctorLastName = dFirst.String, dLast.String
		v.Specialization = spec.String
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate appointments", err)
	}
	return out, nil
}

func (s *Store) TransitionAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) (bool, error) {
	query, args, err := s.goqu.Update("appointments").
		Set(goqu.Record{"status": string(status)}).
		Where(goqu.Ex{"id": id, "status": string(models.StatusScheduled)}).
		Prepared(true).ToSQL()
	if err != nil {
		return false, buildErr("update appointment status", err)
	}
	res, err := s.exec(ctx, query, args)
	if err != nil {
		return false, apperrors.NewInternalError("failed to update appointment status", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
