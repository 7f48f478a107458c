package postgres

import (
	"context"
	"database/sql"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/store"

	"github.com/doug-martin/goqu/v9"
)

func (s *Store) CreatePrescription(ctx context.Context, p *models.Prescription) error {
	p.ID = newID(p.ID)
	query, args, err := s.goqu.Insert("prescriptions").Rows(goqu.Record{
		"id":           p.ID,
		"patient_id":   p.PatientID,
		"doctor_id":    p.DoctorID,
		"medication":   p.Medication,
		"dosage":       p.Dosage,
		"frequency":    p.Frequency,
		"duration":     p.Duration,
		"instructions": p.Instructions,
		"created_at":   p.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return buildErr("insert prescription", err)
	}
	if _, err := s.exec(ctx, query, args); err != nil {
		return apperrors.NewInternalError("failed to create prescription", err)
	}
	return nil
}

func (s *Store) ListPrescriptions(ctx context.Context, scope store.Scope) ([]models.PrescriptionView, error) {
	base := s.goqu.From(goqu.T("prescriptions").As("rx")).
		LeftJoin(goqu.T("users").As("p"), goqu.On(goqu.I("rx.patient_id").Eq(goqu.I("p.id")))).
		LeftJoin(goqu.T("users").As("d"), goqu.On(goqu.I("rx.doctor_id").Eq(goqu.I("d.id")))).
		Select(
			goqu.I("rx.id"), goqu.I("rx.patient_id"), goqu.I("rx.doctor_id"),
			goqu.I("rx.medication"), goqu.I("rx.dosage"), goqu.I("rx.frequency"),
			goqu.I("rx.duration"), goqu.I("rx.instructions"), goqu.I("rx.created_at"),
			goqu.I("p.first_name").As("patient_first_name"), goqu.I("p.last_name").As("patient_last_name"),
			goqu.I("d.first_name").As("doctor_first_name"), goqu.I("d.last_name").As("doctor_last_name"),
			goqu.I("d.specialization"),
		).
		Order(goqu.I("rx.created_at").Desc())

	ds, err := scoped(base, scope, "rx.patient_id", "rx.doctor_id")
	if err != nil {
		return nil, err
	}
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, buildErr("list prescriptions", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list prescriptions", err)
	}
	defer rows.Close()

	out := []models.PrescriptionView{}
	for rows.Next() {
		var (
			v                                          models.PrescriptionView
			instructions, pFirst, pLast, dFirst, dLast sql.NullString
			spec                                       sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.PatientID, &v.DoctorID, &v.Medication, &v.Dosage,
			&v.Frequency, &v.Duration, &instructions, &v.CreatedAt,
			&pFirst, &pLast, &dFirst, &dLast, &spec); err != nil {
			return nil, apperrors.NewInternalError("failed to scan prescription", err)
		}
		v.Instructions = instructions.String
		v.PatientFirstName, v.PatientLastName = pFirst.String, pLast.String
		v.DoctorFirstName, v.DoctorLastName = dFirst.String, dLast.String
		v.Specialization = spec.String
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate prescriptions", err)
	}
	return out, nil
}
