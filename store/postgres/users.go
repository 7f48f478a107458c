package postgres

import (
	"context"
	"database/sql"
	"errors"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/role"

	"github.com/doug-martin/goqu/v9"
)

var userColumns = []interface{}{
	"id", "email", "password", "role", "first_name", "last_name",
	"phone", "specialization", "license_number", "created_at", "updated_at",
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = newID(user.ID)
	query, args, err := s.goqu.Insert("users").Rows(goqu.Record{
		"id":             user.ID,
		"email":          user.Email,
		"password":       user.Password,
		"role":           string(user.Role),
		"first_name":     user.FirstName,
		"last_name":      user.LastName,
		"phone":          user.Phone,
		"specialization": user.Specialization,
		"license_number": user.LicenseNumber,
		"created_at":     user.CreatedAt,
		"updated_at":     user.UpdatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return buildErr("insert user", err)
	}

	if _, err := s.exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("Email already exists")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var (
		u                    models.User
		userRole             string
		phone, spec, license sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.Password, &userRole, &u.FirstName, &u.LastName,
		&phone, &spec, &license, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = role.Role(userRole)
	u.Phone = phone.String
	u.Specialization = spec.String
	u.LicenseNumber = license.String
	return &u, nil
}

func (s *Store) findUser(ctx context.Context, where goqu.Ex) (*models.User, error) {
	query, args, err := s.goqu.From("users").Select(userColumns...).
		Where(where).Prepared(true).ToSQL()
	if err != nil {
		return nil, buildErr("select user", err)
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, goqu.Ex{"id": id})
}

func (s *Store) FindUserByEmailAndRole(ctx context.Context, email string, r role.Role) (*models.User, error) {
	return s.findUser(ctx, goqu.Ex{"email": email, "role": string(r)})
}

func (s *Store) listUsers(ctx context.Context, ds *goqu.SelectDataset) ([]models.User, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, buildErr("list users", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate users", err)
	}
	return users, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.listUsers(ctx, s.goqu.From("users").Select(userColumns...).
		Order(goqu.I("created_at").Desc()))
}

func (s *Store) ListDoctors(ctx context.Context) ([]models.User, error) {
	return s.listUsers(ctx, s.goqu.From("users").Select(userColumns...).
		Where(goqu.Ex{"role": string(role.Doctor)}).
		Order(goqu.I("first_name").Asc(), goqu.I("last_name").Asc(), goqu.I("id").Asc()))
}

func (s *Store) ListPatientsOfDoctor(ctx context.Context, doctorID string) ([]models.PatientSummary, error) {
	query, args, err := s.goqu.From(goqu.T("users").As("u")).
		Join(goqu.T("appointments").As("a"), goqu.On(goqu.I("u.id").Eq(goqu.I("a.patient_id")))).
		Select(goqu.I("u.id"), goqu.I("u.first_name"), goqu.I("u.last_name"), goqu.I("u.email"), goqu.I("u.phone")).
		Distinct().
		Where(
			goqu.I("a.doctor_id").Eq(doctorID),
			goqu.I("u.role").Eq(string(role.Patient)),
		).
		Order(goqu.I("u.first_name").Asc(), goqu.I("u.last_name").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, buildErr("list patients", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	defer rows.Close()

	patients := []models.PatientSummary{}
	for rows.Next() {
		var p models.PatientSummary
		var phone sql.NullString
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &phone); err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient", err)
		}
		p.Phone = phone.String
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate patients", err)
	}
	return patients, nil
}

// DeleteUser removes only the user row. Appointments and prescriptions that
// reference it are kept.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	query, args, err := s.goqu.Delete("users").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return buildErr("delete user", err)
	}
	res, err := s.exec(ctx, query, args)
	if err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NewNotFoundError("User not found")
	}
	return nil
}
