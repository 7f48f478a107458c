package mongostore

import (
	"context"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/role"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = newID(user.ID)
	if _, err := s.users().InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflictError("Email already exists")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}
	return nil
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := s.users().FindOne(ctx, filter).Decode(&u)
	if isNoDocuments(err) {
		return nil, apperrors.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return &u, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) FindUserByEmailAndRole(ctx context.Context, email string, r role.Role) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": email, "role": string(r)})
}

func (s *Store) listUsers(ctx context.Context, filter bson.M, sort bson.D) ([]models.User, error) {
	cursor, err := s.users().Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperrors.NewInternalError("failed to decode users", err)
	}
	return users, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.listUsers(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}})
}

func (s *Store) ListDoctors(ctx context.Context) ([]models.User, error) {
	return s.listUsers(ctx, bson.M{"role": string(role.Doctor)},
		bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) ListPatientsOfDoctor(ctx context.Context, doctorID string) ([]models.PatientSummary, error) {
	raw, err := s.appointments().Distinct(ctx, "patientId", bson.M{"doctorId": doctorID})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}

	patients := []models.PatientSummary{}
	if len(ids) == 0 {
		return patients, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}}).
		SetProjection(bson.M{"firstName": 1, "lastName": 1, "email": 1, "phone": 1})
	cursor, err := s.users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "role": string(role.Patient)}, opts)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, apperrors.NewInternalError("failed to decode patients", err)
	}
	return patients, nil
}

// DeleteUser removes only the user document.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.NewInternalError("failed to delete user", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NewNotFoundError("User not found")
	}
	return nil
}
