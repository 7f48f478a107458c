// Package mongostore keeps the clinic records in MongoDB. Documents use the
// UUID string as _id, and joins are resolved in Go with one $in lookup.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/logger"
	"SmartCare360/migrations"
	"SmartCare360/models"
	"SmartCare360/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

func Open(ctx context.Context, uri, database string, log *logger.Logger) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.WithComponent("mongo").WithField("database", database).Info("Mongo connection established")
	return New(client, database, log), nil
}

func New(client *mongo.Client, database string, log *logger.Logger) *Store {
	return &Store{client: client, db: client.Database(database), log: log}
}

// Database exposes the handle to the index migration.
func (s *Store) Database() *mongo.Database {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) users() *mongo.Collection {
	return s.db.Collection(migrations.UsersCollection)
}

func (s *Store) appointments() *mongo.Collection {
	return s.db.Collection(migrations.AppointmentsCollection)
}

func (s *Store) prescriptions() *mongo.Collection {
	return s.db.Collection(migrations.PrescriptionsCollection)
}

func (s *Store) systemLogs() *mongo.Collection {
	return s.db.Collection(migrations.SystemLogsCollection)
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// scopeFilter is the mongo form of the role-scoped listing variants.
func scopeFilter(scope store.Scope) (bson.M, error) {
	switch scope.Kind {
	case store.ScopeAll:
		return bson.M{}, nil
	case store.ScopeDoctor:
		return bson.M{"doctorId": scope.UserID}, nil
	case store.ScopePatient:
		return bson.M{"patientId": scope.UserID}, nil
	}
	return nil, apperrors.NewInternalError("unknown listing scope", fmt.Errorf("scope kind %d", scope.Kind))
}

// userIndex loads the users referenced by ids. Missing ids are simply absent.
func (s *Store) userIndex(ctx context.Context, ids []string) (map[string]models.User, error) {
	index := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return index, nil
	}
	cursor, err := s.users().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load users", err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperrors.NewInternalError("failed to decode users", err)
	}
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}

// participantIDs returns the distinct patient and doctor ids in order of
// first appearance.
func participantIDs(pairs [][2]string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, p := range pairs {
		for _, id := range p {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
