package migrations

import (
	"context"
	"errors"
	"testing"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store/storetest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreatePostgresSchema(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range schema {
		sqlMock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, CreatePostgresSchema(context.Background(), db))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCreatePostgresSchema_StopsOnError(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("permission denied"))
	err = CreatePostgresSchema(context.Background(), db)
	assert.ErrorContains(t, err, "schema statement 1")
}

func TestSeedDemoUsers_CreatesMissingOnly(t *testing.T) {
	users := new(storetest.MockStore)
	notFound := apperrors.NewNotFoundError("User not found")

	users.On("FindUserByEmailAndRole", mock.Anything, "admin@smartcare.com", role.Admin).
		Return(&models.User{ID: "existing"}, nil)
	users.On("FindUserByEmailAndRole", mock.Anything, "doctor@smartcare.com", role.Doctor).Return(nil, notFound)
	users.On("FindUserByEmailAndRole", mock.Anything, "patient@smartcare.com", role.Patient).Return(nil, notFound)

	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "doctor@smartcare.com" &&
			u.LicenseNumber == "MD12345" &&
			bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("doctor123")) == nil
	})).Return(nil).Once()
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "patient@smartcare.com" && u.FirstName == "John"
	})).Return(nil).Once()

	require.NoError(t, SeedDemoUsers(context.Background(), users, bcrypt.MinCost))
	users.AssertExpectations(t)
	users.AssertNumberOfCalls(t, "CreateUser", 2)
}

func TestSeedDemoUsers_StoreFailure(t *testing.T) {
	users := new(storetest.MockStore)
	users.On("FindUserByEmailAndRole", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewInternalError("failed to get user", errors.New("down")))

	err := SeedDemoUsers(context.Background(), users, bcrypt.MinCost)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInternal))
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}
