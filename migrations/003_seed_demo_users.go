package migrations

import (
	"context"
	"log"
	"time"

	"SmartCare360/apperrors"
	"SmartCare360/models"
	"SmartCare360/role"
	"SmartCare360/store"

	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	user     models.User
	password string
}

var demoUsers = []demoUser{
	{
		user:     models.User{Email: "admin@smartcare.com", Role: role.Admin, FirstName: "System", LastName: "Administrator"},
		password: "admin123",
	},
	{
		user: models.User{Email: "doctor@smartcare.com", Role: role.Doctor, FirstName: "Sarah", LastName: "Johnson",
			Specialization: "General Medicine", LicenseNumber: "MD12345"},
		password: "doctor123",
	},
	{
		user:     models.User{Email: "patient@smartcare.com", Role: role.Patient, FirstName: "John", LastName: "Doe"},
		password: "patient123",
	},
}

/*
* Creates the fixed demo accounts when they are missing
* Existing accounts are left untouched
 */
func SeedDemoUsers(ctx context.Context, users store.UserStore, bcryptCost int) error {
	for _, demo := range demoUsers {
		_, err := users.FindUserByEmailAndRole(ctx, demo.user.Email, demo.user.Role)
		if err == nil {
			continue
		}
		if !apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(demo.password), bcryptCost)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		u := demo.user
		u.Password = string(hash)
		u.CreatedAt, u.UpdatedAt = now, now
		if err := users.CreateUser(ctx, &u); err != nil {
			return err
		}
		log.Println("Seeded demo user:", u.Email)
	}
	return nil
}
