package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

/*
* Tables carry no foreign keys
* Deleting a user leaves its appointments, prescriptions and log rows in place
 */
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('doctor', 'patient', 'admin')),
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone TEXT,
		specialization TEXT,
		license_number TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL,
		doctor_id UUID NOT NULL,
		appointment_date TEXT NOT NULL,
		appointment_time TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'completed', 'cancelled')),
		notes TEXT,
		booking_method TEXT NOT NULL DEFAULT 'form' CHECK (booking_method IN ('form', 'chatbot')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_doctor ON appointments (doctor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments (patient_id)`,
	`CREATE TABLE IF NOT EXISTS prescriptions (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL,
		doctor_id UUID NOT NULL,
		medication TEXT NOT NULL,
		dosage TEXT NOT NULL,
		frequency TEXT NOT NULL,
		duration TEXT NOT NULL,
		instructions TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_prescriptions_doctor ON prescriptions (doctor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_prescriptions_patient ON prescriptions (patient_id)`,
	`CREATE TABLE IF NOT EXISTS system_logs (
		id UUID PRIMARY KEY,
		user_id UUID,
		action TEXT NOT NULL,
		details TEXT,
		ip_address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func CreatePostgresSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	log.Println("Migration applied: postgres schema is up to date")
	return nil
}
