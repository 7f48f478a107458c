package models

import "time"

// Prescription has no update or delete path once stored.
type Prescription struct {
	ID           string    `json:"id" bson:"_id" db:"id"`
	PatientID    string    `json:"patientId" bson:"patientId" db:"patient_id"`
	DoctorID     string    `json:"doctorId" bson:"doctorId" db:"doctor_id"`
	Medication   string    `json:"medication" bson:"medication" db:"medication"`
	Dosage       string    `json:"dosage" bson:"dosage" db:"dosage"`
	Frequency    string    `json:"frequency" bson:"frequency" db:"frequency"`
	Duration     string    `json:"duration" bson:"duration" db:"duration"`
	Instructions string    `json:"instructions,omitempty" bson:"instructions,omitempty" db:"instructions"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
}

type PrescriptionView struct {
	Prescription
	PatientFirstName string `json:"patientFirstName"`
	PatientLastName  string `json:"patientLastName"`
	DoctorFirstName  string `json:"doctorFirstName"`
	DoctorLastName   string `json:"doctorLastName"`
	Specialization   string `json:"specialization,omitempty"`
}

// NewPrescription carries no doctor id: the author is always the caller.
type NewPrescription struct {
	PatientID    string `json:"patientId"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}
