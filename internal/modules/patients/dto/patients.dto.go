package dto

import (
	"time"

	prepdto "pharma-prep-core/internal/modules/preparations/dto"
)

// Patient dossier patient, propriétaire de ses préparations
type Patient struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	Weight        float64   `json:"weight"`
	PhoneNumber   string    `json:"phoneNumber"`
	Grade         string    `json:"grade"`
	Antecedents   *string   `json:"antecedents"`
	Etablissement *string   `json:"etablissement"`
	Medicin       *string   `json:"medicin"`
	Specialite    *string   `json:"specialite"`
	Service       *string   `json:"service"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Summary résumé renvoyé avec chaque préparation
func (p *Patient) Summary() *prepdto.PatientSummary {
	return &prepdto.PatientSummary{
		ID:      p.ID,
		Name:    p.Name,
		Age:     p.Age,
		Gender:  p.Gender,
		Weight:  p.Weight,
		Grade:   p.Grade,
		Service: p.Service,
	}
}

// PatientWithPreparations patient et ses préparations
type PatientWithPreparations struct {
	Patient
	Preparations []prepdto.MedicinePreparation `json:"preparations"`
}

// CreatePatientRequest création d'un patient, préparations optionnelles créées dans la même transaction
type CreatePatientRequest struct {
	Name          string                     `json:"name" validate:"required,max=255"`
	Age           *int                       `json:"age" validate:"required,gte=0,lte=150"`
	Gender        string                     `json:"gender" validate:"required,max=20"`
	Weight        *float64                   `json:"weight" validate:"required,gt=0"`
	PhoneNumber   string                     `json:"phoneNumber" validate:"required,max=50"`
	Grade         string                     `json:"grade" validate:"required,max=50"`
	Antecedents   *string                    `json:"antecedents"`
	Etablissement *string                    `json:"etablissement" validate:"omitempty,max=255"`
	Medicin       *string                    `json:"medicin" validate:"omitempty,max=255"`
	Specialite    *string                    `json:"specialite" validate:"omitempty,max=255"`
	Service       *string                    `json:"service" validate:"omitempty,max=255"`
	Preparations  []prepdto.PreparationInput `json:"preparations" validate:"omitempty,dive"`
}

// UpdatePatientRequest fusion partielle, les champs absents sont conservés
type UpdatePatientRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Age           *int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender        *string  `json:"gender" validate:"omitempty,min=1,max=20"`
	Weight        *float64 `json:"weight" validate:"omitempty,gt=0"`
	PhoneNumber   *string  `json:"phoneNumber" validate:"omitempty,min=1,max=50"`
	Grade         *string  `json:"grade" validate:"omitempty,min=1,max=50"`
	Antecedents   *string  `json:"antecedents"`
	Etablissement *string  `json:"etablissement" validate:"omitempty,max=255"`
	Medicin       *string  `json:"medicin" validate:"omitempty,max=255"`
	Specialite    *string  `json:"specialite" validate:"omitempty,max=255"`
	Service       *string  `json:"service" validate:"omitempty,max=255"`
}
