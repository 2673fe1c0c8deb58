package services

import (
	"context"
	"log/slog"
	"strings"

	"pharma-prep-core/internal/modules/patients/dto"
	prepdto "pharma-prep-core/internal/modules/preparations/dto"
	prepServices "pharma-prep-core/internal/modules/preparations/services"
	apperrors "pharma-prep-core/internal/shared/errors"
)

// PatientsRepository persistance des patients
type PatientsRepository interface {
	// Create insère le patient et ses préparations dans une seule transaction
	Create(ctx context.Context, patient *dto.Patient, preps []*prepdto.MedicinePreparation) (*dto.Patient, []prepdto.MedicinePreparation, error)
	GetByID(ctx context.Context, id int64) (*dto.Patient, error)
	ListPreparations(ctx context.Context, patientID int64) ([]prepdto.MedicinePreparation, error)
	List(ctx context.Context) ([]dto.Patient, error)
	Update(ctx context.Context, patient *dto.Patient) (*dto.Patient, error)
	// Delete supprime patient et préparations, retourne les ids de préparations supprimées
	Delete(ctx context.Context, id int64) (preparationIDs []int64, found bool, err error)
}

// PreparationNotifier journalisation et invalidation des comptages côté préparations
type PreparationNotifier interface {
	NotifyCreated(ctx context.Context, preps []prepdto.MedicinePreparation)
	NotifyDeleted(ctx context.Context, patientID int64, ids []int64)
}

type PatientsService struct {
	repo     PatientsRepository
	notifier PreparationNotifier
	logger   *slog.Logger
}

func NewPatientsService(repo PatientsRepository, notifier PreparationNotifier, logger *slog.Logger) *PatientsService {
	return &PatientsService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

func patientNotFound() error {
	return apperrors.NotFound("PATIENT_NOT_FOUND", "Patient non trouvé")
}

// CreatePatient crée le patient et ses éventuelles préparations, tout ou rien
func (s *PatientsService) CreatePatient(ctx context.Context, req dto.CreatePatientRequest) (*dto.PatientWithPreparations, error) {
	preps, err := prepServices.BuildPreparations(0, req.Preparations)
	if err != nil {
		if svcErr, ok := apperrors.As(err); ok {
			svcErr.WithDetail("champ", "preparations")
		}
		return nil, err
	}

	patient := &dto.Patient{
		Name:          strings.TrimSpace(req.Name),
		Age:           *req.Age,
		Gender:        strings.TrimSpace(req.Gender),
		Weight:        *req.Weight,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Grade:         strings.TrimSpace(req.Grade),
		Antecedents:   req.Antecedents,
		Etablissement: req.Etablissement,
		Medicin:       req.Medicin,
		Specialite:    req.Specialite,
		Service:       req.Service,
	}

	created, createdPreps, err := s.repo.Create(ctx, patient, preps)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la création du patient")
	}

	s.notifier.NotifyCreated(ctx, createdPreps)
	s.logger.InfoContext(ctx, "patient créé", "patient_id", created.ID, "preparations", len(createdPreps))

	return &dto.PatientWithPreparations{Patient: *created, Preparations: createdPreps}, nil
}

func (s *PatientsService) ListPatients(ctx context.Context) ([]dto.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la récupération des patients")
	}
	if patients == nil {
		patients = []dto.Patient{}
	}
	return patients, nil
}

// GetPatient patient avec ses préparations
func (s *PatientsService) GetPatient(ctx context.Context, id int64) (*dto.PatientWithPreparations, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la récupération du patient")
	}
	if patient == nil {
		return nil, patientNotFound()
	}

	preps, err := s.repo.ListPreparations(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la récupération des préparations du patient")
	}
	if preps == nil {
		preps = []prepdto.MedicinePreparation{}
	}

	return &dto.PatientWithPreparations{Patient: *patient, Preparations: preps}, nil
}

// UpdatePatient fusionne les champs fournis, le dernier écrivain gagne
func (s *PatientsService) UpdatePatient(ctx context.Context, id int64, req dto.UpdatePatientRequest) (*dto.Patient, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la modification du patient")
	}
	if existing == nil {
		return nil, patientNotFound()
	}

	merged := mergePatient(*existing, req)
	updated, err := s.repo.Update(ctx, &merged)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la modification du patient")
	}
	if updated == nil {
		return nil, patientNotFound()
	}
	return updated, nil
}

// DeletePatient supprime le patient et ses préparations
func (s *PatientsService) DeletePatient(ctx context.Context, id int64) error {
	ids, found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(err, "Erreur lors de la suppression du patient")
	}
	if !found {
		return patientNotFound()
	}

	s.notifier.NotifyDeleted(ctx, id, ids)
	s.logger.InfoContext(ctx, "patient supprimé", "patient_id", id, "preparations", len(ids))
	return nil
}

func mergePatient(p dto.Patient, req dto.UpdatePatientRequest) dto.Patient {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		p.Age = *req.Age
	}
	if req.Gender != nil {
		p.Gender = strings.TrimSpace(*req.Gender)
	}
	if req.Weight != nil {
		p.Weight = *req.Weight
	}
	if req.PhoneNumber != nil {
		p.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Grade != nil {
		p.Grade = strings.TrimSpace(*req.Grade)
	}
	if req.Antecedents != nil {
		p.Antecedents = req.Antecedents
	}
	if req.Etablissement != nil {
		p.Etablissement = req.Etablissement
	}
	if req.Medicin != nil {
		p.Medicin = req.Medicin
	}
	if req.Specialite != nil {
		p.Specialite = req.Specialite
	}
	if req.Service != nil {
		p.Service = req.Service
	}
	return p
}
