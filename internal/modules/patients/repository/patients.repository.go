package repository

import (
	"context"
	"fmt"

	"pharma-prep-core/internal/infrastructure/database/postgres"
	"pharma-prep-core/internal/modules/patients/dto"
	"pharma-prep-core/internal/modules/patients/queries"
	prepdto "pharma-prep-core/internal/modules/preparations/dto"
	prepRepository "pharma-prep-core/internal/modules/preparations/repository"

	"github.com/jackc/pgx/v5"
)

type PatientsRepository struct {
	db    *postgres.Client
	tx    *postgres.TransactionManager
	preps *prepRepository.PreparationsRepository
}

func NewPatientsRepository(db *postgres.Client, tx *postgres.TransactionManager, preps *prepRepository.PreparationsRepository) *PatientsRepository {
	return &PatientsRepository{db: db, tx: tx, preps: preps}
}

// Create insère le patient puis ses préparations dans une seule transaction
func (r *PatientsRepository) Create(ctx context.Context, patient *dto.Patient, preps []*prepdto.MedicinePreparation) (*dto.Patient, []prepdto.MedicinePreparation, error) {
	var created *dto.Patient
	createdPreps := []prepdto.MedicinePreparation{}

	err := r.tx.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		var err error
		created, err = scanPatient(tx.QueryRow(ctx, queries.PatientQueries.Create, patientArgs(patient)...))
		if err != nil {
			return fmt.Errorf("création patient: %w", err)
		}

		if len(preps) == 0 {
			return nil
		}
		createdPreps, err = r.preps.InsertMany(ctx, tx, created.Summary(), preps)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return created, createdPreps, nil
}

// GetByID retourne nil sans erreur si l'id est inconnu
func (r *PatientsRepository) GetByID(ctx context.Context, id int64) (*dto.Patient, error) {
	patient, err := scanPatient(r.db.QueryRow(ctx, queries.PatientQueries.GetByID, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lecture patient %d: %w", id, err)
	}
	return patient, nil
}

func (r *PatientsRepository) ListPreparations(ctx context.Context, patientID int64) ([]prepdto.MedicinePreparation, error) {
	return r.preps.ListByPatient(ctx, r.db, patientID)
}

func (r *PatientsRepository) List(ctx context.Context) ([]dto.Patient, error) {
	rows, err := r.db.Query(ctx, queries.PatientQueries.List)
	if err != nil {
		return nil, fmt.Errorf("liste patients: %w", err)
	}
	defer rows.Close()

	patients := []dto.Patient{}
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("lecture patient: %w", err)
		}
		patients = append(patients, *patient)
	}
	return patients, rows.Err()
}

// Update réécrit la ligne fusionnée, nil si le patient a disparu entre-temps
func (r *PatientsRepository) Update(ctx context.Context, patient *dto.Patient) (*dto.Patient, error) {
	args := append([]interface{}{patient.ID}, patientArgs(patient)...)
	updated, err := scanPatient(r.db.QueryRow(ctx, queries.PatientQueries.Update, args...))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("modification patient %d: %w", patient.ID, err)
	}
	return updated, nil
}

// Delete supprime les préparations puis le patient, retourne les ids des préparations supprimées
func (r *PatientsRepository) Delete(ctx context.Context, id int64) ([]int64, bool, error) {
	var deleted []int64
	found := false

	err := r.tx.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		ids, err := r.preps.DeleteByPatient(ctx, tx, id)
		if err != nil {
			return err
		}

		var deletedID int64
		if err := tx.QueryRow(ctx, queries.PatientQueries.Delete, id).Scan(&deletedID); err != nil {
			if postgres.IsNoRows(err) {
				return nil
			}
			return fmt.Errorf("suppression patient %d: %w", id, err)
		}

		found = true
		deleted = ids
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return deleted, found, nil
}

func patientArgs(p *dto.Patient) []interface{} {
	return []interface{}{
		p.Name, p.Age, p.Gender, p.Weight, p.PhoneNumber, p.Grade,
		p.Antecedents, p.Etablissement, p.Medicin, p.Specialite, p.Service,
	}
}

func scanPatient(row pgx.Row) (*dto.Patient, error) {
	var p dto.Patient
	err := row.Scan(
		&p.ID, &p.Name, &p.Age, &p.Gender, &p.Weight, &p.PhoneNumber, &p.Grade,
		&p.Antecedents, &p.Etablissement, &p.Medicin, &p.Specialite, &p.Service,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
