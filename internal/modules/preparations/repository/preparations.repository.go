package repository

import (
	"context"
	"fmt"

	"pharma-prep-core/internal/infrastructure/database/postgres"
	"pharma-prep-core/internal/modules/preparations/dto"
	"pharma-prep-core/internal/modules/preparations/queries"

	"github.com/jackc/pgx/v5"
)

type PreparationsRepository struct {
	db *postgres.Client
	tx *postgres.TransactionManager
}

func NewPreparationsRepository(db *postgres.Client, tx *postgres.TransactionManager) *PreparationsRepository {
	return &PreparationsRepository{db: db, tx: tx}
}

// CreateForPatient insère le lot dans une seule transaction
func (r *PreparationsRepository) CreateForPatient(ctx context.Context, patientID int64, preps []*dto.MedicinePreparation) ([]dto.MedicinePreparation, error) {
	var created []dto.MedicinePreparation

	err := r.tx.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		summary, err := r.PatientSummary(ctx, tx, patientID)
		if err != nil {
			return err
		}
		if summary == nil {
			return dto.ErrPatientNotFound
		}

		created, err = r.InsertMany(ctx, tx, summary, preps)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// PatientSummary lit et verrouille le patient parent, nil s'il n'existe pas
func (r *PreparationsRepository) PatientSummary(ctx context.Context, q postgres.Querier, patientID int64) (*dto.PatientSummary, error) {
	var summary dto.PatientSummary
	err := q.QueryRow(ctx, queries.PreparationQueries.PatientSummary, patientID).Scan(
		&summary.ID, &summary.Name, &summary.Age, &summary.Gender, &summary.Weight, &summary.Grade, &summary.Service,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lecture patient %d: %w", patientID, err)
	}
	return &summary, nil
}

// InsertMany insère les préparations avec le Querier fourni, utilisé aussi dans la transaction de création patient
func (r *PreparationsRepository) InsertMany(ctx context.Context, q postgres.Querier, patient *dto.PatientSummary, preps []*dto.MedicinePreparation) ([]dto.MedicinePreparation, error) {
	created := make([]dto.MedicinePreparation, 0, len(preps))
	for i, prep := range preps {
		row := *prep
		row.PatientID = patient.ID
		if row.Statut == "" {
			row.Statut = dto.StatutAFaire
		}

		err := q.QueryRow(ctx, queries.PreparationQueries.Insert, insertArgs(&row)...).Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("insertion préparation %d: %w", i, err)
		}

		summary := *patient
		row.Patient = &summary
		created = append(created, row)
	}
	return created, nil
}

// GetByID retourne nil sans erreur si la préparation est absente
func (r *PreparationsRepository) GetByID(ctx context.Context, id int64) (*dto.MedicinePreparation, error) {
	prep, err := scanPreparation(r.db.QueryRow(ctx, queries.PreparationQueries.GetByID, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lecture préparation %d: %w", id, err)
	}
	return prep, nil
}

func (r *PreparationsRepository) List(ctx context.Context, filter dto.ListFilter) ([]dto.MedicinePreparation, error) {
	var statut *string
	if filter.Statut != nil {
		s := string(*filter.Statut)
		statut = &s
	}

	rows, err := r.db.Query(ctx, queries.PreparationQueries.List, statut, filter.PatientID)
	if err != nil {
		return nil, fmt.Errorf("liste préparations: %w", err)
	}
	return collect(rows)
}

// ListByPatient préparations d'un patient, dans ou hors transaction
func (r *PreparationsRepository) ListByPatient(ctx context.Context, q postgres.Querier, patientID int64) ([]dto.MedicinePreparation, error) {
	rows, err := q.Query(ctx, queries.PreparationQueries.ListByPatient, patientID)
	if err != nil {
		return nil, fmt.Errorf("liste préparations patient %d: %w", patientID, err)
	}
	return collect(rows)
}

func (r *PreparationsRepository) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	summary, err := r.PatientSummary(ctx, r.db, patientID)
	return summary != nil, err
}

func (r *PreparationsRepository) UpdateStatut(ctx context.Context, id int64, from, to dto.Statut, numeroGellule *int, volumeExipient *float64) (*dto.MedicinePreparation, error) {
	var updatedID int64
	err := r.db.QueryRow(ctx, queries.PreparationQueries.UpdateStatut,
		id, string(from), string(to), numeroGellule, volumeExipient,
	).Scan(&updatedID)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("changement statut préparation %d: %w", id, err)
	}
	return r.GetByID(ctx, updatedID)
}

func (r *PreparationsRepository) Update(ctx context.Context, prep *dto.MedicinePreparation) (*dto.MedicinePreparation, error) {
	args := append([]interface{}{prep.ID, prep.PatientID}, clinicalArgs(prep)...)

	var updatedID int64
	if err := r.db.QueryRow(ctx, queries.PreparationQueries.Update, args...).Scan(&updatedID); err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("modification préparation %d: %w", prep.ID, err)
	}
	return r.GetByID(ctx, updatedID)
}

func (r *PreparationsRepository) Delete(ctx context.Context, id int64) (int64, bool, error) {
	var patientID int64
	if err := r.db.QueryRow(ctx, queries.PreparationQueries.Delete, id).Scan(&patientID); err != nil {
		if postgres.IsNoRows(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("suppression préparation %d: %w", id, err)
	}
	return patientID, true, nil
}

// DeleteByPatient supprime les préparations d'un patient et retourne leurs ids
func (r *PreparationsRepository) DeleteByPatient(ctx context.Context, q postgres.Querier, patientID int64) ([]int64, error) {
	rows, err := q.Query(ctx, queries.PreparationQueries.DeleteByPatient, patientID)
	if err != nil {
		return nil, fmt.Errorf("suppression préparations patient %d: %w", patientID, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PreparationsRepository) CountByStatut(ctx context.Context) (map[dto.Statut]int64, error) {
	rows, err := r.db.Query(ctx, queries.PreparationQueries.CountByStatut)
	if err != nil {
		return nil, fmt.Errorf("comptage préparations: %w", err)
	}
	defer rows.Close()

	counts := map[dto.Statut]int64{}
	for rows.Next() {
		var statut string
		var count int64
		if err := rows.Scan(&statut, &count); err != nil {
			return nil, err
		}
		counts[dto.Statut(statut)] = count
	}
	return counts, rows.Err()
}

func insertArgs(p *dto.MedicinePreparation) []interface{} {
	return []interface{}{
		p.PatientID, p.Dci, p.NomCom, p.Indication, p.DosageInitial, p.DosageAdapte, p.ModeEmploi,
		p.VoieAdministration, p.Qsp, p.Excipient, p.PreparationDate, p.PeremptionDate, string(p.Statut),
		p.NombreGellules, p.ComprimeEcrase, p.Erreur, p.NumLot, p.ErreurDescription,
		p.ActionsEntreprises, p.Consequences, p.ErreurCause, p.ErreurNature, p.ErreurEvitabilite, p.DateSurvenue,
	}
}

func clinicalArgs(p *dto.MedicinePreparation) []interface{} {
	return []interface{}{
		p.Dci, p.NomCom, p.Indication, p.DosageInitial, p.DosageAdapte,
		p.ModeEmploi, p.VoieAdministration, p.Qsp, p.Excipient,
		p.PreparationDate, p.PeremptionDate, p.NombreGellules, p.ComprimeEcrase,
		p.Erreur, p.NumLot, p.ErreurDescription, p.ActionsEntreprises,
		p.Consequences, p.ErreurCause, p.ErreurNature, p.ErreurEvitabilite,
		p.DateSurvenue,
	}
}

func collect(rows pgx.Rows) ([]dto.MedicinePreparation, error) {
	defer rows.Close()

	preps := []dto.MedicinePreparation{}
	for rows.Next() {
		prep, err := scanPreparation(rows)
		if err != nil {
			return nil, fmt.Errorf("lecture préparation: %w", err)
		}
		preps = append(preps, *prep)
	}
	return preps, rows.Err()
}

func scanPreparation(row pgx.Row) (*dto.MedicinePreparation, error) {
	var p dto.MedicinePreparation
	var statut string
	var patient dto.PatientSummary

	err := row.Scan(
		&p.ID, &p.PatientID, &p.Dci, &p.NomCom, &p.Indication, &p.DosageInitial, &p.DosageAdapte,
		&p.ModeEmploi, &p.VoieAdministration, &p.Qsp, &p.Excipient, &p.PreparationDate, &p.PeremptionDate,
		&statut, &p.NombreGellules, &p.ComprimeEcrase,
		&p.Erreur, &p.NumLot, &p.ErreurDescription, &p.ActionsEntreprises, &p.Consequences,
		&p.ErreurCause, &p.ErreurNature, &p.ErreurEvitabilite, &p.DateSurvenue,
		&p.NumeroGellule, &p.VolumeExipient, &p.CreatedAt, &p.UpdatedAt,
		&patient.ID, &patient.Name, &patient.Age, &patient.Gender, &patient.Weight, &patient.Grade, &patient.Service,
	)
	if err != nil {
		return nil, err
	}

	p.Statut = dto.Statut(statut)
	p.Patient = &patient
	return &p, nil
}
