package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pharma-prep-core/internal/modules/preparations/dto"
	apperrors "pharma-prep-core/internal/shared/errors"
	"pharma-prep-core/internal/shared/identity"
)

// PreparationsRepository persistance des préparations
type PreparationsRepository interface {
	// CreateForPatient insère le lot dans une transaction, ErrPatientNotFound si le patient est absent
	CreateForPatient(ctx context.Context, patientID int64, preps []*dto.MedicinePreparation) ([]dto.MedicinePreparation, error)
	GetByID(ctx context.Context, id int64) (*dto.MedicinePreparation, error)
	List(ctx context.Context, filter dto.ListFilter) ([]dto.MedicinePreparation, error)
	PatientExists(ctx context.Context, patientID int64) (bool, error)
	// UpdateStatut est conditionnel au statut lu, nil si la ligne a changé entre-temps
	UpdateStatut(ctx context.Context, id int64, from, to dto.Statut, numeroGellule *int, volumeExipient *float64) (*dto.MedicinePreparation, error)
	// Update réécrit les champs cliniques et EM du couple (patient, préparation), nil si absent
	Update(ctx context.Context, prep *dto.MedicinePreparation) (*dto.MedicinePreparation, error)
	Delete(ctx context.Context, id int64) (patientID int64, found bool, err error)
	CountByStatut(ctx context.Context) (map[dto.Statut]int64, error)
}

// CountsCache cache des comptages par statut
type CountsCache interface {
	Get(ctx context.Context) (*dto.Counts, error)
	Set(ctx context.Context, counts *dto.Counts) error
	Invalidate(ctx context.Context) error
}

// Journal traçabilité des événements, ErrJournalUnavailable si le stockage est hors ligne
type Journal interface {
	Record(ctx context.Context, event dto.JournalEvent) error
	ListByPreparation(ctx context.Context, preparationID int64) ([]dto.JournalEvent, error)
}

type PreparationsService struct {
	repo    PreparationsRepository
	cache   CountsCache
	journal Journal
	logger  *slog.Logger
	now     func() time.Time
}

func NewPreparationsService(repo PreparationsRepository, cache CountsCache, journal Journal, logger *slog.Logger) *PreparationsService {
	return &PreparationsService{
		repo:    repo,
		cache:   cache,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

func preparationNotFound() error {
	return apperrors.NotFound("PREPARATION_NOT_FOUND", "Préparation non trouvée")
}

func patientNotFound() error {
	return apperrors.NotFound("PATIENT_NOT_FOUND", "Patient non trouvé")
}

// AddPreparations ajoute un lot de préparations à un patient, tout ou rien
func (s *PreparationsService) AddPreparations(ctx context.Context, patientID int64, inputs []dto.PreparationInput) ([]dto.MedicinePreparation, error) {
	preps, err := BuildPreparations(patientID, inputs)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateForPatient(ctx, patientID, preps)
	if err != nil {
		if errors.Is(err, dto.ErrPatientNotFound) {
			return nil, patientNotFound()
		}
		return nil, apperrors.Internal(err, "Erreur lors de l'ajout des préparations")
	}

	s.NotifyCreated(ctx, created)
	return created, nil
}

func (s *PreparationsService) GetPreparation(ctx context.Context, id int64) (*dto.MedicinePreparation, error) {
	prep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la récupération de la préparation")
	}
	if prep == nil {
		return nil, preparationNotFound()
	}
	return prep, nil
}

// ListPreparations liste filtrée, un patient inconnu donne 404
func (s *PreparationsService) ListPreparations(ctx context.Context, filter dto.ListFilter) ([]dto.MedicinePreparation, error) {
	if filter.PatientID != nil {
		exists, err := s.repo.PatientExists(ctx, *filter.PatientID)
		if err != nil {
			return nil, apperrors.Internal(err, "Erreur lors de la récupération des préparations")
		}
		if !exists {
			return nil, patientNotFound()
		}
	}

	preps, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la récupération des préparations")
	}
	return preps, nil
}

// UpdateStatut fait avancer une préparation dans le circuit
func (s *PreparationsService) UpdateStatut(ctx context.Context, id int64, req dto.StatutUpdateRequest) (*dto.MedicinePreparation, error) {
	target, err := ParseStatut(req.Statut)
	if err != nil {
		return nil, err
	}

	current, err := s.GetPreparation(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateFinishingFields(target, req); err != nil {
		return nil, err
	}
	if current.Statut == target {
		return current, nil
	}

	if err := ValidateStatutChange(current.Statut, target, req); err != nil {
		return nil, err
	}

	var numeroGellule *int
	var volumeExipient *float64
	if target == dto.StatutTermine {
		numeroGellule = req.NumeroGellule
		volumeExipient = req.VolumeExipient
	}

	updated, err := s.repo.UpdateStatut(ctx, id, current.Statut, target, numeroGellule, volumeExipient)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors du changement de statut")
	}
	if updated == nil {
		return nil, apperrors.Conflict("STATUT_MODIFIE_CONCURRENT", "Le statut a été modifié entre-temps, rechargez la préparation", map[string]interface{}{
			"statut_lu": current.Statut,
		})
	}

	s.invalidateCounts(ctx)
	s.record(ctx, dto.JournalEvent{
		PreparationID:  updated.ID,
		PatientID:      updated.PatientID,
		Type:           dto.EventChangementStatut,
		PreviousStatut: current.Statut,
		Statut:         updated.Statut,
		Data:           finishingData(updated),
	})

	return updated, nil
}

// UpdatePreparation remplace les champs cliniques et EM d'une préparation du patient
func (s *PreparationsService) UpdatePreparation(ctx context.Context, patientID, id int64, input dto.PreparationInput) (*dto.MedicinePreparation, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la modification de la préparation")
	}
	if existing == nil || existing.PatientID != patientID {
		return nil, preparationNotFound()
	}

	next := *existing
	if err := ApplyInput(&next, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors de la modification de la préparation")
	}
	if updated == nil {
		return nil, preparationNotFound()
	}

	s.record(ctx, dto.JournalEvent{
		PreparationID: updated.ID,
		PatientID:     updated.PatientID,
		Type:          dto.EventModification,
		Statut:        updated.Statut,
		Data: map[string]interface{}{
			"dci":            updated.Dci,
			"nombreGellules": updated.NombreGellules,
			"comprimeEcrase": updated.ComprimeEcrase,
		},
	})
	if updated.Erreur && !existing.Erreur {
		s.record(ctx, erreurEvent(*updated))
	}

	return updated, nil
}

func (s *PreparationsService) DeletePreparation(ctx context.Context, id int64) error {
	patientID, found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperrors.Internal(err, "Erreur lors de la suppression de la préparation")
	}
	if !found {
		return preparationNotFound()
	}

	s.NotifyDeleted(ctx, patientID, []int64{id})
	return nil
}

// GetCounts comptages par statut, servis depuis Redis quand c'est possible
func (s *PreparationsService) GetCounts(ctx context.Context) (*dto.Counts, error) {
	if cached, err := s.cache.Get(ctx); err != nil {
		s.logger.WarnContext(ctx, "lecture cache comptages échouée", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	byStatut, err := s.repo.CountByStatut(ctx)
	if err != nil {
		return nil, apperrors.Internal(err, "Erreur lors du comptage des préparations")
	}

	counts := &dto.Counts{Groups: make([]dto.StatutCount, 0, len(dto.Statuts))}
	for _, statut := range dto.Statuts {
		n := byStatut[statut]
		counts.Groups = append(counts.Groups, dto.StatutCount{Statut: statut, Count: n})
		counts.Total += n
	}

	if err := s.cache.Set(ctx, counts); err != nil {
		s.logger.WarnContext(ctx, "écriture cache comptages échouée", "error", err)
	}
	return counts, nil
}

// GetJournal événements d'une préparation, du plus récent au plus ancien
func (s *PreparationsService) GetJournal(ctx context.Context, id int64) ([]dto.JournalEvent, error) {
	events, err := s.journal.ListByPreparation(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrJournalUnavailable) {
			return nil, apperrors.Unavailable("JOURNAL_INDISPONIBLE", "Journal des préparations indisponible", err)
		}
		return nil, apperrors.Internal(err, "Erreur lors de la lecture du journal")
	}
	return events, nil
}

// NotifyCreated journalise des préparations créées et invalide les comptages.
// Utilisé aussi par la création de patient avec préparations imbriquées.
func (s *PreparationsService) NotifyCreated(ctx context.Context, preps []dto.MedicinePreparation) {
	if len(preps) == 0 {
		return
	}
	s.invalidateCounts(ctx)
	for _, prep := range preps {
		s.record(ctx, dto.JournalEvent{
			PreparationID: prep.ID,
			PatientID:     prep.PatientID,
			Type:          dto.EventCreation,
			Statut:        prep.Statut,
			Data:          map[string]interface{}{"dci": prep.Dci},
		})
		if prep.Erreur {
			s.record(ctx, erreurEvent(prep))
		}
	}
}

// NotifyDeleted journalise des suppressions et invalide les comptages
func (s *PreparationsService) NotifyDeleted(ctx context.Context, patientID int64, ids []int64) {
	if len(ids) == 0 {
		return
	}
	s.invalidateCounts(ctx)
	for _, id := range ids {
		s.record(ctx, dto.JournalEvent{
			PreparationID: id,
			PatientID:     patientID,
			Type:          dto.EventSuppression,
		})
	}
}

func (s *PreparationsService) invalidateCounts(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WarnContext(ctx, "invalidation cache comptages échouée", "error", err)
	}
}

// record écrit dans le journal sans jamais faire échouer l'écriture métier
func (s *PreparationsService) record(ctx context.Context, event dto.JournalEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if user, ok := identity.FromContext(ctx); ok {
		event.Actor = &dto.JournalActor{ID: user.ID, Email: user.Email, Role: user.Role}
	}

	if err := s.journal.Record(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "écriture journal préparation échouée",
			"preparation_id", event.PreparationID,
			"type", event.Type,
			"error", err,
		)
	}
}

func erreurEvent(prep dto.MedicinePreparation) dto.JournalEvent {
	data := map[string]interface{}{}
	if prep.NumLot != nil {
		data["numLot"] = *prep.NumLot
	}
	if prep.ErreurNature != nil {
		data["erreurNature"] = *prep.ErreurNature
	}
	if prep.ErreurEvitabilite != nil {
		data["erreurEvitabilite"] = *prep.ErreurEvitabilite
	}
	return dto.JournalEvent{
		PreparationID: prep.ID,
		PatientID:     prep.PatientID,
		Type:          dto.EventErreurMedicamenteuse,
		Statut:        prep.Statut,
		Data:          data,
	}
}

func finishingData(prep *dto.MedicinePreparation) map[string]interface{} {
	if prep.Statut != dto.StatutTermine {
		return nil
	}
	return map[string]interface{}{
		"numeroGellule":  prep.NumeroGellule,
		"volumeExipient": prep.VolumeExipient,
	}
}
