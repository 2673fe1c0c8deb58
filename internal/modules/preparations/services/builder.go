package services

import (
	"strings"
	"time"

	"pharma-prep-core/internal/modules/preparations/dto"
	apperrors "pharma-prep-core/internal/shared/errors"
)

const dateOnlyLayout = "2006-01-02"

// maxComprimeEcrase borne de la colonne comprime_ecrase NUMERIC(12, 2)
const maxComprimeEcrase = 1e10

// ParseDate accepte YYYY-MM-DD ou RFC 3339, une chaîne vide vaut absence
func ParseDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}

	raw := strings.TrimSpace(*value)
	for _, layout := range []string{dateOnlyLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}

	return nil, apperrors.Validation("INVALID_DATE", "Date invalide", map[string]interface{}{
		"champs": map[string]string{field: "Format attendu YYYY-MM-DD ou RFC 3339"},
		"valeur": raw,
	})
}

// BuildPreparation construit une nouvelle préparation au statut A_faire
func BuildPreparation(patientID int64, input dto.PreparationInput) (*dto.MedicinePreparation, error) {
	prep := &dto.MedicinePreparation{
		PatientID: patientID,
		Statut:    dto.StatutAFaire,
	}
	if err := ApplyInput(prep, input); err != nil {
		return nil, err
	}
	return prep, nil
}

// BuildPreparations construit un lot, la première entrée invalide interrompt tout
func BuildPreparations(patientID int64, inputs []dto.PreparationInput) ([]*dto.MedicinePreparation, error) {
	preps := make([]*dto.MedicinePreparation, 0, len(inputs))
	for i, input := range inputs {
		prep, err := BuildPreparation(patientID, input)
		if err != nil {
			if svcErr, ok := apperrors.As(err); ok {
				svcErr.WithDetail("index", i)
			}
			return nil, err
		}
		preps = append(preps, prep)
	}
	return preps, nil
}

// ApplyInput remplace les champs cliniques et EM puis recalcule les champs dérivés.
// Statut et champs de terminaison ne sont pas modifiés.
func ApplyInput(prep *dto.MedicinePreparation, input dto.PreparationInput) error {
	preparationDate, err := ParseDate("preparationDate", input.PreparationDate)
	if err != nil {
		return err
	}
	peremptionDate, err := ParseDate("peremptionDate", input.PeremptionDate)
	if err != nil {
		return err
	}
	dateSurvenue, err := ParseDate("dateSurvenue", input.DateSurvenue)
	if err != nil {
		return err
	}

	prep.Dci = strings.TrimSpace(input.Dci)
	prep.NomCom = input.NomCom
	prep.Indication = input.Indication
	prep.DosageInitial = input.DosageInitial
	prep.DosageAdapte = input.DosageAdapte
	prep.ModeEmploi = input.ModeEmploi
	prep.VoieAdministration = input.VoieAdministration
	prep.Qsp = input.Qsp
	prep.Excipient = input.Excipient
	prep.PreparationDate = preparationDate
	prep.PeremptionDate = peremptionDate

	prep.Erreur = input.Erreur != nil && *input.Erreur
	prep.NumLot = input.NumLot
	prep.ErreurDescription = input.ErreurDescription
	prep.ActionsEntreprises = input.ActionsEntreprises
	prep.Consequences = input.Consequences
	prep.ErreurCause = input.ErreurCause
	prep.ErreurNature = input.ErreurNature
	prep.ErreurEvitabilite = input.ErreurEvitabilite
	prep.DateSurvenue = dateSurvenue

	prep.NombreGellules = ComputeNombreGellules(prep.Qsp, prep.ModeEmploi)
	prep.ComprimeEcrase = ComputeComprimeEcrase(prep.DosageAdapte, prep.DosageInitial, prep.Qsp, prep.ModeEmploi)
	if prep.ComprimeEcrase != nil && *prep.ComprimeEcrase >= maxComprimeEcrase {
		return apperrors.Validation("VALEUR_HORS_LIMITES", "Comprimé écrasé hors limites, vérifier les dosages", map[string]interface{}{
			"champs": map[string]string{"dosageInitial": "Trop faible au regard du dosage adapté"},
		})
	}
	return nil
}
