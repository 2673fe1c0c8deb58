package services

import (
	"pharma-prep-core/internal/modules/preparations/dto"
	apperrors "pharma-prep-core/internal/shared/errors"
)

// transitions autorisées, le circuit ne revient jamais en arrière
var transitions = map[dto.Statut][]dto.Statut{
	dto.StatutAFaire:  {dto.StatutEnCours, dto.StatutTermine},
	dto.StatutEnCours: {dto.StatutTermine},
	dto.StatutTermine: {},
}

// ParseStatut valide une valeur de statut reçue du client
func ParseStatut(value string) (dto.Statut, error) {
	statut := dto.Statut(value)
	if !statut.IsValid() {
		return "", apperrors.Validation("STATUT_INVALIDE", "Statut invalide", map[string]interface{}{
			"valeur":             value,
			"valeurs_autorisees": dto.Statuts,
		})
	}
	return statut, nil
}

// CanTransition indique si le passage from -> to est permis
func CanTransition(from, to dto.Statut) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateStatutChange contrôle la transition et les champs de terminaison
func ValidateStatutChange(from, to dto.Statut, req dto.StatutUpdateRequest) error {
	if !CanTransition(from, to) {
		return apperrors.Validation("STATUT_TRANSITION_INTERDITE", "Transition de statut non autorisée", map[string]interface{}{
			"de":   from,
			"vers": to,
		})
	}
	return ValidateFinishingFields(to, req)
}

// ValidateFinishingFields exige numeroGellule et volumeExipient pour toute demande Termine,
// y compris sur une préparation déjà terminée
func ValidateFinishingFields(to dto.Statut, req dto.StatutUpdateRequest) error {
	if to != dto.StatutTermine {
		return nil
	}

	champs := map[string]string{}
	if req.NumeroGellule == nil {
		champs["numeroGellule"] = "Requis pour terminer la préparation"
	}
	if req.VolumeExipient == nil {
		champs["volumeExipient"] = "Requis pour terminer la préparation"
	}
	if len(champs) > 0 {
		return apperrors.Validation("CHAMPS_TERMINAISON_REQUIS", "Numéro de gélule et volume d'excipient requis", map[string]interface{}{
			"champs": champs,
		})
	}
	return nil
}
