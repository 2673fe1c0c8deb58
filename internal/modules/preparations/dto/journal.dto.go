package dto

import "time"

// Types d'événements du journal
const (
	EventCreation             = "creation"
	EventChangementStatut     = "changement_statut"
	EventModification         = "modification"
	EventErreurMedicamenteuse = "erreur_medicamenteuse"
	EventSuppression          = "suppression"
)

// JournalActor utilisateur à l'origine d'un événement
type JournalActor struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// JournalEvent entrée du journal de traçabilité d'une préparation
type JournalEvent struct {
	ID             string                 `json:"id"`
	PreparationID  int64                  `json:"preparationId"`
	PatientID      int64                  `json:"patientId"`
	Type           string                 `json:"type"`
	PreviousStatut Statut                 `json:"previousStatut,omitempty"`
	Statut         Statut                 `json:"statut,omitempty"`
	Actor          *JournalActor          `json:"actor"`
	Data           map[string]interface{} `json:"data,omitempty"`
	OccurredAt     time.Time              `json:"occurredAt"`
}
