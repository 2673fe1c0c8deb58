package dto

import (
	"errors"
	"time"
)

// Statut état d'avancement d'une préparation
type Statut string

const (
	StatutAFaire  Statut = "A_faire"
	StatutEnCours Statut = "En_Cours"
	StatutTermine Statut = "Termine"
)

// Statuts dans l'ordre du circuit de préparation
var Statuts = []Statut{StatutAFaire, StatutEnCours, StatutTermine}

func (s Statut) IsValid() bool {
	for _, v := range Statuts {
		if v == s {
			return true
		}
	}
	return false
}

var (
	// ErrPatientNotFound retourné par le repository quand le patient parent n'existe pas
	ErrPatientNotFound = errors.New("patient introuvable")
	// ErrJournalUnavailable retourné par le journal quand MongoDB n'est pas joignable
	ErrJournalUnavailable = errors.New("journal indisponible")
)

// PatientSummary résumé du patient parent renvoyé avec chaque préparation
type PatientSummary struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Age     int     `json:"age"`
	Gender  string  `json:"gender"`
	Weight  float64 `json:"weight"`
	Grade   string  `json:"grade"`
	Service *string `json:"service"`
}

// MedicinePreparation préparation magistrale rattachée à un patient
type MedicinePreparation struct {
	ID                 int64      `json:"id"`
	PatientID          int64      `json:"patientId"`
	Dci                string     `json:"dci"`
	NomCom             *string    `json:"nomCom"`
	Indication         *string    `json:"indication"`
	DosageInitial      *float64   `json:"dosageInitial"`
	DosageAdapte       *float64   `json:"dosageAdapte"`
	ModeEmploi         *int       `json:"modeEmploi"`
	VoieAdministration *string    `json:"voieAdministration"`
	Qsp                *int       `json:"qsp"`
	Excipient          *string    `json:"excipient"`
	PreparationDate    *time.Time `json:"preparationDate"`
	PeremptionDate     *time.Time `json:"peremptionDate"`
	Statut             Statut     `json:"statut"`
	NombreGellules     *int       `json:"nombreGellules"`
	ComprimeEcrase     *float64   `json:"comprimeEcrase"`

	// Erreur médicamenteuse
	Erreur             bool       `json:"erreur"`
	NumLot             *string    `json:"numLot"`
	ErreurDescription  *string    `json:"erreurDescription"`
	ActionsEntreprises *string    `json:"actionsEntreprises"`
	Consequences       *string    `json:"consequences"`
	ErreurCause        *string    `json:"erreurCause"`
	ErreurNature       *string    `json:"erreurNature"`
	ErreurEvitabilite  *string    `json:"erreurEvitabilite"`
	DateSurvenue       *time.Time `json:"dateSurvenue"`

	// Terminaison
	NumeroGellule  *int     `json:"numeroGellule"`
	VolumeExipient *float64 `json:"volumeExipient"`

	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Patient   *PatientSummary `json:"patient,omitempty"`
}

// PreparationInput champs cliniques et EM saisis par le client.
// Les dates acceptent YYYY-MM-DD ou RFC 3339.
type PreparationInput struct {
	Dci                string   `json:"dci" validate:"required,max=255"`
	NomCom             *string  `json:"nomCom" validate:"omitempty,max=255"`
	Indication         *string  `json:"indication"`
	DosageInitial      *float64 `json:"dosageInitial" validate:"omitempty,gte=0,lte=1000000"`
	DosageAdapte       *float64 `json:"dosageAdapte" validate:"omitempty,gte=0,lte=1000000"`
	ModeEmploi         *int     `json:"modeEmploi" validate:"omitempty,gte=0,lte=100"`
	VoieAdministration *string  `json:"voieAdministration" validate:"omitempty,max=100"`
	Qsp                *int     `json:"qsp" validate:"omitempty,gte=0,lte=3650"`
	Excipient          *string  `json:"excipient" validate:"omitempty,max=255"`
	PreparationDate    *string  `json:"preparationDate"`
	PeremptionDate     *string  `json:"peremptionDate"`

	Erreur             *bool   `json:"erreur"`
	NumLot             *string `json:"numLot" validate:"omitempty,max=100"`
	ErreurDescription  *string `json:"erreurDescription"`
	ActionsEntreprises *string `json:"actionsEntreprises"`
	Consequences       *string `json:"consequences"`
	ErreurCause        *string `json:"erreurCause"`
	ErreurNature       *string `json:"erreurNature"`
	ErreurEvitabilite  *string `json:"erreurEvitabilite" validate:"omitempty,max=100"`
	DateSurvenue       *string `json:"dateSurvenue"`
}

// PreparationBatch lot de préparations ajoutées à un patient
type PreparationBatch struct {
	Preparations []PreparationInput `json:"preparations" validate:"required,min=1,dive"`
}

// StatutUpdateRequest changement de statut, les champs de terminaison sont requis pour Termine
type StatutUpdateRequest struct {
	Statut         string   `json:"statut" validate:"required"`
	NumeroGellule  *int     `json:"numeroGellule" validate:"omitempty,gte=0,lte=1000000"`
	VolumeExipient *float64 `json:"volumeExipient" validate:"omitempty,gte=0,lte=1000000"`
}

// ListFilter filtres optionnels de la liste
type ListFilter struct {
	Statut    *Statut
	PatientID *int64
}

type StatutCount struct {
	Statut Statut `json:"statut"`
	Count  int64  `json:"count"`
}

// Counts répartition par statut, les trois statuts sont toujours présents
type Counts struct {
	Groups []StatutCount `json:"groups"`
	Total  int64         `json:"total"`
}
