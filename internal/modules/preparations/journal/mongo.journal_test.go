package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharma-prep-core/internal/infrastructure/database/mongodb"
	"pharma-prep-core/internal/modules/preparations/dto"
)

func TestDocumentMappingKeepsActorAndStatuts(t *testing.T) {
	occurred := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	event := dto.JournalEvent{
		PreparationID:  12,
		PatientID:      3,
		Type:           dto.EventChangementStatut,
		PreviousStatut: dto.StatutEnCours,
		Statut:         dto.StatutTermine,
		Actor:          &dto.JournalActor{ID: 1, Email: "pharma@hopital.fr", Role: "pharmacist"},
		OccurredAt:     occurred,
	}

	back := fromDocument(toDocument(event))
	if back.PreparationID != 12 || back.PatientID != 3 || back.Type != dto.EventChangementStatut {
		t.Fatalf("unexpected event %+v", back)
	}
	if back.PreviousStatut != dto.StatutEnCours || back.Statut != dto.StatutTermine {
		t.Fatalf("statuts lost: %+v", back)
	}
	if back.Actor == nil || back.Actor.Email != "pharma@hopital.fr" {
		t.Fatalf("actor lost: %+v", back.Actor)
	}
	if !back.OccurredAt.Equal(occurred) {
		t.Fatalf("unexpected time %v", back.OccurredAt)
	}
}

func TestJournalUnavailableWithoutMongo(t *testing.T) {
	client, err := mongodb.NewClient(&mongodb.MongoConfig{})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	j := NewMongoJournal(client)

	if err := j.Record(context.Background(), dto.JournalEvent{PreparationID: 1}); !errors.Is(err, dto.ErrJournalUnavailable) {
		t.Fatalf("expected ErrJournalUnavailable, got %v", err)
	}
	if _, err := j.ListByPreparation(context.Background(), 1); !errors.Is(err, dto.ErrJournalUnavailable) {
		t.Fatalf("expected ErrJournalUnavailable, got %v", err)
	}
}
