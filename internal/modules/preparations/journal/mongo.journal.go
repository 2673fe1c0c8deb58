package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pharma-prep-core/internal/infrastructure/database/mongodb"
	"pharma-prep-core/internal/modules/preparations/dto"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const maxEventsPerPreparation = 500

type actorDocument struct {
	ID    int64  `bson:"id"`
	Email string `bson:"email"`
	Role  string `bson:"role"`
}

type eventDocument struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty"`
	PreparationID  int64                  `bson:"preparation_id"`
	PatientID      int64                  `bson:"patient_id"`
	Type           string                 `bson:"type"`
	PreviousStatut string                 `bson:"previous_statut,omitempty"`
	Statut         string                 `bson:"statut,omitempty"`
	Actor          *actorDocument         `bson:"actor,omitempty"`
	Data           map[string]interface{} `bson:"data,omitempty"`
	OccurredAt     time.Time              `bson:"occurred_at"`
}

// MongoJournal journal des préparations stocké dans la collection preparation_journal
type MongoJournal struct {
	client *mongodb.Client
}

func NewMongoJournal(client *mongodb.Client) *MongoJournal {
	return &MongoJournal{client: client}
}

func (j *MongoJournal) collection() (*mongo.Collection, error) {
	coll, err := j.client.Collection(mongodb.JournalCollection)
	if err != nil {
		if errors.Is(err, mongodb.ErrUnavailable) {
			return nil, dto.ErrJournalUnavailable
		}
		return nil, err
	}
	return coll, nil
}

func (j *MongoJournal) Record(ctx context.Context, event dto.JournalEvent) error {
	coll, err := j.collection()
	if err != nil {
		return err
	}

	if _, err := coll.InsertOne(ctx, toDocument(event)); err != nil {
		return fmt.Errorf("insertion événement journal: %w", err)
	}
	return nil
}

func (j *MongoJournal) ListByPreparation(ctx context.Context, preparationID int64) ([]dto.JournalEvent, error) {
	coll, err := j.collection()
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(maxEventsPerPreparation)

	cursor, err := coll.Find(ctx, bson.M{"preparation_id": preparationID}, opts)
	if err != nil {
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
			return nil, fmt.Errorf("%w: %v", dto.ErrJournalUnavailable, err)
		}
		return nil, fmt.Errorf("lecture journal: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []eventDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("décodage journal: %w", err)
	}

	events := make([]dto.JournalEvent, 0, len(docs))
	for _, doc := range docs {
		events = append(events, fromDocument(doc))
	}
	return events, nil
}

func toDocument(event dto.JournalEvent) eventDocument {
	doc := eventDocument{
		PreparationID:  event.PreparationID,
		PatientID:      event.PatientID,
		Type:           event.Type,
		PreviousStatut: string(event.PreviousStatut),
		Statut:         string(event.Statut),
		Data:           event.Data,
		OccurredAt:     event.OccurredAt,
	}
	if event.Actor != nil {
		doc.Actor = &actorDocument{ID: event.Actor.ID, Email: event.Actor.Email, Role: event.Actor.Role}
	}
	return doc
}

func fromDocument(doc eventDocument) dto.JournalEvent {
	event := dto.JournalEvent{
		ID:             doc.ID.Hex(),
		PreparationID:  doc.PreparationID,
		PatientID:      doc.PatientID,
		Type:           doc.Type,
		PreviousStatut: dto.Statut(doc.PreviousStatut),
		Statut:         dto.Statut(doc.Statut),
		Data:           doc.Data,
		OccurredAt:     doc.OccurredAt.UTC(),
	}
	if doc.Actor != nil {
		event.Actor = &dto.JournalActor{ID: doc.Actor.ID, Email: doc.Actor.Email, Role: doc.Actor.Role}
	}
	return event
}
