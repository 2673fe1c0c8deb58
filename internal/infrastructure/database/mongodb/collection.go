package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JournalCollection journal des événements de préparation (traçabilité pharmaceutique)
const JournalCollection = "preparation_journal"

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// EnsureJournalCollection crée la collection du journal avec son schéma et ses index
func (cm *CollectionManager) EnsureJournalCollection(ctx context.Context) error {
	exists, err := cm.CollectionExists(ctx, JournalCollection)
	if err != nil {
		return err
	}

	if !exists {
		validator := bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": []string{"preparation_id", "type", "occurred_at"},
				"properties": bson.M{
					"preparation_id": bson.M{
						"bsonType":    "long",
						"description": "Identifiant de la préparation",
					},
					"patient_id": bson.M{
						"bsonType":    "long",
						"description": "Identifiant du patient",
					},
					"type": bson.M{
						"enum":        []string{"creation", "changement_statut", "modification", "erreur_medicamenteuse", "suppression"},
						"description": "Type d'événement",
					},
					"occurred_at": bson.M{
						"bsonType":    "date",
						"description": "Date de l'événement",
					},
				},
			},
		}

		opts := options.CreateCollection().SetValidator(validator)
		if err := cm.client.CreateCollection(ctx, JournalCollection, opts); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", JournalCollection, err)
		}
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "preparation_id", Value: 1}, {Key: "occurred_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "patient_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "type", Value: 1}},
		},
	}

	return cm.client.CreateIndexes(ctx, JournalCollection, indexes)
}

func (cm *CollectionManager) CollectionExists(ctx context.Context, name string) (bool, error) {
	collections, err := cm.client.ListCollectionNames(ctx)
	if err != nil {
		return false, err
	}

	for _, coll := range collections {
		if coll == name {
			return true, nil
		}
	}
	return false, nil
}
