package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrUnavailable signale que MongoDB n'est pas joignable, l'application continue sans
var ErrUnavailable = errors.New("mongodb indisponible")

type Client struct {
	client    *mongo.Client
	database  *mongo.Database
	available atomic.Bool
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// NewClient prépare le client sans bloquer le démarrage, la disponibilité
// est établie par le hook de lifecycle
func NewClient(config *MongoConfig) (*Client, error) {
	if config.URI == "" {
		return &Client{}, nil
	}

	connectTimeout := config.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}

	clientOptions := options.Client().ApplyURI(config.URI)
	clientOptions.SetMaxPoolSize(50)
	clientOptions.SetMinPoolSize(1)
	clientOptions.SetMaxConnIdleTime(30 * time.Minute)
	clientOptions.SetConnectTimeout(connectTimeout)
	clientOptions.SetServerSelectionTimeout(5 * time.Second)
	clientOptions.SetRetryWrites(true)
	clientOptions.SetRetryReads(true)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	// mongo.Connect ne contacte pas encore le serveur
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to configure MongoDB client: %w", err)
	}

	return &Client{
		client:   mongoClient,
		database: mongoClient.Database(config.Database),
	}, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrUnavailable
	}

	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	return nil
}

func (c *Client) Close(ctx context.Context) error {
	if c.client != nil {
		return c.client.Disconnect(ctx)
	}
	return nil
}

// Available indique si le dernier contrôle a réussi
func (c *Client) Available() bool {
	return c.available.Load()
}

func (c *Client) setAvailable(ok bool) {
	c.available.Store(ok)
}

// Collection retourne ErrUnavailable tant que MongoDB n'a pas répondu
func (c *Client) Collection(name string) (*mongo.Collection, error) {
	if c.database == nil || !c.Available() {
		return nil, ErrUnavailable
	}
	return c.database.Collection(name), nil
}

func (c *Client) CreateCollection(ctx context.Context, name string, opts ...*options.CreateCollectionOptions) error {
	if c.database == nil {
		return ErrUnavailable
	}
	return c.database.CreateCollection(ctx, name, opts...)
}

func (c *Client) ListCollectionNames(ctx context.Context) ([]string, error) {
	if c.database == nil {
		return nil, ErrUnavailable
	}
	return c.database.ListCollectionNames(ctx, bson.D{})
}

func (c *Client) CreateIndexes(ctx context.Context, collection string, models []mongo.IndexModel) error {
	if c.database == nil {
		return ErrUnavailable
	}
	_, err := c.database.Collection(collection).Indexes().CreateMany(ctx, models)
	return err
}

// HealthCheck met à jour la disponibilité et retourne l'erreur de ping
func (c *Client) HealthCheck(ctx context.Context) error {
	err := c.Ping(ctx)
	c.setAvailable(err == nil)
	return err
}
