package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/fx"
)

func NewMongoClient(config *MongoConfig) (*Client, error) {
	return NewClient(config)
}

var Module = fx.Options(
	fx.Provide(NewMongoClient),
	fx.Provide(NewCollectionManager),
	fx.Invoke(RegisterLifecycle),
)

func RegisterLifecycle(lc fx.Lifecycle, client *Client, collections *CollectionManager, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := client.HealthCheck(timeoutCtx); err != nil {
				logger.Warn("MongoDB non disponible - continuera sans journal", "error", err)
				return nil // Ne bloque pas le démarrage
			}

			if err := collections.EnsureJournalCollection(timeoutCtx); err != nil {
				logger.Warn("préparation collection journal échouée", "error", err)
				return nil
			}

			logger.Info("MongoDB connecté et opérationnel")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close(ctx)
		},
	})
}
