package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/fenrir/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
	"github.com/Jacobbrewer1/fenrir/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const guildConfigDalName = "guild_config_dal"

type GuildConfigDal interface {
	// GetGuildConfig gets the configuration for a guild. It returns nil with no
	// error when the guild has no configuration yet.
	GetGuildConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error)

	// UpsertGuildConfig saves a guild configuration, creating it on first write.
	UpsertGuildConfig(ctx context.Context, cfg *entities.GuildConfig) error
}

type guildConfigDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewGuildConfigDal creates a new guild configuration data access layer.
func NewGuildConfigDal() GuildConfigDal {
	l := slog.Default().With(slog.String(logging.KeyDal, guildConfigDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &guildConfigDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (d *guildConfigDalImpl) GetGuildConfig(ctx context.Context, guildID string) (*entities.GuildConfig, error) {
	// Get the guild config collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionGuildConfigs)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(guildConfigDalName, "get_guild_config", mongoDatabase, collectionGuildConfigs).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildConfigDalName, "get_guild_config", mongoDatabase, collectionGuildConfigs))
	defer t.ObserveDuration()

	// Get the guild config.
	cfg := new(entities.GuildConfig)
	err := collection.FindOne(ctx, bson.M{"id": guildID}).Decode(cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Configuration is created lazily; absence is not an error.
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting guild config: %w", err)
	}
	return cfg, nil
}

func (d *guildConfigDalImpl) UpsertGuildConfig(ctx context.Context, cfg *entities.GuildConfig) error {
	// Get the guild config collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionGuildConfigs)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(guildConfigDalName, "upsert_guild_config", mongoDatabase, collectionGuildConfigs).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(guildConfigDalName, "upsert_guild_config", mongoDatabase, collectionGuildConfigs))
	defer t.ObserveDuration()

	// Save the guild config.
	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"id": cfg.ID}, bson.M{"$set": cfg}, opts)
	if err != nil {
		return fmt.Errorf("error updating guild config: %w", err)
	}
	return nil
}
