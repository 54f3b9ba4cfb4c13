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

const banDalName = "ban_dal"

type BanDal interface {
	// GetBanRecord gets the ban record for a user. It returns nil with no error
	// when the user has never been banned.
	GetBanRecord(ctx context.Context, userID string) (*entities.BanRecord, error)

	// UpsertBanRecord saves a ban record, creating it on first write.
	UpsertBanRecord(ctx context.Context, record *entities.BanRecord) error
}

type banDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewBanDal creates a new ticket ban data access layer.
func NewBanDal() BanDal {
	l := slog.Default().With(slog.String(logging.KeyDal, banDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &banDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (d *banDalImpl) GetBanRecord(ctx context.Context, userID string) (*entities.BanRecord, error) {
	// Get the bans collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionBans)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(banDalName, "get_ban_record", mongoDatabase, collectionBans).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(banDalName, "get_ban_record", mongoDatabase, collectionBans))
	defer t.ObserveDuration()

	record := new(entities.BanRecord)
	err := collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting ban record: %w", err)
	}
	return record, nil
}

func (d *banDalImpl) UpsertBanRecord(ctx context.Context, record *entities.BanRecord) error {
	// Get the bans collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionBans)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(banDalName, "upsert_ban_record", mongoDatabase, collectionBans).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(banDalName, "upsert_ban_record", mongoDatabase, collectionBans))
	defer t.ObserveDuration()

	// Save the ban record.
	opts := options.Update().SetUpsert(true)
	_, err := collection.UpdateOne(ctx, bson.M{"user_id": record.UserID}, bson.M{"$set": record}, opts)
	if err != nil {
		return fmt.Errorf("error updating ban record: %w", err)
	}
	return nil
}
