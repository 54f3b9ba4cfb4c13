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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoryDalName = "category_dal"

type CategoryDal interface {
	// CreateCategory persists a new ticket category. Categories are not
	// deduplicated by name; repeated identical submissions create distinct rows.
	CreateCategory(ctx context.Context, category *entities.TicketCategory) error

	// GetCategory gets a category by ID. It returns nil with no error when the
	// category does not exist.
	GetCategory(ctx context.Context, id string) (*entities.TicketCategory, error)

	// ListCategories lists the categories of a guild configuration in creation
	// order.
	ListCategories(ctx context.Context, configID string) ([]*entities.TicketCategory, error)
}

type categoryDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewCategoryDal creates a new ticket category data access layer.
func NewCategoryDal() CategoryDal {
	l := slog.Default().With(slog.String(logging.KeyDal, categoryDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &categoryDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (d *categoryDalImpl) CreateCategory(ctx context.Context, category *entities.TicketCategory) error {
	// Get the categories collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionCategories)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(categoryDalName, "create_category", mongoDatabase, collectionCategories).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(categoryDalName, "create_category", mongoDatabase, collectionCategories))
	defer t.ObserveDuration()

	if category.ID == "" {
		category.ID = primitive.NewObjectID().Hex()
	}

	if _, err := collection.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("error inserting category: %w", err)
	}
	return nil
}

func (d *categoryDalImpl) GetCategory(ctx context.Context, id string) (*entities.TicketCategory, error) {
	// Get the categories collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionCategories)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(categoryDalName, "get_category", mongoDatabase, collectionCategories).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(categoryDalName, "get_category", mongoDatabase, collectionCategories))
	defer t.ObserveDuration()

	category := new(entities.TicketCategory)
	err := collection.FindOne(ctx, bson.M{"id": id}).Decode(category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting category: %w", err)
	}
	return category, nil
}

func (d *categoryDalImpl) ListCategories(ctx context.Context, configID string) ([]*entities.TicketCategory, error) {
	// Get the categories collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionCategories)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(categoryDalName, "list_categories", mongoDatabase, collectionCategories).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(categoryDalName, "list_categories", mongoDatabase, collectionCategories))
	defer t.ObserveDuration()

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := collection.Find(ctx, bson.M{"config_id": configID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	var categories []*entities.TicketCategory
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("error decoding categories: %w", err)
	}
	return categories, nil
}
