package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/fenrir/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/fenrir/pkg/entities"
	"github.com/Jacobbrewer1/fenrir/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const ticketDalName = "ticket_dal"

// CloseFields are the closure fields applied alongside a conditional status
// update to CLOSED.
type CloseFields struct {
	// ClosedBy is the ID of the user that closed the ticket.
	ClosedBy string

	// ClosedAt is the time that the ticket was closed.
	ClosedAt *time.Time

	// Transcript is the captured channel history.
	Transcript string
}

type TicketDal interface {
	// CreateTicket persists a new ticket. An ID is assigned if the ticket does
	// not already carry one.
	CreateTicket(ctx context.Context, ticket *entities.Ticket) error

	// GetTicketByChannel gets the ticket for a channel. It returns nil with no
	// error when the channel has no ticket record.
	GetTicketByChannel(ctx context.Context, guildID, channelID string) (*entities.Ticket, error)

	// ConditionalUpdateStatus transitions a ticket's status only if its current
	// status is one of from, applying fields in the same update. It reports
	// whether the update actually applied, so the caller can distinguish "I
	// closed it" from "it was already closed".
	ConditionalUpdateStatus(ctx context.Context, id string, from []entities.TicketStatus, to entities.TicketStatus, fields *CloseFields) (bool, error)

	// ConditionalSetClaimant sets the ticket's claimant only if it is currently
	// unset. It reports whether the claim applied.
	ConditionalSetClaimant(ctx context.Context, id, userID string) (bool, error)

	// CountOpenTickets counts the tickets a user currently has open in a guild.
	CountOpenTickets(ctx context.Context, guildID, openerID string) (int64, error)
}

type ticketDalImpl struct {
	// l is the logger.
	l *slog.Logger

	// client is the database.
	client *mongo.Client
}

// NewTicketDal creates a new ticket data access layer.
func NewTicketDal() TicketDal {
	l := slog.Default().With(slog.String(logging.KeyDal, ticketDalName))

	if MongoDB == nil {
		l.Warn("MongoDB is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDalImpl{
		l:      l,
		client: MongoDB,
	}
}

func (d *ticketDalImpl) CreateTicket(ctx context.Context, ticket *entities.Ticket) error {
	// Get the tickets collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionTickets)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "create_ticket", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "create_ticket", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	if ticket.ID == "" {
		ticket.ID = primitive.NewObjectID().Hex()
	}

	if _, err := collection.InsertOne(ctx, ticket); err != nil {
		return fmt.Errorf("error inserting ticket: %w", err)
	}
	return nil
}

func (d *ticketDalImpl) GetTicketByChannel(ctx context.Context, guildID, channelID string) (*entities.Ticket, error) {
	// Get the tickets collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionTickets)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "get_ticket_by_channel", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "get_ticket_by_channel", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	// Get the ticket.
	ticket := new(entities.Ticket)
	err := collection.FindOne(ctx, bson.M{
		"guild_id":   guildID,
		"channel_id": channelID,
	}).Decode(ticket)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// A channel without a ticket record is not an error to the caller.
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting ticket: %w", err)
	}

	return ticket, nil
}

func (d *ticketDalImpl) ConditionalUpdateStatus(ctx context.Context, id string, from []entities.TicketStatus, to entities.TicketStatus, fields *CloseFields) (bool, error) {
	// Get the tickets collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionTickets)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "conditional_update_status", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "conditional_update_status", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	set := bson.M{"status": to}
	if fields != nil {
		set["closed_by"] = fields.ClosedBy
		set["closed_at"] = fields.ClosedAt
		set["transcript"] = fields.Transcript
	}

	// The status filter makes the transition atomic; a concurrent update that
	// already moved the ticket out of the from set leaves nothing matched.
	res, err := collection.UpdateOne(ctx, bson.M{
		"id":     id,
		"status": bson.M{"$in": from},
	}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("error updating ticket status: %w", err)
	}

	return res.ModifiedCount > 0, nil
}

func (d *ticketDalImpl) ConditionalSetClaimant(ctx context.Context, id, userID string) (bool, error) {
	// Get the tickets collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionTickets)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "conditional_set_claimant", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "conditional_set_claimant", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	// Only an unclaimed ticket matches, so two concurrent claimants cannot both
	// succeed.
	res, err := collection.UpdateOne(ctx, bson.M{
		"id":         id,
		"claimed_by": "",
	}, bson.M{"$set": bson.M{"claimed_by": userID}})
	if err != nil {
		return false, fmt.Errorf("error setting ticket claimant: %w", err)
	}

	return res.ModifiedCount > 0, nil
}

func (d *ticketDalImpl) CountOpenTickets(ctx context.Context, guildID, openerID string) (int64, error) {
	// Get the tickets collection.
	collection := d.client.Database(mongoDatabase).Collection(collectionTickets)

	// Start the prometheus metrics.
	monitoring.MongoTotalRequests.WithLabelValues(ticketDalName, "count_open_tickets", mongoDatabase, collectionTickets).Inc()
	t := prometheus.NewTimer(monitoring.MongoLatency.WithLabelValues(ticketDalName, "count_open_tickets", mongoDatabase, collectionTickets))
	defer t.ObserveDuration()

	count, err := collection.CountDocuments(ctx, bson.M{
		"guild_id":  guildID,
		"opener_id": openerID,
		"status":    bson.M{"$ne": entities.TicketStatusClosed},
	})
	if err != nil {
		return 0, fmt.Errorf("error counting open tickets: %w", err)
	}
	return count, nil
}
