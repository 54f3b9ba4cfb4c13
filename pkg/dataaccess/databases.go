package dataaccess

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB is the Mongo client. This is a connection pool.
var MongoDB *mongo.Client

const mongoDatabase = "fenrir"

const (
	// collectionTickets is the collection that ticket rows live in.
	collectionTickets = "tickets"

	// collectionGuildConfigs is the collection that guild configurations live in.
	collectionGuildConfigs = "guild_configs"

	// collectionCategories is the collection that ticket categories live in.
	collectionCategories = "ticket_categories"

	// collectionBans is the collection that ticket ban records live in.
	collectionBans = "ticket_bans"
)
