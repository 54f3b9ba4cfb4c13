package logging

const (
	// EnvLogLevel is the environment variable for the minimum log level.
	EnvLogLevel = `LOG_LEVEL`

	// KeyAppName is the logging key for the application name.
	KeyAppName = "app"

	// KeyError is the logging key for errors.
	KeyError = "err"

	// KeyDal is the logging key for the data access layer in use.
	KeyDal = "dal"

	// KeyGuild is the logging key for a guild ID.
	KeyGuild = "guild"

	// KeyChannel is the logging key for a channel ID.
	KeyChannel = "channel"

	// KeyTicket is the logging key for a ticket ID.
	KeyTicket = "ticket"

	// KeyUser is the logging key for a user ID.
	KeyUser = "user"

	// KeyIdentifier is the logging key for an interaction identifier.
	KeyIdentifier = "identifier"
)
