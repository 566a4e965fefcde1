package config

import "time"

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./skill_exchange.db"

	DefaultHost = "0.0.0.0"
	DefaultPort = 5000

	// DefaultPresenceWindow is how long a user stays "live" after their last request
	DefaultPresenceWindow = 5 * time.Minute
)
