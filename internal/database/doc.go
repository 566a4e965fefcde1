// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, skill seeding, schema check
//	├── users/           # Registration, lookup, teaching/learning lists
//	├── skills/          # Skill catalogue, browse counts, teachers per skill
//	├── exchanges/       # Exchange requests, acceptance, per-user history
//	├── stats/           # Row counts for the stats API
//	└── activity/        # Activity event log
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./skill_exchange.db")
//
//	usersRepo := users.NewRepository(db.DB)
//	exchangesRepo := exchanges.NewRepository(db.DB)
//
//	user, err := usersRepo.GetByEmail("ada@example.com")
//	history, err := exchangesRepo.ForUser(user.ID)
//
// # Interface Implementations
//
// The HTTP and auth layers depend on narrow interfaces. Compile-time checks
// live in internal/interfaces.
package database
