package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/skillexchange/internal/entities"
)

// DefaultSkills are seeded on every start; existing names are left alone.
var DefaultSkills = []string{
	"Python Programming",
	"Web Development",
	"JavaScript",
	"Database Design",
	"Graphic Design",
	"Digital Marketing",
	"Photography",
	"Video Editing",
	"Music Production",
	"Language Learning",
	"Mathematics",
	"Physics",
	"Data Science",
	"Mobile App Development",
	"UI/UX Design",
	"Content Writing",
}

type Database struct {
	DB *gorm.DB
}

// Options tweak how the database is opened.
type Options struct {
	LogLevel logger.LogLevel
}

func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithOptions(dbPath, Options{LogLevel: logger.Warn})
}

func NewDatabaseWithOptions(dbPath string, opts Options) (*Database, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}

	// busy_timeout lets concurrent writers wait instead of failing with SQLITE_BUSY
	db, err := gorm.Open(sqlite.Open(dbPath+"?_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Initializing database at %s", dbPath)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Skill{},
		&entities.Teaching{},
		&entities.Learning{},
		&entities.Exchange{},
		&entities.ActivityEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedSkills(); err != nil {
		return nil, fmt.Errorf("failed to seed skills: %w", err)
	}

	if _, err := database.VerifySchema(); err != nil {
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) seedSkills() error {
	for _, name := range DefaultSkills {
		var existing entities.Skill
		result := d.DB.Where("name = ?", name).Limit(1).Find(&existing)
		if result.Error != nil {
			return fmt.Errorf("failed to look up skill %s: %w", name, result.Error)
		}
		if result.RowsAffected > 0 {
			continue
		}

		skill := entities.Skill{Name: name, Category: entities.DefaultSkillCategory}
		if err := d.DB.Create(&skill).Error; err != nil {
			if IsUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("failed to create skill %s: %w", name, err)
		}
		log.Printf("Created skill: %s", name)
	}
	return nil
}

// SchemaReport describes the users table as found on disk.
type SchemaReport struct {
	Columns []string
	Missing []string
}

// OK reports whether every required column is present.
func (r SchemaReport) OK() bool {
	return len(r.Missing) == 0
}

// VerifySchema checks the users table for the columns the application
// reads and logs the outcome.
func (d *Database) VerifySchema() (SchemaReport, error) {
	columnTypes, err := d.DB.Migrator().ColumnTypes(&entities.User{})
	if err != nil {
		return SchemaReport{}, err
	}

	report := SchemaReport{}
	present := make(map[string]bool, len(columnTypes))
	for _, ct := range columnTypes {
		report.Columns = append(report.Columns, ct.Name())
		present[ct.Name()] = true
	}
	for _, col := range entities.RequiredUserColumns {
		if !present[col] {
			report.Missing = append(report.Missing, col)
		}
	}

	if report.OK() {
		log.Printf("All required columns present in users table: %s", strings.Join(report.Columns, ", "))
	} else {
		log.Printf("Missing columns in users table: %s", strings.Join(report.Missing, ", "))
	}
	return report, nil
}

// IsUniqueViolation reports whether err was caused by a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
