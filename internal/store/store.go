// Package store persists user and profile records with GORM. It is the
// credential store the authenticator reads from; everything else in the
// authentication path treats it as a black box behind interfaces.
package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skillsenselab/authservice/internal/logger"
)

// Config holds database configuration.
type Config struct {
	// DSN is the sqlite data source (default: authservice.db).
	// ":memory:" gives an ephemeral database for local runs and tests.
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// ApplyDefaults sets sensible defaults for unset fields.
func (c *Config) ApplyDefaults() {
	if c.DSN == "" {
		c.DSN = "authservice.db"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	return nil
}

// Store wraps the database handle and owns schema migration.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the database and migrates the schema.
func Open(cfg Config, log *logger.Logger) (*Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", cfg.DSN, err)
	}

	if err := db.AutoMigrate(&User{}, &ManagerProfile{}, &AdministratorProfile{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	log = log.WithComponent("store")
	log.Info("database ready", map[string]interface{}{"dsn": cfg.DSN})

	return &Store{db: db, log: log}, nil
}

// DB exposes the underlying handle for the typed stores.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Users returns the user store.
func (s *Store) Users() *UserStore {
	return &UserStore{db: s.db}
}

// Profiles returns the profile store.
func (s *Store) Profiles() *ProfileStore {
	return &ProfileStore{db: s.db}
}
