package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

type AssetDB struct {
	DB  *sql.DB
	Log *zerolog.Logger
}

// NewAssetDB is a constructor that initializes AssetDB with DB and Log
func NewAssetDB(log *zerolog.Logger) (*AssetDB, error) {
	// Get the database connection string from the environment
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Error().Msg("DATABASE_URL environment variable is not set")
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	// Open the database connection
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database connection")
		return nil, err
	}

	// Check we are actually connected
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Database connection failed during ping")
		db.Close()
		return nil, err
	}

	return &AssetDB{
		DB:  db,
		Log: log,
	}, nil
}

func (a *AssetDB) Close() error {
	if err := a.DB.Close(); err != nil {
		return err
	}
	a.Log.Info().Msg("database connection closed")
	a.DB = nil

	return nil
}

// Migrate applies every embedded goose migration that has not run yet.
func (a *AssetDB) Migrate() error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("error setting migration dialect: %w", err)
	}

	if err := goose.Up(a.DB, "migrations"); err != nil {
		return fmt.Errorf("error running migrations: %w", err)
	}

	version, err := goose.GetDBVersion(a.DB)
	if err != nil {
		return fmt.Errorf("error reading migration version: %w", err)
	}
	a.Log.Info().Int64("version", version).Msg("Database migrated")
	return nil
}

// Ping checks the database is reachable.
func (a *AssetDB) Ping(ctx context.Context) error {
	return a.DB.PingContext(ctx)
}

// CommitTransaction commits tx, rolling it back if the commit fails.
func (a *AssetDB) CommitTransaction(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on any error.
func (a *AssetDB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return a.CommitTransaction(tx)
}

func (a *AssetDB) execQuery(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (int64, error) {

	if a.DB == nil {
		return 0, fmt.Errorf("database connection is not established")
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
