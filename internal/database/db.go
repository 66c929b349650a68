package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"floodaid/internal/catalog"
	"floodaid/internal/metrics"
)

// DB represents the database connection
type DB struct {
	conn *sql.DB
}

// NewDB creates a new database connection and initializes the schema
// dsn format: "username:password@tcp(host:port)/dbname?parseTime=true"
// example: "user:pass@tcp(localhost:3306)/floodaid?parseTime=true"
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "database: open")
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "database: ping")
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	db := &DB{conn: conn}

	if err := db.initSchema(ctx); err != nil {
		conn.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "database: initialize schema")
	}

	return db, nil
}

// initSchema creates the catalog tables. Every table carries a position
// column so the catalog order survives a round trip.
func (db *DB) initSchema(ctx context.Context) error {
	// MySQL doesn't support multiple statements in one Exec, so we need to split them
	statements := []string{
		`CREATE TABLE IF NOT EXISTS shelters (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			position INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(255) NOT NULL,
			capacity INT NOT NULL,
			available INT NOT NULL,
			facilities JSON NOT NULL,
			phone VARCHAR(50) NOT NULL,
			CHECK (available <= capacity),
			INDEX idx_shelters_position (position)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS contacts (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			category_position INT NOT NULL,
			category VARCHAR(100) NOT NULL,
			position INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			number VARCHAR(50) NOT NULL,
			availability VARCHAR(50) NOT NULL,
			INDEX idx_contacts_position (category_position, position)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS medical_tips (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			position INT NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			priority VARCHAR(20) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS relief_camps (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			position INT NOT NULL,
			name VARCHAR(255) NOT NULL,
			city VARCHAR(100) NOT NULL,
			supplies JSON NOT NULL,
			contact VARCHAR(50) NOT NULL,
			open_hours VARCHAR(50) NOT NULL,
			INDEX idx_relief_camps_city (city)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS donation_needs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			position INT NOT NULL,
			item VARCHAR(255) NOT NULL,
			priority VARCHAR(20) NOT NULL,
			quantity VARCHAR(100) NOT NULL,
			urgency VARCHAR(50) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS safety_tips (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			phase_position INT NOT NULL,
			phase VARCHAR(50) NOT NULL,
			position INT NOT NULL,
			tip TEXT NOT NULL,
			INDEX idx_safety_tips_position (phase_position, position)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return eris.Wrap(err, "execute schema statement")
		}
	}

	return nil
}

// SeedCatalog replaces the stored catalog with cat in a single transaction
func (db *DB) SeedCatalog(ctx context.Context, cat *catalog.Catalog) error {
	start := time.Now()
	defer db.recordPoolStats()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "database: begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range catalogTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return eris.Wrapf(err, "database: clear %s", table)
		}
	}

	rows := catalogRows(cat.Data())
	for _, batch := range rows {
		if err := insertBatch(ctx, tx, batch); err != nil {
			metrics.RecordDBQuery("INSERT", batch.table, time.Since(start), err)
			return err
		}
		metrics.RecordDBQuery("INSERT", batch.table, time.Since(start), nil)
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "database: commit seed")
	}

	zap.L().Info("catalog seeded",
		zap.Int("shelters", len(cat.Shelters())),
		zap.Int("contacts", cat.ContactCount()),
		zap.Int("relief_camps", len(cat.ReliefCamps())),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, batch rowBatch) error {
	if len(batch.rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, batch.insert)
	if err != nil {
		return eris.Wrapf(err, "database: prepare insert into %s", batch.table)
	}
	defer stmt.Close() //nolint:errcheck

	for i, args := range batch.rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return eris.Wrapf(err, "database: insert row %d into %s", i, batch.table)
		}
	}
	return nil
}

// LoadCatalog reads the stored catalog. An empty shelters table is reported
// as an error so callers can fall back to the built-in catalog.
func (db *DB) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()
	defer db.recordPoolStats()

	var data catalog.Data
	var err error

	if data.Shelters, err = db.loadShelters(ctx); err != nil {
		return nil, err
	}
	if len(data.Shelters) == 0 {
		return nil, eris.New("database: catalog is empty, run the seed command first")
	}
	if data.ContactGroups, err = db.loadContactGroups(ctx); err != nil {
		return nil, err
	}
	if data.MedicalTips, err = db.loadMedicalTips(ctx); err != nil {
		return nil, err
	}
	if data.ReliefCamps, err = db.loadReliefCamps(ctx); err != nil {
		return nil, err
	}
	if data.DonationNeeds, err = db.loadDonationNeeds(ctx); err != nil {
		return nil, err
	}
	if data.SafetyPhases, err = db.loadSafetyPhases(ctx); err != nil {
		return nil, err
	}

	zap.L().Info("catalog loaded from database", zap.Duration("duration", time.Since(start)))
	return catalog.New(data), nil
}

// query runs a SELECT and records its metrics
func (db *DB) query(ctx context.Context, table, query string) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("SELECT", table, time.Since(start), err)
	if err != nil {
		return nil, eris.Wrapf(err, "database: query %s", table)
	}
	return rows, nil
}

func (db *DB) recordPoolStats() {
	stats := db.conn.Stats()
	metrics.UpdateDBConnectionStats(stats.OpenConnections, stats.InUse, stats.Idle)
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
