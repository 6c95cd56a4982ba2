package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. New statements are appended,
// never edited in place.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_users",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				email TEXT NOT NULL,
				created_at INTEGER NOT NULL
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_vehicles",
		SQL: `
			CREATE TABLE IF NOT EXISTS vehicles (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				token TEXT UNIQUE,
				imei TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'registered',
				color TEXT NOT NULL DEFAULT '#FF0000',
				position_check_freq INTEGER NOT NULL DEFAULT 15,
				min_distance_delta INTEGER NOT NULL DEFAULT 3,
				max_idle_minutes INTEGER NOT NULL DEFAULT 15,
				manual_route_start_enabled INTEGER NOT NULL DEFAULT 1,
				created_at INTEGER NOT NULL
			)
		`,
	},
	{
		Version: 3,
		Name:    "create_user_vehicle_assignments",
		SQL: `
			CREATE TABLE IF NOT EXISTS user_vehicle_assignments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				vehicle_id INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
				start_date INTEGER NOT NULL,
				end_date INTEGER
			)
		`,
	},
	{
		Version: 4,
		Name:    "create_routes",
		SQL: `
			CREATE TABLE IF NOT EXISTS routes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				assignment_id INTEGER NOT NULL REFERENCES user_vehicle_assignments(id) ON DELETE CASCADE,
				start_time INTEGER NOT NULL,
				end_time INTEGER,
				total_distance INTEGER NOT NULL DEFAULT 0,
				start_city TEXT,
				end_city TEXT,
				route_geom TEXT
			)
		`,
	},
	{
		Version: 5,
		Name:    "create_positions",
		SQL: `
			CREATE TABLE IF NOT EXISTS positions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				route_id INTEGER NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
				timestamp INTEGER NOT NULL,
				location TEXT NOT NULL,
				speed REAL NOT NULL
			)
		`,
	},
	{
		Version: 6,
		Name:    "index_routes_assignment_start",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_routes_assignment_start
				ON routes(assignment_id, start_time DESC)
		`,
	},
	{
		Version: 7,
		Name:    "index_positions_route_timestamp",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_positions_route_timestamp
				ON positions(route_id, timestamp DESC)
		`,
	},
	{
		Version: 8,
		Name:    "index_assignments_vehicle",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_assignments_vehicle
				ON user_vehicle_assignments(vehicle_id)
		`,
	},
}

// RunMigrations applies all pending migrations in version order
func RunMigrations(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func applyMigration(db *sql.DB, m Migration) error {
	return TransactionOn(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return err
		}
		_, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name)
		return err
	})
}
