// Package testdb builds throwaway in-memory catalog databases for tests.
// The schema mirrors migrations/ in SQLite dialect. The production query
// uses $1 bindvars, which SQLite also accepts, so repository SQL runs
// unchanged against these databases.
package testdb

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// T0 is the fixed modification timestamp used by the seed helpers.
var T0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

const schema = `
	CREATE TABLE manufacturer (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	CREATE TABLE equipment_type (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	CREATE TABLE equipment (
		id                                INTEGER PRIMARY KEY,
		equipment_type_id                 INTEGER NOT NULL REFERENCES equipment_type (id),
		manufacturer_id                   INTEGER NOT NULL REFERENCES manufacturer (id),
		model                             TEXT NOT NULL,
		description                       TEXT,
		modified_date                     TIMESTAMP NOT NULL,
		panel_kw_stc                      REAL,
		panel_kw_ptc                      REAL,
		panel_height_mm                   REAL,
		panel_width_mm                    REAL,
		panel_is_bipv_rated               BOOLEAN,
		power_temp_coefficient            REAL,
		normal_operating_cell_temperature REAL,
		rating                            REAL,
		inverter_efficiency               REAL,
		inverter_output_voltage           REAL,
		inverter_is_three_phase           BOOLEAN
	);
	INSERT INTO manufacturer (id, name) VALUES (1, 'Acme'), (2, 'Beta');
	INSERT INTO equipment_type (id, name) VALUES (1, 'module'), (2, 'inverter'), (3, 'battery');
`

// Open creates an in-memory SQLite database with the catalog schema and the
// manufacturer/equipment_type reference rows. The pool is pinned to a single
// connection: every new connection to :memory: gets its own empty database.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// SeedModule inserts the X200 module as equipment id 1.
func SeedModule(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO equipment (
			id, equipment_type_id, manufacturer_id, model, description, modified_date,
			panel_kw_stc, panel_kw_ptc, panel_height_mm, panel_width_mm,
			panel_is_bipv_rated, power_temp_coefficient, normal_operating_cell_temperature
		) VALUES (1, 1, 1, 'X200', NULL, $1, 0.2, 0.18, 1000.0, 1600.0, 1, -0.004, 45.0)`, T0)
	if err != nil {
		t.Fatalf("failed to seed module row: %v", err)
	}
}

// SeedInverter inserts the INV5 inverter as equipment id 2.
func SeedInverter(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO equipment (
			id, equipment_type_id, manufacturer_id, model, description, modified_date,
			rating, inverter_efficiency, inverter_output_voltage, inverter_is_three_phase
		) VALUES (2, 2, 2, 'INV5', NULL, $1, 5.0, 0.97, 240.0, 0)`, T0)
	if err != nil {
		t.Fatalf("failed to seed inverter row: %v", err)
	}
}

// SeedBattery inserts a battery row as equipment id 7. The type is known to
// the schema but matches no decoder shape.
func SeedBattery(t *testing.T, db *sqlx.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO equipment (id, equipment_type_id, manufacturer_id, model, modified_date, rating)
		VALUES (7, 3, 1, 'BAT1', $1, 10.0)`, T0)
	if err != nil {
		t.Fatalf("failed to seed battery row: %v", err)
	}
}
