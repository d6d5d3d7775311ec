package modeldef

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider loads a Definition from a SQLite database, for
// scenario libraries too large or too frequently edited by tooling to
// live comfortably as a YAML file. Grounded on pkg/config's
// provider_sqlite.go: pure-Go modernc.org/sqlite driver, WAL journal
// mode, and a busy timeout so a concurrent writer never wedges a reader.
type SQLiteProvider struct {
	db *sql.DB
}

// NewSQLiteProvider opens dbPath and applies the provider's pragmas.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	connStr := fmt.Sprintf("%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", dbPath)
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening model definition database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging model definition database: %w", err)
	}
	return &SQLiteProvider{db: db}, nil
}

// schema the provider expects to already exist (this package never
// creates it):
//
//	model_meta(key TEXT PRIMARY KEY, value TEXT)
//	climate_drivers(slot TEXT PRIMARY KEY, kind TEXT, path TEXT, column TEXT,
//	                 seed INTEGER, start_wet INTEGER, latitude REAL, params TEXT)
//	components(name TEXT PRIMARY KEY, kind TEXT, params TEXT)
//	connections(from_component TEXT, from_output TEXT, to_component TEXT, to_input TEXT)
func (p *SQLiteProvider) Load() (*Definition, error) {
	def := &Definition{}

	meta, err := p.loadMeta()
	if err != nil {
		return nil, err
	}
	def.Name = meta["name"]
	def.Description = meta["description"]
	def.StartDate = meta["start_date"]
	def.EndDate = meta["end_date"]

	if err := p.loadClimate(def); err != nil {
		return nil, err
	}
	if err := p.loadComponents(def); err != nil {
		return nil, err
	}
	if err := p.loadConnections(def); err != nil {
		return nil, err
	}

	if err := validatePaths(def); err != nil {
		return nil, err
	}

	return def, nil
}

func (p *SQLiteProvider) loadMeta() (map[string]string, error) {
	rows, err := p.db.Query(`SELECT key, value FROM model_meta`)
	if err != nil {
		return nil, fmt.Errorf("loading model_meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

func (p *SQLiteProvider) loadClimate(def *Definition) error {
	rows, err := p.db.Query(`SELECT slot, kind, path, column, seed, start_wet, latitude, params FROM climate_drivers`)
	if err != nil {
		return fmt.Errorf("loading climate_drivers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot, kind, path, column, paramsJSON string
		var seed int64
		var startWet int
		var latitude float64
		if err := rows.Scan(&slot, &kind, &path, &column, &seed, &startWet, &latitude, &paramsJSON); err != nil {
			return err
		}

		d := DriverDefinition{
			Kind: kind, Path: path, Column: column,
			Seed: uint64(seed), StartWet: startWet != 0, Latitude: latitude,
		}
		if paramsJSON != "" {
			if err := json.Unmarshal([]byte(paramsJSON), &d.Params); err != nil {
				return fmt.Errorf("parsing params for driver %q: %w", slot, err)
			}
		}

		switch slot {
		case "precipitation":
			def.Climate.Precipitation = d
		case "temperature":
			def.Climate.Temperature = d
		case "et":
			def.Climate.ET = d
		case "evaporation":
			def.Climate.Evaporation = &d
		default:
			return fmt.Errorf("unknown climate driver slot %q", slot)
		}
	}
	return rows.Err()
}

func (p *SQLiteProvider) loadComponents(def *Definition) error {
	rows, err := p.db.Query(`SELECT name, kind, params FROM components`)
	if err != nil {
		return fmt.Errorf("loading components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, kind, paramsJSON string
		if err := rows.Scan(&name, &kind, &paramsJSON); err != nil {
			return err
		}

		params := make(ComponentParams)
		if paramsJSON != "" {
			if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
				return fmt.Errorf("parsing params for component %q: %w", name, err)
			}
		}

		def.Components = append(def.Components, ComponentDefinition{Name: name, Kind: kind, Params: params})
	}
	return rows.Err()
}

func (p *SQLiteProvider) loadConnections(def *Definition) error {
	rows, err := p.db.Query(`SELECT from_component, from_output, to_component, to_input FROM connections`)
	if err != nil {
		return fmt.Errorf("loading connections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c ConnectionDefinition
		if err := rows.Scan(&c.FromComponent, &c.FromOutput, &c.ToComponent, &c.ToInput); err != nil {
			return err
		}
		def.Connections = append(def.Connections, c)
	}
	return rows.Err()
}

// Close releases the underlying database handle.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}
