package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	_ "github.com/denisenkom/go-mssqldb" // for sqlserver
	_ "github.com/go-sql-driver/mysql"   // for mysql
	_ "github.com/lib/pq"                // for postgres
	_ "modernc.org/sqlite"               // for sqlite
)

// DBConfig describes the database whose tables are offered as models
type DBConfig struct {
	Type     string
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

var tableQueries = map[string]string{
	"postgres": `SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE' ORDER BY table_name`,
	"mysql": `SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE' ORDER BY table_name`,
	"sqlserver": `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
	"sqlite": `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
}

// DriverName returns the database/sql driver registered for the config type
func (c DBConfig) DriverName() (string, error) {
	if _, ok := tableQueries[c.Type]; !ok {
		return "", fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return c.Type, nil
}

// DSN builds the driver-specific connection string
func (c DBConfig) DSN() (string, error) {
	switch c.Type {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.Port, c.User, c.Password, c.Database), nil
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", c.User, c.Password, c.Host, c.Port, c.Database), nil
	case "sqlserver":
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(c.User, c.Password),
			Host:     c.Host + ":" + strconv.Itoa(c.Port),
			RawQuery: url.Values{"database": {c.Database}}.Encode(),
		}
		return u.String(), nil
	case "sqlite":
		// Database is the file path
		return c.Database, nil
	default:
		return "", fmt.Errorf("unsupported database type: %s", c.Type)
	}
}

// Catalog lists the tables of a database as model names
type Catalog struct {
	db     *sql.DB
	dbType string
	owned  bool
}

// Open connects to the database described by cfg
func Open(cfg DBConfig) (*Catalog, error) {
	driver, err := cfg.DriverName()
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Catalog{db: db, dbType: cfg.Type, owned: true}, nil
}

// NewFromDB wraps an existing connection. Close leaves db open.
func NewFromDB(db *sql.DB, dbType string) (*Catalog, error) {
	if _, ok := tableQueries[dbType]; !ok {
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
	return &Catalog{db: db, dbType: dbType}, nil
}

// ListModels returns the base table names in alphabetical order
func (c *Catalog) ListModels(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, tableQueries[c.dbType])
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	models := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		models = append(models, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return models, nil
}

// Close releases the connection if the catalog opened it
func (c *Catalog) Close() error {
	if c.owned {
		return c.db.Close()
	}
	return nil
}
