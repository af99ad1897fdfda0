// Package database provides database abstraction and connection management.
// It supports multiple database dialects (MySQL, PostgreSQL, SQLite) with
// automatic dialect detection from connection strings. MySQL is the dialect
// used by the veil CLI; SQLite backs the test suites.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// DialectType represents the type of database dialect
type DialectType string

const (
	DialectPostgres DialectType = "postgres"
	DialectMySQL    DialectType = "mysql"
	DialectSQLite   DialectType = "sqlite"
)

// Driver defines the interface for database operations
type Driver interface {
	// Connect establishes a connection to the database
	Connect(ctx context.Context) error

	// Close closes the database connection
	Close() error

	// Exec executes a query without returning rows
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)

	// Query executes a query that returns rows
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// QueryRow executes a query that returns at most one row
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row

	// Ping verifies the connection to the database is still alive
	Ping(ctx context.Context) error

	// Dialect returns the database dialect type
	Dialect() DialectType

	// DB returns the underlying *sql.DB instance
	DB() *sql.DB

	// ListTables returns a list of all user tables in the database
	ListTables(ctx context.Context) ([]string, error)

	// TableExists checks if a table exists in the database
	TableExists(ctx context.Context, tableName string) (bool, error)
}

// Config holds database connection configuration
type Config struct {
	ConnectionString string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// baseDriver implements common functionality for all database drivers
type baseDriver struct {
	db      *sql.DB
	dialect DialectType
	dsn     string
	config  Config
}

// Connect establishes a connection to the database
func (d *baseDriver) Connect(ctx context.Context) error {
	var err error
	driverName := string(d.dialect)

	// The modernc driver registers as "sqlite"
	if d.dialect == DialectSQLite {
		driverName = "sqlite"
	}

	d.db, err = sql.Open(driverName, d.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	d.db.SetMaxOpenConns(d.config.MaxOpenConns)
	d.db.SetMaxIdleConns(d.config.MaxIdleConns)
	d.db.SetConnMaxLifetime(d.config.ConnMaxLifetime)

	// Verify connection
	if err := d.db.PingContext(ctx); err != nil {
		d.db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *baseDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Exec executes a query without returning rows
func (d *baseDriver) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.db.ExecContext(ctx, query, args...)
}

// Query executes a query that returns rows
func (d *baseDriver) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.db.QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns at most one row
func (d *baseDriver) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// Ping verifies the connection to the database is still alive
func (d *baseDriver) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Dialect returns the database dialect type
func (d *baseDriver) Dialect() DialectType {
	return d.dialect
}

// DB returns the underlying *sql.DB instance
func (d *baseDriver) DB() *sql.DB {
	return d.db
}

// NewDriver creates a new database driver based on the connection string
func NewDriver(config Config) (Driver, error) {
	dialect, dsn, err := detectDialect(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	driver := &baseDriver{
		dialect: dialect,
		dsn:     dsn,
		config:  config,
	}

	return driver, nil
}

// MySQLConnectionString builds a mysql:// connection string from discrete
// connection parameters. An empty password is allowed (local development
// against a passwordless root account).
func MySQLConnectionString(username, password, host, name string) string {
	if password != "" {
		return fmt.Sprintf("mysql://%s:%s@%s/%s", username, password, host, name)
	}
	return fmt.Sprintf("mysql://%s@%s/%s", username, host, name)
}

// detectDialect detects the database dialect from the connection string
func detectDialect(connectionString string) (DialectType, string, error) {
	if connectionString == "" {
		return "", "", fmt.Errorf("connection string is empty")
	}

	lower := strings.ToLower(connectionString)

	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres, connectionString, nil
	}

	if strings.HasPrefix(lower, "mysql://") {
		dsn, err := mysqlDSN(strings.TrimPrefix(connectionString, "mysql://"))
		if err != nil {
			return "", "", err
		}
		return DialectMySQL, dsn, nil
	}

	if strings.HasPrefix(lower, "sqlite://") {
		dsn := strings.TrimPrefix(connectionString, "sqlite://")

		// In-memory databases need shared cache mode so every pooled
		// connection sees the same database.
		if dsn == ":memory:" {
			dsn = "file::memory:?mode=memory&cache=shared"
		}

		return DialectSQLite, dsn, nil
	}

	// Standard MySQL DSN (user:password@tcp(host:port)/database)
	if strings.Contains(lower, "@tcp(") || strings.Contains(lower, "charset=") {
		return DialectMySQL, connectionString, nil
	}

	// File-based connection strings (SQLite)
	if lower == ":memory:" || strings.HasSuffix(lower, ".db") || strings.HasSuffix(lower, ".sqlite") || strings.HasSuffix(lower, ".sqlite3") {
		return DialectSQLite, connectionString, nil
	}

	// Standard PostgreSQL key=value DSN
	if strings.Contains(lower, "host=") || strings.Contains(lower, "dbname=") {
		return DialectPostgres, connectionString, nil
	}

	return "", "", fmt.Errorf("unable to detect database dialect from connection string: %s", connectionString)
}

// mysqlDSN converts the URL-ish remainder of a mysql:// connection string
// (user[:password]@host[:port]/database) into the go-sql-driver DSN form
// user[:password]@tcp(host:port)/database. Port defaults to 3306.
func mysqlDSN(rest string) (string, error) {
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return "", fmt.Errorf("invalid mysql connection string: missing user info")
	}
	userinfo := rest[:at]

	hostPath := rest[at+1:]
	slash := strings.Index(hostPath, "/")
	if slash < 0 {
		return "", fmt.Errorf("invalid mysql connection string: missing database name")
	}
	host := hostPath[:slash]
	dbname := hostPath[slash+1:]
	if host == "" || dbname == "" {
		return "", fmt.Errorf("invalid mysql connection string: missing host or database name")
	}

	if !strings.Contains(host, ":") {
		host += ":3306"
	}

	return fmt.Sprintf("%s@tcp(%s)/%s", userinfo, host, dbname), nil
}
