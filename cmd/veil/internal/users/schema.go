package users

import (
	"github.com/thalib/veil/cmd/veil/internal/constants"
	"github.com/thalib/veil/cmd/veil/internal/database"
)

// Schema SQL for the users table. The table is owned by the data store
// collaborator in production; these statements exist for development seeding
// and the test suites.

// SchemaSQL returns the SQL statements to create the users table for the
// given dialect.
func SchemaSQL(dialect database.DialectType) []string {
	switch dialect {
	case database.DialectPostgres:
		return postgresSchema()
	case database.DialectMySQL:
		return mysqlSchema()
	default:
		return sqliteSchema()
	}
}

func sqliteSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + constants.TableUsers + ` (
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			ssn TEXT,
			password TEXT NOT NULL,
			ip TEXT,
			last_login DATETIME,
			user_agent TEXT
		)`,
	}
}

func mysqlSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + constants.TableUsers + ` (
			name VARCHAR(256) NOT NULL,
			email VARCHAR(256) NOT NULL,
			phone VARCHAR(64),
			ssn VARCHAR(64),
			password VARCHAR(256) NOT NULL,
			ip VARCHAR(64),
			last_login TIMESTAMP NULL,
			user_agent VARCHAR(512)
		)`,
	}
}

func postgresSchema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + constants.TableUsers + ` (
			name VARCHAR(256) NOT NULL,
			email VARCHAR(256) NOT NULL,
			phone VARCHAR(64),
			ssn VARCHAR(64),
			password VARCHAR(256) NOT NULL,
			ip VARCHAR(64),
			last_login TIMESTAMP,
			user_agent VARCHAR(512)
		)`,
	}
}
