// Package users reads rows out of the users table and renders each one as a
// flat key=value log line. The table schema is collaborator-owned; column
// names are taken from the result set at query time, so schema additions show
// up in log lines without code changes.
package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thalib/veil/cmd/veil/internal/constants"
	"github.com/thalib/veil/cmd/veil/internal/credentials"
	"github.com/thalib/veil/cmd/veil/internal/database"
)

// Store reads user records for logging.
type Store struct {
	db database.Driver
}

// NewStore creates a users store on top of a connected driver.
func NewStore(db database.Driver) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the users table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range SchemaSQL(s.db.Dialect()) {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create users schema: %w", err)
		}
	}
	return nil
}

// seedUser is one sample record inserted by Seed.
type seedUser struct {
	name, email, phone, ssn, password, ip, userAgent string
}

// Seed inserts a small set of sample users for development and testing.
// Passwords are stored as bcrypt digests, never as plain text. Returns the
// number of rows inserted.
func (s *Store) Seed(ctx context.Context) (int, error) {
	samples := []seedUser{
		{
			name: "Marlene Wood", email: "hwestiii@att.net", phone: "(473) 401-4253",
			ssn: "261-72-6780", password: "K5?BMNv", ip: "60ed:c396:2ff:244:bbd0:9208:26f2:93ea",
			userAgent: "Mozilla/5.0 Windows NT 5.1 rv:1.9.2.12",
		},
		{
			name: "Belen Bailey", email: "bcevc@yahoo.com", phone: "(539) 233-4942",
			ssn: "203-38-5395", password: "^3EZ~TkX", ip: "f724:c5d1:a14d:c4c5:bae2:9457:3769:1969",
			userAgent: "Mozilla/5.0 Linux Android 4.1.2 de-de",
		},
		{
			name: "Ronnie Bell", email: "telaprolu@mit.edu", phone: "(751) 701-0304",
			ssn: "984-20-2959", password: "vN{mSAs", ip: "e02:5c8a:a542:74a3:2a67:9cf0:8bcd:4db3",
			userAgent: "Mozilla/5.0 Macintosh Intel Mac OS X 10_8_5",
		},
	}

	query := fmt.Sprintf(`INSERT INTO %s (name, email, phone, ssn, password, ip, last_login, user_agent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, constants.TableUsers)
	if s.db.Dialect() == database.DialectPostgres {
		query = fmt.Sprintf(`INSERT INTO %s (name, email, phone, ssn, password, ip, last_login, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, constants.TableUsers)
	}

	now := time.Now().UTC()
	for _, u := range samples {
		digest, err := credentials.HashPassword(u.password)
		if err != nil {
			return 0, fmt.Errorf("failed to hash seed password: %w", err)
		}
		if _, err := s.db.Exec(ctx, query,
			u.name, u.email, u.phone, u.ssn, digest, u.ip, now, u.userAgent); err != nil {
			return 0, fmt.Errorf("failed to insert seed user: %w", err)
		}
	}

	return len(samples), nil
}

// Count returns the number of rows in the users table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", constants.TableUsers)
	if err := s.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// ForEach streams every row of the users table, renders it as a raw
// key=value log line (column order as returned by the database), and invokes
// fn with the line. Iteration stops on the first error from fn or the
// database. The lines produced here are RAW and must only be handed to a
// redacting log pipeline.
func (s *Store) ForEach(ctx context.Context, fn func(line string) error) error {
	query := fmt.Sprintf("SELECT * FROM %s", constants.TableUsers)
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read result columns: %w", err)
	}

	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("failed to scan user row: %w", err)
		}
		if err := fn(formatLine(columns, values)); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating user rows: %w", err)
	}

	return nil
}

// formatLine renders one row as "col=value; col=value; ...;" using the
// configured assignment and separator characters.
func formatLine(columns []string, values []any) string {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(constants.FieldSeparator)
			b.WriteByte(' ')
		}
		b.WriteString(col)
		b.WriteByte(constants.FieldAssign)
		b.WriteString(renderValue(values[i]))
	}
	b.WriteByte(constants.FieldSeparator)
	return b.String()
}

// renderValue converts a scanned database value into its log representation.
// Drivers return strings as []byte (MySQL) or string (SQLite); NULL becomes
// the literal "null".
func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
