package database

import (
	"fmt"
	"strings"

	"github.com/gdugdh24/lovematch/internal/config"
)

// Dialect captures the few places where the supported engines disagree.
type Dialect struct {
	Name       string
	DriverName string
	schema     []string
	strpos     string
}

// schemaTemplate holds the six relations and their indexes. %PK%, %BOOL%,
// %FALSE% and %INT% are replaced per dialect. Timestamps are Unix milliseconds.
var schemaTemplate = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id %PK%,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		bio TEXT NOT NULL DEFAULT '',
		zodiac TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		zipcode TEXT NOT NULL DEFAULT '',
		verified %BOOL% NOT NULL DEFAULT %FALSE%,
		verification_type TEXT NOT NULL DEFAULT '',
		subscription_tier TEXT NOT NULL DEFAULT 'basic',
		personality TEXT NOT NULL DEFAULT '',
		education TEXT NOT NULL DEFAULT '',
		financial TEXT NOT NULL DEFAULT '',
		created_at %INT% NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS auth_sessions (
		id %PK%,
		profile_id %INT% NOT NULL REFERENCES profiles (id),
		session_token TEXT NOT NULL UNIQUE,
		expires_at %INT% NOT NULL,
		created_at %INT% NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id %PK%,
		profile1_id %INT% NOT NULL REFERENCES profiles (id),
		profile2_id %INT% NOT NULL REFERENCES profiles (id),
		status TEXT NOT NULL DEFAULT 'pending',
		compatibility_score %INT% NOT NULL DEFAULT 0,
		compatibility_details TEXT NOT NULL DEFAULT '{}',
		created_at %INT% NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id %PK%,
		match_id %INT% NOT NULL REFERENCES matches (id),
		sender_id %INT% NOT NULL REFERENCES profiles (id),
		content TEXT NOT NULL,
		sent_at %INT% NOT NULL,
		is_read %BOOL% NOT NULL DEFAULT %FALSE%
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id %PK%,
		title TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		starts_at %INT% NOT NULL,
		latitude REAL,
		longitude REAL
	)`,
	`CREATE TABLE IF NOT EXISTS event_participants (
		event_id %INT% NOT NULL REFERENCES events (id),
		profile_id %INT% NOT NULL REFERENCES profiles (id),
		PRIMARY KEY (event_id, profile_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_auth_sessions_profile ON auth_sessions (profile_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_profile1 ON matches (profile1_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_profile2 ON matches (profile2_id)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_match_sent ON messages (match_id, sent_at)`,
}

func renderSchema(r *strings.Replacer) []string {
	out := make([]string, len(schemaTemplate))
	for i, stmt := range schemaTemplate {
		out[i] = r.Replace(stmt)
	}
	return out
}

var (
	SQLite = Dialect{
		Name:       config.DriverSQLite,
		DriverName: "sqlite",
		schema: renderSchema(strings.NewReplacer(
			"%PK%", "INTEGER PRIMARY KEY AUTOINCREMENT",
			"%BOOL%", "INTEGER",
			"%FALSE%", "0",
			"%INT%", "INTEGER",
		)),
		strpos: "instr",
	}

	Postgres = Dialect{
		Name:       config.DriverPostgres,
		DriverName: "postgres",
		schema: renderSchema(strings.NewReplacer(
			"%PK%", "BIGSERIAL PRIMARY KEY",
			"%BOOL%", "BOOLEAN",
			"%FALSE%", "FALSE",
			"%INT%", "BIGINT",
		)),
		strpos: "strpos",
	}
)

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case config.DriverSQLite:
		return SQLite, nil
	case config.DriverPostgres:
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported dialect %q", name)
}

// Schema returns the DDL statements creating every relation.
func (d Dialect) Schema() []string {
	return d.schema
}

// Contains renders a case-sensitive "haystack contains needle" SQL predicate.
func (d Dialect) Contains(haystack, needle string) string {
	return fmt.Sprintf("%s(%s, %s) > 0", d.strpos, haystack, needle)
}

// Overlap renders a predicate true when one text contains the other, with
// the semantics of a LIKE '%' || x || '%' pattern: an empty text is contained
// in every text, and NULL matches nothing.
func (d Dialect) Overlap(a, b string) string {
	return fmt.Sprintf("(%s OR %s)", d.Contains(a, b), d.Contains(b, a))
}
