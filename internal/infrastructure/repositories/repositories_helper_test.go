package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createGeopointTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE geopoints (
		id TEXT PRIMARY KEY,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		formatted_address TEXT NOT NULL,
		apt_number TEXT
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		middle_name TEXT,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone_number TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		geopoint_id TEXT NOT NULL
	);`)
}

func createUserSettingsTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_settings (
		id TEXT PRIMARY KEY,
		is_dark_mode BOOLEAN NOT NULL DEFAULT 0
	);`)
}

func createAssignmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE assignments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		client_id TEXT NOT NULL,
		UNIQUE(employee_id, client_id)
	);`)
}

func createTimecardTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE timecards (
		id TEXT PRIMARY KEY,
		assignment_id TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		is_active BOOLEAN NOT NULL DEFAULT 0,
		verification_code TEXT,
		edited_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}

func createIdentityTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE auth_identities (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		password_hash TEXT,
		email_confirmed_at DATETIME,
		invited_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createInviteTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE invites (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		token TEXT
	);`)
}

func createSchema(t *testing.T, db *gorm.DB) {
	createGeopointTable(t, db)
	createUserTable(t, db)
	createUserSettingsTable(t, db)
	createAssignmentTable(t, db)
	createTimecardTable(t, db)
	createIdentityTable(t, db)
	createInviteTable(t, db)
}
