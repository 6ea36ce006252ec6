package repository

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// NewDB creates a MySQL connection pool with the given DSN. The pool is
// ping-verified: the credential store is required at boot, so a failed
// connection is an error rather than a degraded mode.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
