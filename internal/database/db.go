package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.  DATETIME columns
// are read and written in loc, which should be the zone departure times
// are published in.
func Open(user, pass, host, port, name string, loc *time.Location) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(user, pass, host, port, name, loc))
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// DSN builds the driver connection string.
//
// parseTime=true -> DATETIME -> time.Time.  clientFoundRows=true makes
// RowsAffected report matched rows, so a seat update that leaves the count
// unchanged (already at zero) still counts as "row found".
// multiStatements=true lets EnsureSchema apply the schema in one Exec.
func DSN(user, pass, host, port, name string, loc *time.Location) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=%s&clientFoundRows=true&multiStatements=true",
		auth, host, port, name, url.QueryEscape(loc.String()))
}
