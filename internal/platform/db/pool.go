package db

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidSchema reports whether name is usable as an unquoted schema identifier.
func ValidSchema(name string) bool {
	return schemaPattern.MatchString(name)
}

// NewPool opens a pool whose connections resolve unqualified table names in
// schema and are guaranteed to enforce foreign keys.
func NewPool(ctx context.Context, databaseURL, schema string, maxConns, minConns int32) (*pgxpool.Pool, error) {
	if !ValidSchema(schema) {
		return nil, fmt.Errorf("invalid schema name %q", schema)
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.ConnConfig.RuntimeParams["search_path"] = schema + ", public"
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return EnforceForeignKeys(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// sessionConn is the part of *pgx.Conn the foreign-key check needs.
type sessionConn interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// EnforceForeignKeys makes sure referential actions fire on conn. Postgres
// skips foreign-key triggers unless session_replication_role is "origin", so a
// session in any other mode is switched back or refused.
func EnforceForeignKeys(ctx context.Context, conn sessionConn) error {
	var role string
	if err := conn.QueryRow(ctx, `SHOW session_replication_role`).Scan(&role); err != nil {
		return fmt.Errorf("read session_replication_role: %w", err)
	}
	if role == "origin" {
		return nil
	}
	if _, err := conn.Exec(ctx, `SET session_replication_role = origin`); err != nil {
		return fmt.Errorf("foreign keys not enforced (session_replication_role=%s): %w", role, err)
	}
	return nil
}
