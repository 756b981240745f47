// Package dbtest opens throwaway clinic schemas on a live Postgres for
// integration tests.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/db"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/migrations"
)

// EnvURL names the variable holding the test database DSN.
const EnvURL = "CLINIC_TEST_DATABASE_URL"

// Open migrates a fresh schema and returns a pool bound to it. The schema is
// dropped when the test finishes. Tests are skipped when EnvURL is unset.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(EnvURL)
	if url == "" {
		t.Skipf("%s not set; skipping integration test", EnvURL)
	}

	ctx := context.Background()
	schema := "clinic_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

	pool, err := db.NewPool(ctx, url, schema, 4, 1)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", schema))
		pool.Close()
	})

	if _, err := db.NewMigrator(pool, migrations.FS).Up(ctx, schema); err != nil {
		t.Fatalf("migrate %s: %v", schema, err)
	}
	return pool
}
