// Package dbtest opens throwaway SQLite databases carrying the production schema.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/angelmondragon/pharmacy-pos-backend/pkg/config"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/db"
	"github.com/angelmondragon/pharmacy-pos-backend/pkg/migrate"
)

// NewSQLite returns a migrated in-memory database private to the test.
func NewSQLite(t testing.TB) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:pos_%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	client, err := db.New(context.Background(), config.DBConfig{Driver: config.DriverSQLite, DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if _, err := migrate.Up(context.Background(), sqlDB, config.DriverSQLite); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return client
}
