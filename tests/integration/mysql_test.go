//go:build integration
// +build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/tordal/metaschema/internal/db"
	"github.com/tordal/metaschema/internal/schema"
)

func mysqlTestDSN() string {
	if dsn := os.Getenv("MYSQL_TEST_DSN"); dsn != "" {
		return dsn
	}
	return "testuser:testpassword@tcp(localhost:3306)/testdb"
}

func TestMySQLDerivation(t *testing.T) {
	ctx := context.Background()

	dsn := mysqlTestDSN()
	client, err := db.NewMySQLClient(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to MySQL: %v", err)
	}
	defer client.Close()

	dbName, err := db.ParseDatabaseName(dsn)
	if err != nil {
		t.Fatalf("Failed to parse database name: %v", err)
	}

	deriver := db.NewMySQLDeriver(client, dbName)
	raw, err := deriver.DeriveRawSchema(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to derive raw schema: %v", err)
	}

	s, err := schema.New(raw)
	if err != nil {
		t.Fatalf("Failed to build schema from derived definitions: %v", err)
	}

	expectedClasses := []string{"users", "products", "orders", "order_items"}
	verifyClassesExist(t, s, expectedClasses)

	users, ok := s.Class("users")
	if !ok {
		t.Fatal("Users class not found")
	}
	verifyProperties(t, users, []string{"id", "username", "email", "status", "created_at"})

	// MySQL enum columns synthesize a <table>_<column> enum definition.
	verifyEnumReference(t, s, "users", "status")
	if _, ok := s.Enum("users_status"); !ok {
		t.Errorf("Expected synthesized enum users_status, got %v", s.EnumIDs())
	}
}
