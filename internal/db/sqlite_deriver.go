package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLiteDeriver translates SQLite structure into raw schema definitions.
// SQLite has no enum concept, so derived schemas contain classes only.
type SQLiteDeriver struct {
	client *SQLiteClient
}

// NewSQLiteDeriver creates a new SQLite schema deriver
func NewSQLiteDeriver(client *SQLiteClient) *SQLiteDeriver {
	return &SQLiteDeriver{
		client: client,
	}
}

// DeriveRawSchema derives raw schema definitions for the specified tables.
// If tables is empty, every table in the database becomes a class.
func (d *SQLiteDeriver) DeriveRawSchema(ctx context.Context, tables []string) (map[string]any, error) {
	tableNames, err := d.getTableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	classes := make(map[string]any, len(tableNames))
	for _, tableName := range tableNames {
		class, err := d.deriveClass(ctx, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to derive class for table %s: %w", tableName, err)
		}
		classes[tableName] = class
	}

	return map[string]any{
		"classes": classes,
	}, nil
}

// getTableNames returns the list of tables to derive classes from
func (d *SQLiteDeriver) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`

	rows, err := d.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tableList []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tableList = append(tableList, tableName)
	}

	return tableList, rows.Err()
}

// deriveClass builds a raw class definition from a table's columns
func (d *SQLiteDeriver) deriveClass(ctx context.Context, tableName string) (map[string]any, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", tableName)

	rows, err := d.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := make(map[string]any)
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		prop := map[string]any{"type": mapSQLiteType(colType)}
		if notNull != 0 || pk > 0 {
			prop["required"] = true
		}
		if defaultValue.Valid {
			prop["default"] = defaultValue.String
		}
		properties[name] = prop
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return map[string]any{
		"name":       tableName,
		"properties": properties,
	}, nil
}

// mapSQLiteType maps a declared SQLite column type to a schema property type
// using SQLite's affinity rules: INT anywhere in the name means integer,
// REAL/FLOA/DOUB mean floating point, everything else lands on string.
func mapSQLiteType(colType string) string {
	upper := strings.ToUpper(colType)
	switch {
	case strings.Contains(upper, "INT"):
		return "int64"
	case strings.Contains(upper, "REAL"),
		strings.Contains(upper, "FLOA"),
		strings.Contains(upper, "DOUB"):
		return "float64"
	case strings.Contains(upper, "BOOL"):
		return "boolean"
	default:
		return "string"
	}
}
