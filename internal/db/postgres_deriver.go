package db

import (
	"context"
	"fmt"
)

// PostgresDeriver translates PostgreSQL structure into raw schema definitions:
// enum types become enum definitions, tables become class definitions whose
// enum-typed columns reference them.
type PostgresDeriver struct {
	client *PostgresClient
	schema string
}

// NewPostgresDeriver creates a new PostgreSQL schema deriver
func NewPostgresDeriver(client *PostgresClient, schemaName string) *PostgresDeriver {
	return &PostgresDeriver{
		client: client,
		schema: schemaName,
	}
}

// DeriveRawSchema derives raw schema definitions for the specified tables.
// If tables is empty, every table in the database schema becomes a class.
// Enum types are always derived first so that class properties can reference
// them by identifier.
func (d *PostgresDeriver) DeriveRawSchema(ctx context.Context, tables []string) (map[string]any, error) {
	enums, err := d.deriveEnums(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to derive enums: %w", err)
	}

	tableNames, err := d.getTableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	classes := make(map[string]any, len(tableNames))
	for _, tableName := range tableNames {
		class, err := d.deriveClass(ctx, tableName, enums)
		if err != nil {
			return nil, fmt.Errorf("failed to derive class for table %s: %w", tableName, err)
		}
		classes[tableName] = class
	}

	return map[string]any{
		"name":    d.schema,
		"enums":   enums,
		"classes": classes,
	}, nil
}

// deriveEnums builds one enum definition per enum type in the schema, with
// labels in declaration order and their ordinal as the constant value.
func (d *PostgresDeriver) deriveEnums(ctx context.Context) (map[string]any, error) {
	query := `
		SELECT t.typname, e.enumlabel
		FROM pg_type t
		JOIN pg_enum e ON e.enumtypid = t.oid
		JOIN pg_namespace n ON n.oid = t.typnamespace
		WHERE n.nspname = $1
		ORDER BY t.typname, e.enumsortorder
	`

	rows, err := d.client.Conn().Query(ctx, query, d.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enums := make(map[string]any)
	for rows.Next() {
		var typeName, label string
		if err := rows.Scan(&typeName, &label); err != nil {
			return nil, err
		}

		def, ok := enums[typeName].(map[string]any)
		if !ok {
			def = map[string]any{"name": typeName, "values": []any{}}
			enums[typeName] = def
		}
		values := def["values"].([]any)
		def["values"] = append(values, map[string]any{
			"name":  label,
			"value": int64(len(values)),
		})
	}

	return enums, rows.Err()
}

// getTableNames returns the list of tables to derive classes from
func (d *PostgresDeriver) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := d.client.Conn().Query(ctx, query, d.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	return tables, rows.Err()
}

// deriveClass builds a raw class definition from a table's columns
func (d *PostgresDeriver) deriveClass(ctx context.Context, tableName string, enums map[string]any) (map[string]any, error) {
	query := `
		SELECT column_name, data_type, udt_name, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := d.client.Conn().Query(ctx, query, d.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := make(map[string]any)
	for rows.Next() {
		var name, dataType, udtName, nullable string
		var defaultVal *string

		if err := rows.Scan(&name, &dataType, &udtName, &nullable, &defaultVal); err != nil {
			return nil, err
		}

		prop := derivePostgresProperty(dataType, udtName, enums)
		if nullable == "NO" {
			prop["required"] = true
		}
		if defaultVal != nil {
			prop["default"] = *defaultVal
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

// derivePostgresProperty maps a column type to a raw property definition.
// User-defined types that match a derived enum become enum references; array
// columns map to array properties of their element type.
func derivePostgresProperty(dataType, udtName string, enums map[string]any) map[string]any {
	if dataType == "ARRAY" {
		// Array columns report the element type as udt_name with a leading
		// underscore, e.g. _int4.
		elem := derivePostgresProperty("USER-DEFINED", trimLeadingUnderscore(udtName), enums)
		elem["array"] = true
		return elem
	}

	if _, ok := enums[udtName]; ok {
		return map[string]any{"type": "enum", "enumType": udtName}
	}

	return map[string]any{"type": mapPostgresType(dataType, udtName)}
}

func trimLeadingUnderscore(s string) string {
	if len(s) > 0 && s[0] == '_' {
		return s[1:]
	}
	return s
}

// mapPostgresType maps a PostgreSQL type to a schema property type
func mapPostgresType(dataType, udtName string) string {
	switch dataType {
	case "smallint":
		return "int16"
	case "integer":
		return "int32"
	case "bigint":
		return "int64"
	case "real":
		return "float32"
	case "double precision", "numeric":
		return "float64"
	case "boolean":
		return "boolean"
	}

	// ARRAY elements arrive as bare udt names
	switch udtName {
	case "int2":
		return "int16"
	case "int4":
		return "int32"
	case "int8":
		return "int64"
	case "float4":
		return "float32"
	case "float8", "numeric":
		return "float64"
	case "bool":
		return "boolean"
	}

	// text, varchar, uuid, timestamps and anything else land on string
	return "string"
}
