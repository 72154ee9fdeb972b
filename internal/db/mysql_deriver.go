package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// MySQLDeriver translates MySQL structure into raw schema definitions. MySQL
// has no named enum types, only per-column enums, so each enum column
// synthesizes a <table>_<column> enum definition plus a property referencing
// it.
type MySQLDeriver struct {
	client     *MySQLClient
	schemaName string
}

// NewMySQLDeriver creates a new MySQL schema deriver
func NewMySQLDeriver(client *MySQLClient, schemaName string) *MySQLDeriver {
	return &MySQLDeriver{
		client:     client,
		schemaName: schemaName,
	}
}

// DeriveRawSchema derives raw schema definitions for the specified tables.
// If tables is empty, every table in the schema becomes a class.
func (d *MySQLDeriver) DeriveRawSchema(ctx context.Context, tables []string) (map[string]any, error) {
	tableNames, err := d.getTableNames(ctx, tables)
	if err != nil {
		return nil, fmt.Errorf("failed to get table names: %w", err)
	}

	enums := make(map[string]any)
	classes := make(map[string]any, len(tableNames))
	for _, tableName := range tableNames {
		class, err := d.deriveClass(ctx, tableName, enums)
		if err != nil {
			return nil, fmt.Errorf("failed to derive class for table %s: %w", tableName, err)
		}
		classes[tableName] = class
	}

	return map[string]any{
		"name":    d.schemaName,
		"enums":   enums,
		"classes": classes,
	}, nil
}

// getTableNames returns the list of tables to derive classes from
func (d *MySQLDeriver) getTableNames(ctx context.Context, requestedTables []string) ([]string, error) {
	if len(requestedTables) > 0 {
		return requestedTables, nil
	}

	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := d.client.DB().QueryContext(ctx, query, d.schemaName)
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

// deriveClass builds a raw class definition from a table's columns, adding a
// synthesized enum definition to enums for every enum column encountered.
func (d *MySQLDeriver) deriveClass(ctx context.Context, tableName string, enums map[string]any) (map[string]any, error) {
	query := `
		SELECT column_name, column_type, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := d.client.DB().QueryContext(ctx, query, d.schemaName, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := make(map[string]any)
	for rows.Next() {
		var name, columnType, dataType, nullable string
		var defaultVal sql.NullString

		if err := rows.Scan(&name, &columnType, &dataType, &nullable, &defaultVal); err != nil {
			return nil, err
		}

		var prop map[string]any
		if dataType == "enum" {
			enumID := tableName + "_" + name
			labels, err := parseEnumColumnType(columnType)
			if err != nil {
				return nil, err
			}
			enums[enumID] = enumFromLabels(enumID, labels)
			prop = map[string]any{"type": "enum", "enumType": enumID}
		} else {
			prop = map[string]any{"type": mapMySQLType(dataType)}
		}

		if nullable == "NO" {
			prop["required"] = true
		}
		if defaultVal.Valid {
			prop["default"] = defaultVal.String
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

// parseEnumColumnType parses the labels out of a MySQL column type string of
// the form "enum('value1','value2','value3')".
func parseEnumColumnType(columnType string) ([]string, error) {
	if !strings.HasPrefix(columnType, "enum(") {
		return nil, fmt.Errorf("not an enum column type: %s", columnType)
	}

	start := strings.Index(columnType, "(")
	end := strings.LastIndex(columnType, ")")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("invalid enum type format: %s", columnType)
	}

	var labels []string
	for _, part := range strings.Split(columnType[start+1:end], ",") {
		part = strings.TrimSpace(part)
		// Remove surrounding quotes
		if len(part) >= 2 && part[0] == '\'' && part[len(part)-1] == '\'' {
			part = part[1 : len(part)-1]
		}
		labels = append(labels, part)
	}

	return labels, nil
}

// enumFromLabels builds a raw enum definition with ordinal constant values
func enumFromLabels(name string, labels []string) map[string]any {
	values := make([]any, 0, len(labels))
	for i, label := range labels {
		values = append(values, map[string]any{
			"name":  label,
			"value": int64(i),
		})
	}
	return map[string]any{"name": name, "values": values}
}

// mapMySQLType maps a MySQL data type to a schema property type
func mapMySQLType(dataType string) string {
	switch dataType {
	case "tinyint":
		return "int8"
	case "smallint":
		return "int16"
	case "int", "mediumint":
		return "int32"
	case "bigint":
		return "int64"
	case "float":
		return "float32"
	case "double", "decimal":
		return "float64"
	default:
		// char, varchar, text, datetime, json and the rest land on string
		return "string"
	}
}
