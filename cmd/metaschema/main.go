package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/tordal/metaschema"
	"github.com/tordal/metaschema/internal/formatter"
	"github.com/tordal/metaschema/internal/schema"
)

var (
	inputFile      string
	dbURL          string
	mysqlURL       string
	sqlitePath     string
	outputFile     string
	outputDir      string
	classes        string
	schemaName     string
	format         string
	splitThreshold int
)

var rootCmd = &cobra.Command{
	Use:   "metaschema",
	Short: "Build and render metadata schema models",
	Long: `Metaschema builds an immutable metadata schema model (named enums plus named
classes whose properties may reference them) from a JSON schema document or a
live PostgreSQL, MySQL, or SQLite database, and renders it as text or markdown.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Schema JSON file to build the model from")
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string (default: $DATABASE_URL)")
	rootCmd.Flags().StringVar(&mysqlURL, "mysql-url", "", "MySQL connection string")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Output directory for multi-file output")
	rootCmd.Flags().StringVarP(&classes, "classes", "c", "", "Specific classes (comma-separated, optional)")
	rootCmd.Flags().StringVarP(&schemaName, "schema", "s", "public", "Database schema name (default: public for PostgreSQL)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or markdown (default: text)")
	rootCmd.Flags().IntVar(&splitThreshold, "split-threshold", 0, "Split into multiple files when class count exceeds this (requires --output-dir)")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Validate source flags
	srcCount := 0
	for _, src := range []string{inputFile, dbURL, mysqlURL, sqlitePath} {
		if src != "" {
			srcCount++
		}
	}
	if srcCount == 0 {
		// A .env file or the environment may carry the connection string.
		dbURL = os.Getenv("DATABASE_URL")
		if dbURL == "" {
			return fmt.Errorf("one of --input, --db-url, --mysql-url, or --sqlite must be specified")
		}
	}
	if srcCount > 1 {
		return fmt.Errorf("only one of --input, --db-url, --mysql-url, or --sqlite can be specified")
	}

	classList := parseClassList(classes)

	s, err := buildSchema(ctx, classList)
	if err != nil {
		return err
	}

	// Check if we should use multi-file output
	shouldSplit := outputDir != "" && (splitThreshold == 0 || len(s.ClassIDs()) > splitThreshold)

	// Validate flag combinations
	if outputDir != "" && outputFile != "" {
		return fmt.Errorf("cannot use both --output-dir and --output flags")
	}

	// Multi-file output
	if shouldSplit {
		multiFormatter := formatter.NewMultiFileFormatter(outputDir, format)
		if err := multiFormatter.Format(s); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return nil
	}

	// Single-file output
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	// Format and write output
	switch format {
	case "text":
		textFormatter := formatter.NewTextFormatter(writer)
		err = textFormatter.Format(s)
	case "markdown":
		markdownFormatter := formatter.NewMarkdownFormatter(writer)
		err = markdownFormatter.Format(s)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'markdown')", format)
	}

	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return nil
}

// buildSchema builds the model from whichever source was selected
func buildSchema(ctx context.Context, classList []string) (*schema.Schema, error) {
	if inputFile != "" {
		s, err := metaschema.LoadSchema(inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
		if len(classList) > 0 {
			fmt.Fprintf(os.Stderr, "warning: --classes is ignored for --input schemas\n")
		}
		return s, nil
	}

	databaseURL := assembleDatabaseURL(dbURL, mysqlURL, sqlitePath)

	opts := &metaschema.Options{
		Classes:    classList,
		SchemaName: schemaName,
	}
	if sqlitePath != "" || mysqlURL != "" {
		// SchemaName "public" only makes sense for PostgreSQL
		opts.SchemaName = ""
		if schemaName != "public" {
			opts.SchemaName = schemaName
		}
	}

	s, err := metaschema.DeriveSchema(ctx, databaseURL, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to derive schema: %w", err)
	}
	return s, nil
}

// parseClassList splits a comma-separated class list, trimming whitespace
func parseClassList(s string) []string {
	if s == "" {
		return nil
	}
	list := strings.Split(s, ",")
	for i, c := range list {
		list[i] = strings.TrimSpace(c)
	}
	return list
}

// assembleDatabaseURL turns the selected source flag into a connection URL
func assembleDatabaseURL(dbURL, mysqlURL, sqlitePath string) string {
	switch {
	case sqlitePath != "":
		return "sqlite://" + sqlitePath
	case mysqlURL != "":
		return "mysql://" + strings.TrimPrefix(mysqlURL, "mysql://")
	default:
		return dbURL
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
