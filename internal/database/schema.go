package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed schema/*.surql
var schemaFS embed.FS

// SchemaFiles returns the embedded schema files in apply order
func SchemaFiles() ([]string, error) {
	names, err := fs.Glob(schemaFS, "schema/*.surql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// ApplySchema executes every embedded schema file against db.
// Statements use IF NOT EXISTS, so applying twice is harmless.
func ApplySchema(ctx context.Context, db Database) error {
	names, err := SchemaFiles()
	if err != nil {
		return fmt.Errorf("list schema files: %w", err)
	}

	for _, name := range names {
		content, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := db.Execute(ctx, string(content), nil); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}
