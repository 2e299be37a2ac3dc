package database

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// NextID reserves the next integer key for table.
// Keys live in sequence:<table> records and are allocated outside the unit of
// work, so an aborted commit leaves a gap.
func NextID(ctx context.Context, db Database, table string) (int64, error) {
	query := `UPSERT type::record('sequence', $table) SET value += 1 RETURN value`
	vars := map[string]interface{}{"table": table}

	result, err := db.QueryOne(ctx, query, vars)
	if err != nil {
		return 0, fmt.Errorf("reserve %s id: %w", table, err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("%w: unexpected sequence result %T", ErrQuery, result)
	}
	id, ok := ToInt64(data["value"])
	if !ok || id <= 0 {
		return 0, fmt.Errorf("%w: invalid sequence value %v", ErrQuery, data["value"])
	}
	return id, nil
}

// ToInt64 converts the numeric types the SurrealDB client decodes into int64.
// Record IDs with integer keys are unwrapped as well.
func ToInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case models.RecordID:
		return ToInt64(n.ID)
	case *models.RecordID:
		if n != nil {
			return ToInt64(n.ID)
		}
	}
	return 0, false
}
