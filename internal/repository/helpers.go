package repository

import (
	"context"
	"errors"
	"time"

	"github.com/piensaperu/api/internal/database"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// stage queues a write on the unit of work carried by ctx.
// rollback, if set, runs when the commit fails.
func stage(ctx context.Context, query string, vars map[string]interface{}, rollback func(ctx context.Context) error) error {
	uow, ok := database.UnitOfWorkFromContext(ctx)
	if !ok {
		return database.ErrNoUnitOfWork
	}
	uow.AddWithRollback(query, vars, rollback)
	return nil
}

// queryOneRecord runs a single-record query and returns (nil, nil) when missing
func queryOneRecord(ctx context.Context, db database.Database, query string, vars map[string]interface{}) (map[string]interface{}, error) {
	result, err := db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return data, nil
}

// queryRecords runs a query and returns the records of its first statement
func queryRecords(ctx context.Context, db database.Database, query string, vars map[string]interface{}) ([]map[string]interface{}, error) {
	result, err := db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	items, ok := extractQueryResults(result)
	if !ok {
		return nil, nil
	}

	records := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if data, ok := item.(map[string]interface{}); ok {
			records = append(records, data)
		}
	}
	return records, nil
}

// extractQueryResults extracts query results array from SurrealDB response
func extractQueryResults(result []interface{}) ([]interface{}, bool) {
	if len(result) == 0 {
		return nil, false
	}
	if first, ok := result[0].(map[string]interface{}); ok {
		if resultArray, ok := first["result"].([]interface{}); ok {
			return resultArray, true
		}
		if _, wrapped := first["status"]; wrapped {
			return nil, false
		}
	}
	// Direct array format
	return result, true
}

// formatTime renders t for a <datetime> cast
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getInt64 extracts an integer value from a map
func getInt64(m map[string]interface{}, key string) int64 {
	v, _ := database.ToInt64(m[key])
	return v
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) time.Time {
	switch v := m[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t
		}
	// Handle SurrealDB CustomDateTime type
	case models.CustomDateTime:
		return v.Time
	case *models.CustomDateTime:
		if v != nil {
			return v.Time
		}
	}
	return time.Time{}
}
