// Package repository implements the SurrealDB data access layer for the PiensaPeru API.
//
// Each repository struct handles CRUD operations for one domain entity.
//
// # Repository Pattern
//
// All repositories follow a consistent pattern:
//
//   - Constructor function (NewXxxRepository) accepts a database.Database
//   - Reads (List, FindByID) execute immediately; FindByID returns (nil, nil) when missing
//   - Writes (Add, Update, Remove) are staged on the unit of work carried by the context
//     and only reach the database when the unit of work is completed
//   - Results are parsed and mapped to model structs
//
// # Identifiers
//
// Records use integer keys, e.g. militant:42. Add reserves the key up front
// with database.NextID so the caller sees the ID before the commit.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax
//   - type::record('<table>', $id) for record access
//   - record::id(id) to project the integer key
//   - <datetime> casts for RFC 3339 timestamps
//
// The PostgreSQL implementations live in the postgres subpackage.
package repository
