// Package testdb provides isolated databases for integration tests.
//
// # SurrealDB
//
// New connects to the instance named by TEST_DB_HOST and TEST_DB_PORT
// (default localhost:8000), creates a unique namespace and applies the
// embedded schema. The namespace is removed when the test finishes:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    repo := repository.NewMilitantRepository(tdb.DB)
//	}
//
// # PostgreSQL
//
// NewPostgres creates a fresh database per test and runs the embedded
// migrations. The server is TEST_POSTGRES_DSN when set, otherwise a
// postgres container started once per test binary with testcontainers-go:
//
//	pdb := testdb.NewPostgres(t)
//	repo := pgrepo.NewMilitantRepository(pdb.DB.DB)
//
// # Shared Database
//
// For subtests that share schema but need clean data:
//
//	shared := testdb.NewShared(t)
//	t.Run("create", func(t *testing.T) { tdb := shared.SetupSubtest(t) })
package testdb
