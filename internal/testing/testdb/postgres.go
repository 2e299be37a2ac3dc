package testdb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	pgdb "github.com/piensaperu/api/internal/database/postgres"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "piensaperu"
	postgresPassword = "piensaperu"
)

// PostgresDB is an isolated PostgreSQL database with migrations applied
type PostgresDB struct {
	DB   *pgdb.DB
	Name string
	t    *testing.T
}

var (
	serverOnce sync.Once
	serverDSN  string
	serverErr  error
)

// postgresServer returns the DSN of the server test databases are created on.
// TEST_POSTGRES_DSN points at an existing server; otherwise one container is
// started per test binary and left to the testcontainers reaper.
func postgresServer() (string, error) {
	serverOnce.Do(func() {
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			serverDSN = dsn
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        postgresImage,
				ExposedPorts: []string{"5432/tcp"},
				Env: map[string]string{
					"POSTGRES_USER":     postgresUser,
					"POSTGRES_PASSWORD": postgresPassword,
					"POSTGRES_DB":       "postgres",
				},
				// The entrypoint restarts postgres once after initdb
				WaitingFor: wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(time.Minute),
			},
			Started: true,
		})
		if err != nil {
			serverErr = fmt.Errorf("start postgres container: %w", err)
			return
		}

		endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
		if err != nil {
			serverErr = fmt.Errorf("resolve postgres endpoint: %w", err)
			return
		}
		serverDSN = fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", postgresUser, postgresPassword, endpoint)
	})
	return serverDSN, serverErr
}

// withDatabase returns dsn pointing at database name
func withDatabase(dsn, name string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	u.Path = "/" + name
	return u.String(), nil
}

// NewPostgres creates a fresh database on the test server and migrates it.
// The database is dropped when the test finishes.
func NewPostgres(t *testing.T) *PostgresDB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dsn, err := postgresServer()
	if err != nil {
		t.Fatalf("testdb: %v", err)
	}

	admin, err := pgdb.Open(ctx, pgdb.Config{DSN: dsn, MaxConns: 2})
	if err != nil {
		t.Fatalf("testdb: connect to server: %v", err)
	}
	t.Cleanup(func() { _ = admin.Close() })

	name := uniqueName()
	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+name); err != nil {
		t.Fatalf("testdb: create database: %v", err)
	}

	testDSN, err := withDatabase(dsn, name)
	if err != nil {
		t.Fatalf("testdb: %v", err)
	}
	db, err := pgdb.Open(ctx, pgdb.Config{DSN: testDSN, MaxConns: 5})
	if err != nil {
		t.Fatalf("testdb: connect to %s: %v", name, err)
	}

	pdb := &PostgresDB{DB: db, Name: name, t: t}
	t.Cleanup(func() {
		_ = db.Close()
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer dropCancel()
		_, _ = admin.ExecContext(dropCtx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)")
	})

	if err := pgdb.Migrate(db.DB); err != nil {
		t.Fatalf("testdb: migrate: %v", err)
	}

	return pdb
}

// Scope returns a unit of work scope bound to the test database
func (p *PostgresDB) Scope() *pgdb.Scope {
	return pgdb.NewScope(p.DB.DB)
}

// Reset truncates every table and restarts the id sequences
func (p *PostgresDB) Reset(t *testing.T) {
	t.Helper()
	_, err := p.DB.ExecContext(context.Background(),
		"TRUNCATE califications, militants, political_parties RESTART IDENTITY")
	if err != nil {
		t.Fatalf("testdb: truncate: %v", err)
	}
}
