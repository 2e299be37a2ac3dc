//go:build integration

package tests

import (
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/piensaperu/api/internal/router"
	"github.com/piensaperu/api/internal/service"
	"github.com/piensaperu/api/internal/store"
	"github.com/piensaperu/api/internal/testing/fixtures"
	"github.com/piensaperu/api/internal/testing/helpers"
	"github.com/piensaperu/api/internal/testing/testdb"
)

const (
	backendSurreal  = "surrealdb"
	backendPostgres = "postgres"
)

// testEnv is a fully wired API over one isolated database
type testEnv struct {
	server   http.Handler
	store    *store.Store
	fixtures *fixtures.Factory
	jwt      *helpers.JWTHelper
}

func backendEnabled(name string) bool {
	raw := os.Getenv("TEST_BACKENDS")
	if raw == "" {
		return true
	}
	return slices.Contains(strings.Split(raw, ","), name)
}

// forEachBackend runs fn against a fresh environment per enabled backend
func forEachBackend(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	t.Helper()

	open := map[string]func(t *testing.T) *store.Store{
		backendSurreal: func(t *testing.T) *store.Store {
			return store.NewSurreal(testdb.New(t).DB, slog.New(slog.DiscardHandler))
		},
		backendPostgres: func(t *testing.T) *store.Store {
			return store.NewPostgres(testdb.NewPostgres(t).DB)
		},
	}

	for _, name := range []string{backendSurreal, backendPostgres} {
		t.Run(name, func(t *testing.T) {
			if !backendEnabled(name) {
				t.Skipf("%s backend disabled", name)
			}
			fn(t, newTestEnv(t, open[name](t)))
		})
	}
}

func newTestEnv(t *testing.T, st *store.Store) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	jwtHelper := helpers.NewJWTHelper(t)

	server := router.New(router.Config{
		Califications: service.NewCalificationService(service.CalificationServiceConfig{
			Repo:       st.Califications,
			UnitOfWork: st.Scope,
			Logger:     logger,
		}),
		Militants: service.NewMilitantService(service.MilitantServiceConfig{
			Repo:       st.Militants,
			UnitOfWork: st.Scope,
			Logger:     logger,
		}),
		Parties: service.NewPoliticalPartyService(service.PoliticalPartyServiceConfig{
			Repo:       st.Parties,
			UnitOfWork: st.Scope,
			Logger:     logger,
		}),
		Ping:           st.Ping,
		Scope:          st.Scope,
		Validator:      jwtHelper.Service,
		AllowedOrigins: []string{"http://localhost:3000"},
		Logger:         logger,
	})

	return &testEnv{
		server:   server,
		store:    st,
		fixtures: fixtures.New(st),
		jwt:      jwtHelper,
	}
}

func militantPath(id int64) string {
	return "/v1/militants/" + strconv.FormatInt(id, 10)
}

func partyPath(id int64) string {
	return "/v1/political-parties/" + strconv.FormatInt(id, 10)
}

func calificationPath(id int64) string {
	return "/v1/califications/" + strconv.FormatInt(id, 10)
}

func userCalificationsPath(userID int64) string {
	return "/v1/users/" + strconv.FormatInt(userID, 10) + "/califications"
}
