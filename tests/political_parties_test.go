//go:build integration

package tests

/*
FEATURE: Political Parties
DOMAIN: Administrator Context

ACCEPTANCE CRITERIA:
===================

AC-PARTY-001: Create Party
  GIVEN an administrator token
  WHEN the admin posts a party with name and president
  THEN the party is stored with an assigned id

AC-PARTY-002: Validation
  GIVEN a party name longer than 150 characters
  WHEN the admin posts it
  THEN 422 names the name field

AC-PARTY-003: Public Reads
  GIVEN parties on the left and right
  WHEN an anonymous caller lists parties
  THEN both are returned

AC-PARTY-004: Update Party
  GIVEN an existing party
  WHEN the admin changes its position
  THEN the change is persisted

AC-PARTY-005: Delete Party
  GIVEN an existing party
  WHEN the admin deletes it
  THEN it no longer appears in the list
*/

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piensaperu/api/internal/model"
	"github.com/piensaperu/api/internal/testing/fixtures"
	"github.com/piensaperu/api/internal/testing/helpers"
)

func partyBody() map[string]interface{} {
	return map[string]interface{}{
		"name":            "Partido Morado",
		"president_name":  "Julio Guzmán",
		"foundation_date": "2016-09-14T00:00:00Z",
		"ideology":        "Centrismo",
		"position":        "center",
	}
}

func TestPoliticalParty_Create(t *testing.T) {
	// AC-PARTY-001: Create Party
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		rr := helpers.NewRequest(t, http.MethodPost, "/v1/political-parties").
			WithBody(partyBody()).
			WithAdmin(env.jwt).
			Do(env.server)

		helpers.AssertStatus(t, rr, http.StatusCreated)
		created := helpers.DecodeData[model.PoliticalParty](t, rr)
		require.Positive(t, created.ID)

		stored, err := env.store.Parties.FindByID(t.Context(), created.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Partido Morado", stored.Name)
		assert.Equal(t, "center", stored.Position)
	})
}

func TestPoliticalParty_Create_Validation(t *testing.T) {
	// AC-PARTY-002: Validation
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		body := partyBody()
		body["name"] = strings.Repeat("x", 151)

		rr := helpers.NewRequest(t, http.MethodPost, "/v1/political-parties").
			WithBody(body).
			WithAdmin(env.jwt).
			Do(env.server)

		helpers.AssertValidationError(t, rr, "name")
	})
}

func TestPoliticalParty_List(t *testing.T) {
	// AC-PARTY-003: Public Reads
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		env.fixtures.CreatePoliticalParty(t, fixtures.WithPosition("left"))
		env.fixtures.CreatePoliticalParty(t, fixtures.WithPosition("right"))

		rr := helpers.NewRequest(t, http.MethodGet, "/v1/political-parties").Do(env.server)

		helpers.AssertStatus(t, rr, http.StatusOK)
		listed := helpers.DecodeData[[]model.PoliticalParty](t, rr)
		require.Len(t, listed, 2)
		assert.Equal(t, "left", listed[0].Position)
		assert.Equal(t, "right", listed[1].Position)
	})
}

func TestPoliticalParty_Update(t *testing.T) {
	// AC-PARTY-004: Update Party
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		existing := env.fixtures.CreatePoliticalParty(t)
		body := partyBody()
		body["position"] = "center-left"

		rr := helpers.NewRequest(t, http.MethodPut, partyPath(existing.ID)).
			WithBody(body).
			WithAdmin(env.jwt).
			Do(env.server)

		helpers.AssertStatus(t, rr, http.StatusOK)

		stored, err := env.store.Parties.FindByID(t.Context(), existing.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "center-left", stored.Position)
		assert.Equal(t, "Julio Guzmán", stored.PresidentName)
	})
}

func TestPoliticalParty_Delete(t *testing.T) {
	// AC-PARTY-005: Delete Party
	forEachBackend(t, func(t *testing.T, env *testEnv) {
		kept := env.fixtures.CreatePoliticalParty(t)
		removed := env.fixtures.CreatePoliticalParty(t)

		rr := helpers.NewRequest(t, http.MethodDelete, partyPath(removed.ID)).
			WithAdmin(env.jwt).
			Do(env.server)
		helpers.AssertStatus(t, rr, http.StatusOK)

		parties, err := env.store.Parties.List(t.Context())
		require.NoError(t, err)
		require.Len(t, parties, 1)
		assert.Equal(t, kept.ID, parties[0].ID)
	})
}
