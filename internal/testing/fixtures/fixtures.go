// Package fixtures provides test data factories for integration tests.
//
// Each factory method creates entities with sensible defaults while allowing
// customization via option functions. Entities are written through the
// store's repositories inside their own unit of work, so the factory works
// the same against every backend.
//
// Usage:
//
//	f := fixtures.New(store.NewSurreal(tdb.DB, logger))
//	party := f.CreatePoliticalParty(t)
//	militant := f.CreateMilitant(t, fixtures.WithLastName("Quispe"))
//	calification := f.CreateCalification(t, 42)
package fixtures

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/piensaperu/api/internal/model"
	"github.com/piensaperu/api/internal/store"
)

// Factory creates test entities in the database
type Factory struct {
	store *store.Store
}

// New creates a new fixture factory
func New(s *store.Store) *Factory {
	return &Factory{store: s}
}

var sequence atomic.Int64

// nextSuffix keeps generated names unique within a test binary
func nextSuffix() int64 {
	return sequence.Add(1)
}

// commit runs write inside a fresh unit of work and completes it
func (f *Factory) commit(t *testing.T, what string, write func(ctx context.Context) error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ctx = f.store.Scope.Begin(ctx)
	if err := write(ctx); err != nil {
		t.Fatalf("fixtures: failed to stage %s: %v", what, err)
	}
	if err := f.store.Scope.Complete(ctx); err != nil {
		t.Fatalf("fixtures: failed to commit %s: %v", what, err)
	}
}

// ============================================================================
// Militant Fixtures
// ============================================================================

// MilitantOption customizes militant creation
type MilitantOption func(*model.Militant)

// WithFirstName sets the militant's first name
func WithFirstName(name string) MilitantOption {
	return func(m *model.Militant) { m.FirstName = name }
}

// WithLastName sets the militant's last name
func WithLastName(name string) MilitantOption {
	return func(m *model.Militant) { m.LastName = name }
}

// WithProfession sets the militant's profession
func WithProfession(profession string) MilitantOption {
	return func(m *model.Militant) { m.Profession = profession }
}

// CreateMilitant creates a militant with optional customizations
func (f *Factory) CreateMilitant(t *testing.T, opts ...MilitantOption) *model.Militant {
	t.Helper()

	n := nextSuffix()
	m := &model.Militant{
		FirstName:   fmt.Sprintf("Militant %d", n),
		LastName:    "Fixture",
		BirthDate:   time.Date(1980, time.March, 14, 0, 0, 0, 0, time.UTC),
		Profession:  "Abogado",
		PictureLink: fmt.Sprintf("https://cdn.piensaperu.pe/militants/%d.png", n),
	}
	for _, opt := range opts {
		opt(m)
	}

	f.commit(t, "militant", func(ctx context.Context) error {
		return f.store.Militants.Add(ctx, m)
	})
	return m
}

// ============================================================================
// Political Party Fixtures
// ============================================================================

// PartyOption customizes political party creation
type PartyOption func(*model.PoliticalParty)

// WithPartyName sets the party name
func WithPartyName(name string) PartyOption {
	return func(p *model.PoliticalParty) { p.Name = name }
}

// WithPosition sets the party's political position
func WithPosition(position string) PartyOption {
	return func(p *model.PoliticalParty) { p.Position = position }
}

// CreatePoliticalParty creates a party with optional customizations
func (f *Factory) CreatePoliticalParty(t *testing.T, opts ...PartyOption) *model.PoliticalParty {
	t.Helper()

	n := nextSuffix()
	p := &model.PoliticalParty{
		Name:           fmt.Sprintf("Partido %d", n),
		PresidentName:  "Presidente Fixture",
		FoundationDate: time.Date(1990, time.July, 28, 0, 0, 0, 0, time.UTC),
		Ideology:       "Liberal",
		Position:       "center",
		PictureLink:    fmt.Sprintf("https://cdn.piensaperu.pe/parties/%d.png", n),
	}
	for _, opt := range opts {
		opt(p)
	}

	f.commit(t, "political party", func(ctx context.Context) error {
		return f.store.Parties.Add(ctx, p)
	})
	return p
}

// ============================================================================
// Calification Fixtures
// ============================================================================

// CalificationOption customizes calification creation
type CalificationOption func(*model.Calification)

// WithScore sets the calification score
func WithScore(score int) CalificationOption {
	return func(c *model.Calification) { c.Score = score }
}

// WithShipDate sets when the calification was sent
func WithShipDate(at time.Time) CalificationOption {
	return func(c *model.Calification) { c.ShipDate = at }
}

// CreateCalification creates a calification owned by userID
func (f *Factory) CreateCalification(t *testing.T, userID int64, opts ...CalificationOption) *model.Calification {
	t.Helper()

	c := &model.Calification{
		Score:    14,
		ShipDate: time.Now().UTC().Truncate(time.Second),
		UserID:   userID,
	}
	for _, opt := range opts {
		opt(c)
	}

	f.commit(t, "calification", func(ctx context.Context) error {
		return f.store.Califications.Add(ctx, c)
	})
	return c
}
