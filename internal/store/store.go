// Package store persists scenarios, their units and unit snapshots.
//
// Two backends implement Repository: an in-memory map for tests, demos and
// throwaway servers, and SQLite for anything that must survive a restart.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"revenue-model/internal/model"
)

// Snapshot is a saved copy of a scenario's prices and units, used to undo
// edits. Units are deep copies and keep their IDs.
type Snapshot struct {
	ID         string
	ScenarioID string
	CreatedAt  time.Time
	ETHPrice   float64
	BTCPrice   float64
	Units      []model.Unit
}

// Repository is the persistence boundary. Lookups of unknown IDs return
// errors wrapping model.ErrNotFound. Units are always listed in creation
// order.
type Repository interface {
	ListScenarios(ctx context.Context) ([]model.Scenario, error)
	GetScenario(ctx context.Context, id string) (model.Scenario, error)
	// GetActiveScenario returns the scenario flagged active, or ErrNotFound.
	GetActiveScenario(ctx context.Context) (model.Scenario, error)
	// CreateScenario assigns an ID. Making a scenario active clears the flag
	// on every other scenario.
	CreateScenario(ctx context.Context, sc model.Scenario) (model.Scenario, error)
	UpdateScenarioPrices(ctx context.Context, id string, eth, btc float64) (model.Scenario, error)

	ListUnits(ctx context.Context, scenarioID string) ([]model.Unit, error)
	GetUnit(ctx context.Context, id string) (model.Unit, error)
	CreateUnit(ctx context.Context, u model.Unit) (model.Unit, error)
	UpdateUnit(ctx context.Context, u model.Unit) (model.Unit, error)
	// UpdateUnits replaces the parameters of several units of one scenario
	// in a single step: either all are written or none.
	UpdateUnits(ctx context.Context, scenarioID string, units []model.Unit) error
	DeleteUnit(ctx context.Context, id string) error

	SaveSnapshot(ctx context.Context, scenarioID string) (Snapshot, error)
	// ListSnapshots returns newest first.
	ListSnapshots(ctx context.Context, scenarioID string) ([]Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (Snapshot, error)
	// RestoreSnapshot replaces the scenario's prices and units with the
	// snapshot's, atomically.
	RestoreSnapshot(ctx context.Context, id string) (model.Scenario, error)

	Close() error
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, model.ErrNotFound)
}

func duplicateScenario(name string) error {
	return &model.FieldError{Kind: model.ErrInvalidRequest, Field: "name", Reason: fmt.Sprintf("scenario %q already exists", name)}
}

func duplicateUnit(name string) error {
	return &model.FieldError{Kind: model.ErrInvalidUnit, Field: "name", Reason: fmt.Sprintf("unit %q already exists in scenario", name)}
}

func checkScenario(sc model.Scenario) error {
	if strings.TrimSpace(sc.Name) == "" {
		return &model.FieldError{Kind: model.ErrInvalidRequest, Field: "name", Reason: "is required"}
	}
	return sc.Validate()
}

func cloneUnits(units []model.Unit) []model.Unit {
	out := make([]model.Unit, len(units))
	for i, u := range units {
		out[i] = u.Clone()
	}
	return out
}
