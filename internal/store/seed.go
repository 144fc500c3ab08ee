package store

import (
	"context"
	"errors"
	"fmt"

	"revenue-model/internal/model"
)

// Seed creates sc (marked active) and its units when no scenario exists yet.
// It reports whether anything was written.
func Seed(ctx context.Context, repo Repository, sc model.Scenario, units []model.Unit) (bool, error) {
	existing, err := repo.ListScenarios(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	sc.Active = true
	created, err := repo.CreateScenario(ctx, sc)
	if err != nil {
		return false, fmt.Errorf("seed scenario: %w", err)
	}
	for _, u := range units {
		u.ScenarioID = created.ID
		if _, err := repo.CreateUnit(ctx, u); err != nil {
			return false, fmt.Errorf("seed unit %q: %w", u.Name, err)
		}
	}
	return true, nil
}

// ActiveOrFirst returns the active scenario, falling back to the first one.
func ActiveOrFirst(ctx context.Context, repo Repository) (model.Scenario, error) {
	sc, err := repo.GetActiveScenario(ctx)
	if err == nil || !errors.Is(err, model.ErrNotFound) {
		return sc, err
	}
	all, err := repo.ListScenarios(ctx)
	if err != nil {
		return model.Scenario{}, err
	}
	if len(all) == 0 {
		return model.Scenario{}, notFound("scenario", "any")
	}
	return all[0], nil
}
