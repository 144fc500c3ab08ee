package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"revenue-model/internal/id"
	"revenue-model/internal/model"
)

// Memory is a Repository held in process memory. Safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	scenarios map[string]model.Scenario
	units     map[string]model.Unit
	// unitOrder holds unit IDs per scenario in creation order.
	unitOrder map[string][]string
	snapshots map[string]Snapshot
	now       func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		scenarios: make(map[string]model.Scenario),
		units:     make(map[string]model.Unit),
		unitOrder: make(map[string][]string),
		snapshots: make(map[string]Snapshot),
		now:       time.Now,
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) ListScenarios(ctx context.Context) ([]model.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Scenario, 0, len(m.scenarios))
	for _, sc := range m.scenarios {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetScenario(ctx context.Context, id string) (model.Scenario, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sc, ok := m.scenarios[id]
	if !ok {
		return model.Scenario{}, notFound("scenario", id)
	}
	return sc, nil
}

func (m *Memory) GetActiveScenario(ctx context.Context) (model.Scenario, error) {
	all, _ := m.ListScenarios(ctx)
	for _, sc := range all {
		if sc.Active {
			return sc, nil
		}
	}
	return model.Scenario{}, notFound("scenario", "active")
}

func (m *Memory) CreateScenario(ctx context.Context, sc model.Scenario) (model.Scenario, error) {
	if err := checkScenario(sc); err != nil {
		return model.Scenario{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.scenarios {
		if other.Name == sc.Name {
			return model.Scenario{}, duplicateScenario(sc.Name)
		}
	}
	if sc.Active {
		for k, other := range m.scenarios {
			other.Active = false
			m.scenarios[k] = other
		}
	}
	sc.ID = id.New()
	m.scenarios[sc.ID] = sc
	return sc, nil
}

func (m *Memory) UpdateScenarioPrices(ctx context.Context, scenarioID string, eth, btc float64) (model.Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sc, ok := m.scenarios[scenarioID]
	if !ok {
		return model.Scenario{}, notFound("scenario", scenarioID)
	}
	sc = sc.WithPrices(eth, btc)
	if err := sc.Validate(); err != nil {
		return model.Scenario{}, err
	}
	m.scenarios[scenarioID] = sc
	return sc, nil
}

func (m *Memory) ListUnits(ctx context.Context, scenarioID string) ([]model.Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.scenarios[scenarioID]; !ok {
		return nil, notFound("scenario", scenarioID)
	}
	ids := m.unitOrder[scenarioID]
	out := make([]model.Unit, 0, len(ids))
	for _, uid := range ids {
		out = append(out, m.units[uid].Clone())
	}
	return out, nil
}

func (m *Memory) GetUnit(ctx context.Context, unitID string) (model.Unit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.units[unitID]
	if !ok {
		return model.Unit{}, notFound("unit", unitID)
	}
	return u.Clone(), nil
}

func (m *Memory) CreateUnit(ctx context.Context, u model.Unit) (model.Unit, error) {
	if err := u.Validate(); err != nil {
		return model.Unit{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.scenarios[u.ScenarioID]; !ok {
		return model.Unit{}, notFound("scenario", u.ScenarioID)
	}
	if m.nameTaken(u.ScenarioID, u.Name, "") {
		return model.Unit{}, duplicateUnit(u.Name)
	}
	u = u.Clone()
	u.ID = id.New()
	m.units[u.ID] = u
	m.unitOrder[u.ScenarioID] = append(m.unitOrder[u.ScenarioID], u.ID)
	return u.Clone(), nil
}

func (m *Memory) UpdateUnit(ctx context.Context, u model.Unit) (model.Unit, error) {
	if err := u.Validate(); err != nil {
		return model.Unit{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.units[u.ID]
	if !ok {
		return model.Unit{}, notFound("unit", u.ID)
	}
	// Units never move between scenarios.
	u.ScenarioID = cur.ScenarioID
	if m.nameTaken(u.ScenarioID, u.Name, u.ID) {
		return model.Unit{}, duplicateUnit(u.Name)
	}
	m.units[u.ID] = u.Clone()
	return u.Clone(), nil
}

func (m *Memory) UpdateUnits(ctx context.Context, scenarioID string, units []model.Unit) error {
	for _, u := range units {
		if err := u.Validate(); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range units {
		cur, ok := m.units[u.ID]
		if !ok || cur.ScenarioID != scenarioID {
			return notFound("unit", u.ID)
		}
	}
	for _, u := range units {
		u = u.Clone()
		u.ScenarioID = scenarioID
		m.units[u.ID] = u
	}
	return nil
}

func (m *Memory) DeleteUnit(ctx context.Context, unitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.units[unitID]
	if !ok {
		return notFound("unit", unitID)
	}
	delete(m.units, unitID)
	ids := m.unitOrder[u.ScenarioID]
	for i, v := range ids {
		if v == unitID {
			m.unitOrder[u.ScenarioID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) SaveSnapshot(ctx context.Context, scenarioID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sc, ok := m.scenarios[scenarioID]
	if !ok {
		return Snapshot{}, notFound("scenario", scenarioID)
	}
	units := make([]model.Unit, 0, len(m.unitOrder[scenarioID]))
	for _, uid := range m.unitOrder[scenarioID] {
		units = append(units, m.units[uid].Clone())
	}
	now := m.now().UTC()
	snap := Snapshot{
		ID:         id.NewAt(now),
		ScenarioID: scenarioID,
		CreatedAt:  now,
		ETHPrice:   sc.ETHPrice,
		BTCPrice:   sc.BTCPrice,
		Units:      units,
	}
	m.snapshots[snap.ID] = snap
	return copySnapshot(snap), nil
}

func (m *Memory) ListSnapshots(ctx context.Context, scenarioID string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.scenarios[scenarioID]; !ok {
		return nil, notFound("scenario", scenarioID)
	}
	out := []Snapshot{}
	for _, s := range m.snapshots {
		if s.ScenarioID == scenarioID {
			out = append(out, copySnapshot(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) GetSnapshot(ctx context.Context, snapshotID string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.snapshots[snapshotID]
	if !ok {
		return Snapshot{}, notFound("snapshot", snapshotID)
	}
	return copySnapshot(s), nil
}

func (m *Memory) RestoreSnapshot(ctx context.Context, snapshotID string) (model.Scenario, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.snapshots[snapshotID]
	if !ok {
		return model.Scenario{}, notFound("snapshot", snapshotID)
	}
	sc, ok := m.scenarios[snap.ScenarioID]
	if !ok {
		return model.Scenario{}, notFound("scenario", snap.ScenarioID)
	}

	for _, uid := range m.unitOrder[sc.ID] {
		delete(m.units, uid)
	}
	ids := make([]string, 0, len(snap.Units))
	for _, u := range snap.Units {
		m.units[u.ID] = u.Clone()
		ids = append(ids, u.ID)
	}
	m.unitOrder[sc.ID] = ids

	sc = sc.WithPrices(snap.ETHPrice, snap.BTCPrice)
	m.scenarios[sc.ID] = sc
	return sc, nil
}

// nameTaken reports whether another unit of the scenario uses name.
// Caller holds the lock.
func (m *Memory) nameTaken(scenarioID, name, except string) bool {
	for _, uid := range m.unitOrder[scenarioID] {
		if uid != except && m.units[uid].Name == name {
			return true
		}
	}
	return false
}

func copySnapshot(s Snapshot) Snapshot {
	s.Units = cloneUnits(s.Units)
	return s
}
