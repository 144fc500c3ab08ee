package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"revenue-model/internal/id"
	"revenue-model/internal/model"

	_ "modernc.org/sqlite"
)

const unitColumns = `id, scenario_id, name, currency, launch_date, initial_balance, monthly_growth_rate,
	management_fee_total, management_fee_share, performance_fee_total, performance_fee_share,
	yield_apr, net_return_margin, employee_capital`

// SQLite is a Repository backed by a SQLite file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens (creating if needed) the database at dbPath and migrates it.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScenario(r rowScanner) (model.Scenario, error) {
	var sc model.Scenario
	var active int
	if err := r.Scan(&sc.ID, &sc.Name, &sc.ETHPrice, &sc.BTCPrice, &active); err != nil {
		return model.Scenario{}, err
	}
	sc.Active = active != 0
	return sc, nil
}

func (s *SQLite) ListScenarios(ctx context.Context) ([]model.Scenario, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, eth_price, btc_price, is_active FROM scenarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	out := []model.Scenario{}
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func (s *SQLite) GetScenario(ctx context.Context, scenarioID string) (model.Scenario, error) {
	return getScenario(ctx, s.db, scenarioID)
}

func (s *SQLite) GetActiveScenario(ctx context.Context) (model.Scenario, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, eth_price, btc_price, is_active FROM scenarios WHERE is_active = 1 ORDER BY id LIMIT 1`)
	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Scenario{}, notFound("scenario", "active")
	}
	if err != nil {
		return model.Scenario{}, fmt.Errorf("get active scenario: %w", err)
	}
	return sc, nil
}

func (s *SQLite) CreateScenario(ctx context.Context, sc model.Scenario) (model.Scenario, error) {
	if err := checkScenario(sc); err != nil {
		return model.Scenario{}, err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM scenarios WHERE name = ?`, sc.Name).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return duplicateScenario(sc.Name)
		}
		if sc.Active {
			if _, err := tx.ExecContext(ctx, `UPDATE scenarios SET is_active = 0`); err != nil {
				return err
			}
		}
		sc.ID = id.New()
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scenarios (id, name, eth_price, btc_price, is_active) VALUES (?, ?, ?, ?, ?)`,
			sc.ID, sc.Name, sc.ETHPrice, sc.BTCPrice, boolInt(sc.Active))
		return err
	})
	if err != nil {
		return model.Scenario{}, wrapOp("create scenario", err)
	}
	return sc, nil
}

func (s *SQLite) UpdateScenarioPrices(ctx context.Context, scenarioID string, eth, btc float64) (model.Scenario, error) {
	if err := (model.Scenario{ETHPrice: eth, BTCPrice: btc}).Validate(); err != nil {
		return model.Scenario{}, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE scenarios SET eth_price = ?, btc_price = ? WHERE id = ?`, eth, btc, scenarioID)
	if err != nil {
		return model.Scenario{}, fmt.Errorf("update prices: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Scenario{}, notFound("scenario", scenarioID)
	}
	return s.GetScenario(ctx, scenarioID)
}

func (s *SQLite) ListUnits(ctx context.Context, scenarioID string) ([]model.Unit, error) {
	if _, err := s.GetScenario(ctx, scenarioID); err != nil {
		return nil, err
	}
	return listUnits(ctx, s.db, scenarioID)
}

func (s *SQLite) GetUnit(ctx context.Context, unitID string) (model.Unit, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM units WHERE id = ?`, unitID)
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Unit{}, notFound("unit", unitID)
	}
	if err != nil {
		return model.Unit{}, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

func (s *SQLite) CreateUnit(ctx context.Context, u model.Unit) (model.Unit, error) {
	if err := u.Validate(); err != nil {
		return model.Unit{}, err
	}
	u = u.Clone()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := getScenario(ctx, tx, u.ScenarioID); err != nil {
			return err
		}
		if err := checkUnitName(ctx, tx, u.ScenarioID, u.Name, ""); err != nil {
			return err
		}
		u.ID = id.New()
		return insertUnit(ctx, tx, u)
	})
	if err != nil {
		return model.Unit{}, wrapOp("create unit", err)
	}
	return u, nil
}

func (s *SQLite) UpdateUnit(ctx context.Context, u model.Unit) (model.Unit, error) {
	if err := u.Validate(); err != nil {
		return model.Unit{}, err
	}
	u = u.Clone()
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var scenarioID string
		err := tx.QueryRowContext(ctx, `SELECT scenario_id FROM units WHERE id = ?`, u.ID).Scan(&scenarioID)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("unit", u.ID)
		}
		if err != nil {
			return err
		}
		u.ScenarioID = scenarioID
		if err := checkUnitName(ctx, tx, scenarioID, u.Name, u.ID); err != nil {
			return err
		}
		return updateUnit(ctx, tx, u)
	})
	if err != nil {
		return model.Unit{}, wrapOp("update unit", err)
	}
	return u, nil
}

func (s *SQLite) UpdateUnits(ctx context.Context, scenarioID string, units []model.Unit) error {
	for _, u := range units {
		if err := u.Validate(); err != nil {
			return err
		}
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range units {
			u.ScenarioID = scenarioID
			res, err := tx.ExecContext(ctx, `UPDATE units SET `+unitAssignments+` WHERE id = ? AND scenario_id = ?`,
				append(unitValues(u), u.ID, scenarioID)...)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return notFound("unit", u.ID)
			}
		}
		return nil
	})
	return wrapOp("update units", err)
}

func (s *SQLite) DeleteUnit(ctx context.Context, unitID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM units WHERE id = ?`, unitID)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound("unit", unitID)
	}
	return nil
}

func (s *SQLite) SaveSnapshot(ctx context.Context, scenarioID string) (Snapshot, error) {
	var snap Snapshot
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		sc, err := getScenario(ctx, tx, scenarioID)
		if err != nil {
			return err
		}
		units, err := listUnits(ctx, tx, scenarioID)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(toSnapshotUnits(units))
		if err != nil {
			return err
		}
		now := s.now().UTC()
		snap = Snapshot{
			ID:         id.NewAt(now),
			ScenarioID: scenarioID,
			CreatedAt:  now,
			ETHPrice:   sc.ETHPrice,
			BTCPrice:   sc.BTCPrice,
			Units:      units,
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO snapshots (id, scenario_id, created_at, eth_price, btc_price, units) VALUES (?, ?, ?, ?, ?, ?)`,
			snap.ID, snap.ScenarioID, snap.CreatedAt.Format(time.RFC3339Nano), snap.ETHPrice, snap.BTCPrice, string(raw))
		return err
	})
	if err != nil {
		return Snapshot{}, wrapOp("save snapshot", err)
	}
	return snap, nil
}

func (s *SQLite) ListSnapshots(ctx context.Context, scenarioID string) ([]Snapshot, error) {
	if _, err := s.GetScenario(ctx, scenarioID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scenario_id, created_at, eth_price, btc_price, units FROM snapshots WHERE scenario_id = ? ORDER BY id DESC`,
		scenarioID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *SQLite) GetSnapshot(ctx context.Context, snapshotID string) (Snapshot, error) {
	return getSnapshot(ctx, s.db, snapshotID)
}

func (s *SQLite) RestoreSnapshot(ctx context.Context, snapshotID string) (model.Scenario, error) {
	var sc model.Scenario
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		snap, err := getSnapshot(ctx, tx, snapshotID)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM units WHERE scenario_id = ?`, snap.ScenarioID); err != nil {
			return err
		}
		for _, u := range snap.Units {
			u.ScenarioID = snap.ScenarioID
			if err := insertUnit(ctx, tx, u); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, `UPDATE scenarios SET eth_price = ?, btc_price = ? WHERE id = ?`,
			snap.ETHPrice, snap.BTCPrice, snap.ScenarioID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return notFound("scenario", snap.ScenarioID)
		}
		sc, err = getScenario(ctx, tx, snap.ScenarioID)
		return err
	})
	if err != nil {
		return model.Scenario{}, wrapOp("restore snapshot", err)
	}
	return sc, nil
}

func (s *SQLite) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getScenario(ctx context.Context, q queryer, scenarioID string) (model.Scenario, error) {
	row := q.QueryRowContext(ctx, `SELECT id, name, eth_price, btc_price, is_active FROM scenarios WHERE id = ?`, scenarioID)
	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Scenario{}, notFound("scenario", scenarioID)
	}
	if err != nil {
		return model.Scenario{}, fmt.Errorf("get scenario: %w", err)
	}
	return sc, nil
}

func listUnits(ctx context.Context, q queryer, scenarioID string) ([]model.Unit, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+unitColumns+` FROM units WHERE scenario_id = ? ORDER BY rowid`, scenarioID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	out := []model.Unit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func getSnapshot(ctx context.Context, q queryer, snapshotID string) (Snapshot, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, scenario_id, created_at, eth_price, btc_price, units FROM snapshots WHERE id = ?`, snapshotID)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, notFound("snapshot", snapshotID)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	return snap, nil
}

func checkUnitName(ctx context.Context, q queryer, scenarioID, name, except string) error {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM units WHERE scenario_id = ? AND name = ? AND id != ?`,
		scenarioID, name, except).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return duplicateUnit(name)
	}
	return nil
}

const unitAssignments = `name = ?, currency = ?, launch_date = ?, initial_balance = ?, monthly_growth_rate = ?,
	management_fee_total = ?, management_fee_share = ?, performance_fee_total = ?, performance_fee_share = ?,
	yield_apr = ?, net_return_margin = ?, employee_capital = ?`

// unitValues matches unitAssignments.
func unitValues(u model.Unit) []any {
	var launch sql.NullString
	if m, ok := u.LaunchMonth(); ok {
		launch = sql.NullString{String: m.Format(time.DateOnly), Valid: true}
	}
	return []any{
		u.Name, string(u.Currency), launch, u.InitialBalance, u.MonthlyGrowthRate,
		u.ManagementFeeTotal, u.ManagementFeeShare, u.PerformanceFeeTotal, u.PerformanceFeeShare,
		u.YieldAPR, u.NetReturnMargin, u.EmployeeCapital,
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertUnit(ctx context.Context, ex execer, u model.Unit) error {
	args := append([]any{u.ID, u.ScenarioID}, unitValues(u)...)
	_, err := ex.ExecContext(ctx, `INSERT INTO units (`+unitColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	return err
}

func updateUnit(ctx context.Context, ex execer, u model.Unit) error {
	_, err := ex.ExecContext(ctx, `UPDATE units SET `+unitAssignments+` WHERE id = ?`, append(unitValues(u), u.ID)...)
	return err
}

func scanUnit(r rowScanner) (model.Unit, error) {
	var u model.Unit
	var currency string
	var launch sql.NullString
	err := r.Scan(&u.ID, &u.ScenarioID, &u.Name, &currency, &launch, &u.InitialBalance, &u.MonthlyGrowthRate,
		&u.ManagementFeeTotal, &u.ManagementFeeShare, &u.PerformanceFeeTotal, &u.PerformanceFeeShare,
		&u.YieldAPR, &u.NetReturnMargin, &u.EmployeeCapital)
	if err != nil {
		return model.Unit{}, err
	}
	u.Currency = model.Currency(currency)
	if launch.Valid && launch.String != "" {
		d, err := model.ParseMonth(launch.String)
		if err != nil {
			return model.Unit{}, fmt.Errorf("unit %s launch_date: %w", u.ID, err)
		}
		u.LaunchDate = &d
	}
	return u, nil
}

func scanSnapshot(r rowScanner) (Snapshot, error) {
	var snap Snapshot
	var created, raw string
	if err := r.Scan(&snap.ID, &snap.ScenarioID, &created, &snap.ETHPrice, &snap.BTCPrice, &raw); err != nil {
		return Snapshot{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s created_at: %w", snap.ID, err)
	}
	snap.CreatedAt = t
	var units []snapshotUnit
	if err := json.Unmarshal([]byte(raw), &units); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s units: %w", snap.ID, err)
	}
	snap.Units, err = fromSnapshotUnits(units, snap.ScenarioID)
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// snapshotUnit is the JSON form of a unit inside snapshots.units.
type snapshotUnit struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Currency            string  `json:"currency"`
	LaunchDate          string  `json:"launch_date,omitempty"`
	InitialBalance      float64 `json:"initial_balance"`
	MonthlyGrowthRate   float64 `json:"monthly_growth_rate"`
	ManagementFeeTotal  float64 `json:"management_fee_total"`
	ManagementFeeShare  float64 `json:"management_fee_share"`
	PerformanceFeeTotal float64 `json:"performance_fee_total"`
	PerformanceFeeShare float64 `json:"performance_fee_share"`
	YieldAPR            float64 `json:"yield_apr"`
	NetReturnMargin     float64 `json:"net_return_margin"`
	EmployeeCapital     float64 `json:"employee_capital"`
}

func toSnapshotUnits(units []model.Unit) []snapshotUnit {
	out := make([]snapshotUnit, 0, len(units))
	for _, u := range units {
		su := snapshotUnit{
			ID:                  u.ID,
			Name:                u.Name,
			Currency:            string(u.Currency),
			InitialBalance:      u.InitialBalance,
			MonthlyGrowthRate:   u.MonthlyGrowthRate,
			ManagementFeeTotal:  u.ManagementFeeTotal,
			ManagementFeeShare:  u.ManagementFeeShare,
			PerformanceFeeTotal: u.PerformanceFeeTotal,
			PerformanceFeeShare: u.PerformanceFeeShare,
			YieldAPR:            u.YieldAPR,
			NetReturnMargin:     u.NetReturnMargin,
			EmployeeCapital:     u.EmployeeCapital,
		}
		if m, ok := u.LaunchMonth(); ok {
			su.LaunchDate = m.Format(time.DateOnly)
		}
		out = append(out, su)
	}
	return out
}

func fromSnapshotUnits(in []snapshotUnit, scenarioID string) ([]model.Unit, error) {
	out := make([]model.Unit, 0, len(in))
	for _, su := range in {
		u := model.Unit{
			ID:                  su.ID,
			ScenarioID:          scenarioID,
			Name:                su.Name,
			Currency:            model.Currency(su.Currency),
			InitialBalance:      su.InitialBalance,
			MonthlyGrowthRate:   su.MonthlyGrowthRate,
			ManagementFeeTotal:  su.ManagementFeeTotal,
			ManagementFeeShare:  su.ManagementFeeShare,
			PerformanceFeeTotal: su.PerformanceFeeTotal,
			PerformanceFeeShare: su.PerformanceFeeShare,
			YieldAPR:            su.YieldAPR,
			NetReturnMargin:     su.NetReturnMargin,
			EmployeeCapital:     su.EmployeeCapital,
		}
		if su.LaunchDate != "" {
			d, err := model.ParseMonth(su.LaunchDate)
			if err != nil {
				return nil, fmt.Errorf("snapshot unit %s launch_date: %w", su.ID, err)
			}
			u.LaunchDate = &d
		}
		out = append(out, u)
	}
	return out, nil
}

// wrapOp adds the operation name unless err is already a typed domain error.
func wrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	var fe *model.FieldError
	if errors.As(err, &fe) || errors.Is(err, model.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
