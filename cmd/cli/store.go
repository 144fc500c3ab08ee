package main

import (
	"fmt"
	"time"

	"revenue-model/internal/config"
	"revenue-model/internal/projection"
	"revenue-model/internal/report"
	"revenue-model/internal/service"
	"revenue-model/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dbPath     string
	scenarioID string
)

// openService opens the sqlite store at --db (DB_PATH when unset).
func openService() (*service.Service, store.Repository, error) {
	path := dbPath
	if path == "" {
		path = config.LoadServer().DBPath
	}
	repo, err := store.NewSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("store opened", zap.String("path", path))
	return service.New(repo, projection.New(), log), repo, nil
}

func resolveScenarioID(cmd *cobra.Command, repo store.Repository) (string, error) {
	if scenarioID != "" && scenarioID != "active" {
		return scenarioID, nil
	}
	sc, err := store.ActiveOrFirst(cmd.Context(), repo)
	if err != nil {
		return "", err
	}
	return sc.ID, nil
}

var seedPlan string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a plan into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := loadPlan(seedPlan)
		if err != nil {
			return err
		}
		_, repo, err := openService()
		if err != nil {
			return err
		}
		defer repo.Close()

		seeded, err := store.Seed(cmd.Context(), repo, l.scenario, l.units)
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(cmd.OutOrStdout(), "database already has scenarios, nothing to do")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %q with %d units\n", l.scenario.Name, len(l.units))
		return nil
	},
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List stored scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, repo, err := openService()
		if err != nil {
			return err
		}
		defer repo.Close()

		list, err := svc.ListScenarios(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-26s %-24s %-6s %12s %12s\n", "id", "name", "active", "ETH", "BTC")
		for _, sc := range list {
			fmt.Fprintf(w, "%-26s %-24s %-6t %12s %12s\n",
				sc.ID, sc.Name, sc.Active, report.USD(sc.ETHPrice), report.USD(sc.BTCPrice))
		}
		return nil
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save, list and restore scenario snapshots",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Snapshot a scenario's prices and units",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, repo, err := openService()
		if err != nil {
			return err
		}
		defer repo.Close()

		id, err := resolveScenarioID(cmd, repo)
		if err != nil {
			return err
		}
		snap, err := svc.SaveDefault(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved snapshot %s (%d units)\n", snap.ID, len(snap.Units))
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a scenario's snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, repo, err := openService()
		if err != nil {
			return err
		}
		defer repo.Close()

		id, err := resolveScenarioID(cmd, repo)
		if err != nil {
			return err
		}
		snaps, err := svc.ListSnapshots(cmd.Context(), id)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-26s %-20s %6s\n", "id", "created", "units")
		for _, s := range snaps {
			fmt.Fprintf(w, "%-26s %-20s %6d\n", s.ID, s.CreatedAt.Format(time.DateTime), len(s.Units))
		}
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore [snapshot-id]",
	Short: "Restore a snapshot, or the scenario's newest one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, repo, err := openService()
		if err != nil {
			return err
		}
		defer repo.Close()

		if len(args) == 1 {
			sc, err := svc.RestoreSnapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %q from %s\n", sc.Name, args[0])
			return nil
		}
		id, err := resolveScenarioID(cmd, repo)
		if err != nil {
			return err
		}
		sc, err := svc.ResetToDefault(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %q to its latest snapshot\n", sc.Name)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{seedCmd, scenariosCmd, snapshotCmd} {
		c.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path (default: $DB_PATH or ./data/revenue.db)")
	}
	snapshotCmd.PersistentFlags().StringVar(&scenarioID, "scenario", "", "scenario id (default: the active scenario)")
	seedCmd.Flags().StringVar(&seedPlan, "plan", "", "plan YAML (default: built-in Base Case)")

	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotRestoreCmd)
	rootCmd.AddCommand(seedCmd, scenariosCmd, snapshotCmd)
}
