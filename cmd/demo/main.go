package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"revenue-model/internal/config"
	"revenue-model/internal/logging"
	"revenue-model/internal/projection"
	"revenue-model/internal/report"
	"revenue-model/internal/service"
	"revenue-model/internal/store"
)

// Demo:
// - Seed an in-memory store with the Base Case
// - Project it and print yearly totals
// - Clone a unit, bump yields, and show how the ranking moves
func main() {
	months := flag.Int("months", 36, "Number of months to project")
	outCSV := flag.String("out", "", "Optional path to write monthly rows as CSV (e.g. results/rows.csv)")
	verbose := flag.Bool("v", false, "Log service events")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := logging.New(level, true)
	if err != nil {
		panic(err)
	}
	defer logging.Sync(log)

	ctx := context.Background()
	repo := store.NewMemory()
	plan := config.Default()
	units, err := plan.ModelUnits()
	if err != nil {
		panic(err)
	}
	if _, err := store.Seed(ctx, repo, plan.ToScenario(), units); err != nil {
		panic(err)
	}
	svc := service.New(repo, projection.New(), log)

	sc, err := svc.ActiveScenario(ctx)
	if err != nil {
		panic(err)
	}
	settings, err := plan.Settings()
	if err != nil {
		panic(err)
	}
	settings.Months = *months

	rep, err := svc.Project(ctx, sc.ID, settings)
	if err != nil {
		panic(err)
	}
	fmt.Printf("== %s (ETH %s, BTC %s) ==\n", sc.Name, report.USDShort(sc.ETHPrice), report.USDShort(sc.BTCPrice))
	report.WriteYears(os.Stdout, rep.Years)
	fmt.Println()
	report.WriteSummary(os.Stdout, rep.Summary)

	if *outCSV != "" {
		if err := projection.WriteCSVFile(*outCSV, rep.Rows); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(rep.Rows), *outCSV)
	}

	// Snapshot, then play with the scenario.
	if _, err := svc.SaveDefault(ctx, sc.ID); err != nil {
		panic(err)
	}
	all, err := svc.ListUnits(ctx, sc.ID)
	if err != nil {
		panic(err)
	}
	if _, err := svc.CloneUnit(ctx, all[1].ID, 2); err != nil {
		panic(err)
	}
	a := service.DefaultAssumptions()
	a.YieldByCurrency["USD"] = 0.10
	if _, err := svc.ApplyAssumptions(ctx, sc.ID, a); err != nil {
		panic(err)
	}

	ranks, err := svc.Rank(ctx, sc.ID, settings)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\n== after cloning %s twice and 10%% USD yield ==\n", all[1].Name)
	report.WriteRanking(os.Stdout, ranks)

	if _, err := svc.ResetToDefault(ctx, sc.ID); err != nil {
		panic(err)
	}
	restored, err := svc.ListUnits(ctx, sc.ID)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nreset to snapshot: %d units\n", len(restored))
}
