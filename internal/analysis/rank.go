package analysis

import (
	"sort"

	"revenue-model/internal/model"
	"revenue-model/internal/projection"
)

type UnitRanking struct {
	Unit     string
	Currency model.Currency

	CumulativeFeesUSD float64
	FinalBalanceUSD   float64
	// FeeShare is this unit's fraction of all fees in the dataset.
	FeeShare float64
}

// RankUnits orders units by descending cumulative USD fees. Ties keep the
// order in which units appear in the dataset.
func RankUnits(rows []projection.Row) []UnitRanking {
	idx := map[string]int{}
	out := []UnitRanking{}
	var total float64
	for _, r := range rows {
		i, ok := idx[r.Unit]
		if !ok {
			i = len(out)
			idx[r.Unit] = i
			out = append(out, UnitRanking{Unit: r.Unit, Currency: r.Currency})
		}
		out[i].CumulativeFeesUSD += r.TotalFeeUSD
		// rows of a unit are in date order, so the last one wins
		out[i].FinalBalanceUSD = r.BalanceUSD
		total += r.TotalFeeUSD
	}
	if total > 0 {
		for i := range out {
			out[i].FeeShare = out[i].CumulativeFeesUSD / total
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CumulativeFeesUSD > out[j].CumulativeFeesUSD
	})
	return out
}
