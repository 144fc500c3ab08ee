package projection

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"revenue-model/internal/model"
)

var csvHeader = []string{
	"date",
	"unit",
	"currency",
	"balance",
	"balance_usd",
	"management_fee",
	"management_fee_usd",
	"performance_fee",
	"performance_fee_usd",
	"total_fee_usd",
}

// WriteCSVFile writes rows to path, creating parent directories.
func WriteCSVFile(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return err
	}
	return f.Close()
}

func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{
			model.FormatMonth(r.Date),
			r.Unit,
			string(r.Currency),
			fmtFloat(r.Balance),
			fmtFloat(r.BalanceUSD),
			fmtFloat(r.ManagementFee),
			fmtFloat(r.ManagementFeeUSD),
			fmtFloat(r.PerformanceFee),
			fmtFloat(r.PerformanceFeeUSD),
			fmtFloat(r.TotalFeeUSD),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
