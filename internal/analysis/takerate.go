package analysis

import (
	"fmt"
	"math"

	"revenue-model/internal/model"
)

// AssetInput describes one asset's annual economics for the take-rate view.
// Rates are fractions: GrowthAPR is gross yield, ManagementFee is an annual
// rate on TVL, PerformanceFee is a fraction of GrowthAPR.
type AssetInput struct {
	Name           string
	Balance        float64
	Price          float64
	GrowthAPR      float64
	ManagementFee  float64
	PerformanceFee float64
}

// FeeSplit divides each fee stream between the DAO and the operator.
type FeeSplit struct {
	ManagementDAO       float64
	PerformanceDAO      float64
	ManagementOperator  float64
	PerformanceOperator float64
}

// DefaultFeeSplit gives the DAO 60% of both streams.
func DefaultFeeSplit() FeeSplit {
	return FeeSplit{
		ManagementDAO:       0.6,
		PerformanceDAO:      0.6,
		ManagementOperator:  0.4,
		PerformanceOperator: 0.4,
	}
}

// TakeRate is the annualized revenue breakdown for one asset.
// APR and take-rate fields are percentages; revenue fields are USD per year.
type TakeRate struct {
	Name   string
	TVLUSD float64

	TotalAPR          float64
	ManagementFeeAPR  float64
	PerformanceFeeAPR float64
	LPAPR             float64

	ManagementRevenue  float64
	PerformanceRevenue float64
	TotalRevenue       float64

	DAORevenue       float64
	OperatorRevenue  float64
	DAOTakeRate      float64
	OperatorTakeRate float64
}

var errBadTakeRateInput = fmt.Errorf("%w: take rate inputs must be finite and non-negative", model.ErrInvalidRequest)

func ComputeTakeRate(in AssetInput, split FeeSplit) (TakeRate, error) {
	for _, v := range []float64{
		in.Balance, in.Price, in.GrowthAPR, in.ManagementFee, in.PerformanceFee,
		split.ManagementDAO, split.PerformanceDAO, split.ManagementOperator, split.PerformanceOperator,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return TakeRate{}, errBadTakeRateInput
		}
	}

	tvl := in.Balance * in.Price
	mgmtAPR := in.ManagementFee
	perfAPR := in.GrowthAPR * in.PerformanceFee
	lpAPR := in.GrowthAPR - mgmtAPR - perfAPR

	mgmtRev := tvl * mgmtAPR
	perfRev := tvl * perfAPR

	dao := mgmtRev*split.ManagementDAO + perfRev*split.PerformanceDAO
	op := mgmtRev*split.ManagementOperator + perfRev*split.PerformanceOperator

	return TakeRate{
		Name:   in.Name,
		TVLUSD: tvl,

		TotalAPR:          in.GrowthAPR * 100,
		ManagementFeeAPR:  mgmtAPR * 100,
		PerformanceFeeAPR: perfAPR * 100,
		LPAPR:             lpAPR * 100,

		ManagementRevenue:  mgmtRev,
		PerformanceRevenue: perfRev,
		TotalRevenue:       mgmtRev + perfRev,

		DAORevenue:       dao,
		OperatorRevenue:  op,
		DAOTakeRate:      ratioPct(dao, tvl),
		OperatorTakeRate: ratioPct(op, tvl),
	}, nil
}

func ratioPct(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den * 100
}
