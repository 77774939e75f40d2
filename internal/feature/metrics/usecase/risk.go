package usecase

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"stock_analyzer/internal/feature/metrics/domain/entity"
)

// tradingDaysPerYear is the conventional annualization factor.
const tradingDaysPerYear = 252

// computeRisk derives risk measures from a close series. Requires at
// least two closes.
func computeRisk(closes []float64) entity.Risk {
	returns := dailyReturns(closes)

	mean := stat.Mean(returns, nil)
	std := stat.StdDev(returns, nil)

	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	return entity.Risk{
		SharpeRatio:    mean / std * math.Sqrt(tradingDaysPerYear),
		MaxDrawdown:    maxDrawdown(closes),
		ValueAtRisk95:  stat.Quantile(0.05, stat.LinInterp, sorted, nil),
		StdDeviation:   std,
		Skewness:       stat.Skew(returns, nil),
		ExcessKurtosis: stat.ExKurtosis(returns, nil),
	}
}

// maxDrawdown returns the largest peak-to-trough decline as a negative
// fraction, or zero for a monotonically rising series.
func maxDrawdown(closes []float64) float64 {
	var worst float64
	peak := closes[0]
	for _, c := range closes {
		if c > peak {
			peak = c
		}
		if dd := c/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}
