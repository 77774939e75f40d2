package usecase

import (
	"gonum.org/v1/gonum/stat"

	"stock_analyzer/internal/feature/metrics/domain/entity"
	pricesentity "stock_analyzer/internal/feature/prices/domain/entity"
)

// computeSummary derives descriptive price and volume statistics from a
// daily bar series. Requires at least two bars.
func computeSummary(bars []pricesentity.Bar) entity.Summary {
	var s entity.Summary

	hiIdx, loIdx := 0, 0
	var sumClose, sumVolume float64
	for i, b := range bars {
		if b.Close > bars[hiIdx].Close {
			hiIdx = i
		}
		if b.Close < bars[loIdx].Close {
			loIdx = i
		}
		sumClose += b.Close
		sumVolume += float64(b.Volume)
		if b.Volume > s.MaxVolume {
			s.MaxVolume = b.Volume
		}
	}

	s.HighestPrice = bars[hiIdx].Close
	s.LowestPrice = bars[loIdx].Close
	s.AveragePrice = sumClose / float64(len(bars))
	s.BestTimeToSell = bars[hiIdx].Date
	s.BestTimeToBuy = bars[loIdx].Date
	s.AverageVolume = sumVolume / float64(len(bars))

	first, last := bars[0].Close, bars[len(bars)-1].Close
	s.TotalReturnPct = (last - first) / first * 100
	s.VolatilityPct = stat.StdDev(dailyReturns(pricesentity.Closes(bars)), nil) * 100

	return s
}

// dailyReturns computes day-over-day percentage changes of a close series.
func dailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = (closes[i] - closes[i-1]) / closes[i-1]
	}
	return returns
}
