package usecase

import (
	"math"
	"time"

	"stock_analyzer/internal/feature/metrics/domain/entity"
	pricesentity "stock_analyzer/internal/feature/prices/domain/entity"
)

const (
	smaShortWindow = 20
	smaLongWindow  = 50
	rsiWindow      = 14
	macdFastSpan   = 12
	macdSlowSpan   = 26
	macdSignalSpan = 9
)

// computeIndicatorSeries derives per-date technical indicator series from
// the bars, aligned with the bar dates. Positions that need more history
// than the series provides up to that point are NaN.
func computeIndicatorSeries(bars []pricesentity.Bar) entity.IndicatorSeries {
	closes := pricesentity.Closes(bars)
	dates := make([]time.Time, len(bars))
	for i, b := range bars {
		dates[i] = b.Date
	}

	fast := ema(closes, macdFastSpan)
	slow := ema(closes, macdSlowSpan)
	macd := make([]float64, len(closes))
	for i := range macd {
		macd[i] = fast[i] - slow[i]
	}

	return entity.IndicatorSeries{
		Dates:      dates,
		MA20:       smaSeries(closes, smaShortWindow),
		MA50:       smaSeries(closes, smaLongWindow),
		RSI:        rsiSeries(closes, rsiWindow),
		MACD:       macd,
		SignalLine: ema(macd, macdSignalSpan),
	}
}

// latestIndicators reports the most recent value of each indicator series.
func latestIndicators(s entity.IndicatorSeries) entity.Indicators {
	return entity.Indicators{
		MA20:       lastValue(s.MA20),
		MA50:       lastValue(s.MA50),
		RSI:        lastValue(s.RSI),
		MACD:       lastValue(s.MACD),
		SignalLine: lastValue(s.SignalLine),
	}
}

func lastValue(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}

// smaSeries computes the simple moving average at every position. The
// first window-1 positions are NaN.
func smaSeries(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// rsiSeries computes the relative strength index at every position using
// simple rolling averages of gains and losses over the last window deltas.
// The first window positions are NaN.
func rsiSeries(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}

	var gain, loss float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
		if i > window {
			old := closes[i-window] - closes[i-window-1]
			if old > 0 {
				gain -= old
			} else {
				loss += old
			}
		}
		if i < window {
			continue
		}
		if loss <= 0 {
			out[i] = 100
			continue
		}
		rs := gain / loss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// ema computes an exponential moving average seeded with the first value,
// with smoothing factor 2/(span+1).
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
