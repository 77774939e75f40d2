// Package entity defines the domain model for computed stock metrics.
package entity

import "time"

// Summary holds descriptive price and volume statistics over a date range.
type Summary struct {
	HighestPrice   float64
	LowestPrice    float64
	AveragePrice   float64
	BestTimeToSell time.Time
	BestTimeToBuy  time.Time
	TotalReturnPct float64
	VolatilityPct  float64
	AverageVolume  float64
	MaxVolume      int64
}

// Indicators holds the latest values of common technical indicators.
// Values that need more history than the series provides are NaN.
type Indicators struct {
	MA20       float64
	MA50       float64
	RSI        float64
	MACD       float64
	SignalLine float64
}

// IndicatorSeries holds per-date indicator values aligned with Dates.
// Positions that need more history than available up to that point are NaN.
type IndicatorSeries struct {
	Dates      []time.Time
	MA20       []float64
	MA50       []float64
	RSI        []float64
	MACD       []float64
	SignalLine []float64
}

// Risk holds risk measures derived from daily returns.
type Risk struct {
	SharpeRatio    float64
	MaxDrawdown    float64
	ValueAtRisk95  float64
	StdDeviation   float64
	Skewness       float64
	ExcessKurtosis float64
}

// Metrics bundles all metric groups for one symbol and range.
type Metrics struct {
	Symbol     string
	Summary    Summary
	Indicators Indicators
	Series     IndicatorSeries
	Risk       Risk
}
