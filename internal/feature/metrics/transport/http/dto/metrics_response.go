// Package dto defines data transfer objects for the metrics feature's HTTP transport layer.
package dto

// SummaryResponse holds descriptive statistics for the requested range.
type SummaryResponse struct {
	HighestPrice   float64  `json:"highest_price"`
	LowestPrice    float64  `json:"lowest_price"`
	AveragePrice   float64  `json:"average_price"`
	BestTimeToSell string   `json:"best_time_to_sell"`
	BestTimeToBuy  string   `json:"best_time_to_buy"`
	TotalReturnPct *float64 `json:"total_return_pct"`
	VolatilityPct  *float64 `json:"volatility_pct"`
	AverageVolume  float64  `json:"average_volume"`
	MaxVolume      int64    `json:"max_volume"`
}

// IndicatorsResponse holds the latest technical indicator values.
// Indicators needing more history than the range provides are null.
type IndicatorsResponse struct {
	MA20       *float64 `json:"ma_20"`
	MA50       *float64 `json:"ma_50"`
	RSI        *float64 `json:"rsi"`
	MACD       *float64 `json:"macd"`
	SignalLine *float64 `json:"signal_line"`
}

// IndicatorSeriesResponse holds per-date indicator values for charting,
// aligned with the dates slice. Positions without enough history are null.
type IndicatorSeriesResponse struct {
	Dates      []string   `json:"dates"`
	MA20       []*float64 `json:"ma_20"`
	MA50       []*float64 `json:"ma_50"`
	RSI        []*float64 `json:"rsi"`
	MACD       []*float64 `json:"macd"`
	SignalLine []*float64 `json:"signal_line"`
}

// RiskResponse holds risk measures derived from daily returns. Measures
// undefined for very short series are null.
type RiskResponse struct {
	SharpeRatio    *float64 `json:"sharpe_ratio"`
	MaxDrawdown    float64  `json:"max_drawdown"`
	ValueAtRisk95  *float64 `json:"value_at_risk_95"`
	StdDeviation   *float64 `json:"std_deviation"`
	Skewness       *float64 `json:"skewness"`
	ExcessKurtosis *float64 `json:"excess_kurtosis"`
}

// MetricsResponse bundles all metric groups for one symbol.
type MetricsResponse struct {
	Symbol     string                  `json:"symbol"`
	Summary    SummaryResponse         `json:"summary"`
	Indicators IndicatorsResponse      `json:"indicators"`
	Series     IndicatorSeriesResponse `json:"series"`
	Risk       RiskResponse            `json:"risk"`
}
