// Package entity defines the domain model for price forecasts.
package entity

import "time"

// Model names accepted by the forecast usecase.
const (
	ModelARIMA = "arima"
	ModelLSTM  = "lstm"
	ModelBoth  = "both"
)

// ModelResult is the output of one forecasting model.
type ModelResult struct {
	Model       string
	Dates       []time.Time
	Values      []float64
	AccuracyPct float64
}

// Forecast bundles the results of the requested models for one symbol.
type Forecast struct {
	Symbol  string
	Horizon int
	Results []ModelResult
}
