// Package dto defines data transfer objects for the forecast feature's HTTP transport layer.
package dto

// ForecastPoint is one predicted price on one future trading day.
type ForecastPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ModelResult is the forecast produced by one model.
type ModelResult struct {
	Model       string          `json:"model"`
	AccuracyPct float64         `json:"accuracy_pct"`
	Points      []ForecastPoint `json:"points"`
}

// ForecastResponse bundles the requested model results for one symbol.
type ForecastResponse struct {
	Symbol  string        `json:"symbol"`
	Horizon int           `json:"horizon"`
	Results []ModelResult `json:"results"`
}
