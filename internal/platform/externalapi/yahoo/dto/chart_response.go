// Package dto defines data transfer objects for Yahoo Finance chart API responses.
package dto

// ChartResponse represents the JSON response from the /v8/finance/chart endpoint.
// Quote columns use pointers because Yahoo emits nulls for halted sessions.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartResult holds the parallel timestamp and quote arrays for one symbol.
type ChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []Quote `json:"quote"`
	} `json:"indicators"`
}

// Quote holds the OHLCV columns, index-aligned with Timestamp.
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// ChartError is Yahoo's error envelope (e.g. code "Not Found" for unknown symbols).
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
