// Package dto defines data transfer objects for the prices feature's HTTP transport layer.
package dto

// BarResponse is one daily OHLCV record in a price history response.
type BarResponse struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// HistoryResponse is the full price history for one symbol.
type HistoryResponse struct {
	Symbol string        `json:"symbol"`
	Bars   []BarResponse `json:"bars"`
}
