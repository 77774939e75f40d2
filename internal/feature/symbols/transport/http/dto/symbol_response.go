// Package dto defines data transfer objects for the symbols feature's HTTP transport layer.
package dto

// SymbolItem is one entry in the symbol list response.
type SymbolItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SymbolProfile is the detailed company profile response.
type SymbolProfile struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Founder          string `json:"founder"`
	History          string `json:"history"`
	PresentCondition string `json:"present_condition"`
}
