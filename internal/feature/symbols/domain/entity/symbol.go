// Package entity defines the domain models for the symbols feature.
package entity

// Symbol represents one tradable NSE ticker in the catalog, together with
// the company profile shown alongside its analysis.
type Symbol struct {
	Code             string // Ticker symbol as known to the data provider (e.g., "TCS.NS")
	Name             string // Company name
	Founder          string // Founder(s)
	History          string // Short company history
	PresentCondition string // Current standing of the company
	IsActive         bool   // Whether the symbol is selectable
	SortKey          int    // Display ordering
}
