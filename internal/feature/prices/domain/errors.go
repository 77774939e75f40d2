// Package domain defines domain-level errors for the prices feature.
package domain

import "errors"

var (
	// ErrUnknownSymbol indicates the requested ticker is not in the catalog.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInvalidRange indicates end precedes start.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrNoData indicates the provider returned no usable data for the range.
	ErrNoData = errors.New("no price data available")
)
