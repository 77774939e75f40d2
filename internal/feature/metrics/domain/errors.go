// Package domain defines domain-level errors for the metrics feature.
package domain

import "errors"

// ErrInsufficientData indicates the series is too short to compute metrics.
var ErrInsufficientData = errors.New("insufficient data for metrics")
