// Package domain defines domain-level errors for the forecast feature.
package domain

import "errors"

var (
	// ErrInsufficientHistory indicates the series is too short to train on.
	ErrInsufficientHistory = errors.New("insufficient history for forecasting")

	// ErrTrainingFailed indicates model fitting did not converge to usable parameters.
	ErrTrainingFailed = errors.New("model training failed")

	// ErrNotFitted indicates Forecast was called before a successful Fit.
	ErrNotFitted = errors.New("model not fitted")

	// ErrUnknownModel indicates the requested model name is not supported.
	ErrUnknownModel = errors.New("unknown forecast model")
)
