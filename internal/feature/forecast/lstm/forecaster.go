// Package lstm implements a recurrent neural-network forecaster for
// univariate price series: a stacked two-layer LSTM with a dense head,
// trained on min-max scaled sliding windows.
package lstm

import (
	"fmt"
	"math/rand"

	"stock_analyzer/internal/feature/forecast/domain"
)

// Config holds the network and training hyperparameters.
type Config struct {
	Window    int
	Units     int
	Epochs    int
	BatchSize int
	Seed      int64
}

// DefaultConfig returns the standard configuration: 60-step windows,
// 50 units per layer, 10 epochs with batches of 32, fixed seed.
func DefaultConfig() Config {
	return Config{
		Window:    60,
		Units:     50,
		Epochs:    10,
		BatchSize: 32,
		Seed:      42,
	}
}

// Forecaster trains an LSTM on a close series and rolls it forward.
type Forecaster struct {
	cfg    Config
	scaler MinMaxScaler
	net    *network
	fitted bool
}

// New creates a Forecaster with the given configuration.
func New(cfg Config) *Forecaster {
	return &Forecaster{cfg: cfg}
}

// MinObservations returns the shortest series Fit accepts: one full
// window plus at least one training target.
func (f *Forecaster) MinObservations() int {
	return f.cfg.Window + 1
}

// Fit scales the series and trains the network on its sliding windows.
// Training is deterministic for a given series and seed.
func (f *Forecaster) Fit(series []float64) error {
	if len(series) < f.MinObservations() {
		return fmt.Errorf("%w: got %d observations, need at least %d",
			domain.ErrInsufficientHistory, len(series), f.MinObservations())
	}

	f.scaler.Fit(series)
	scaled := f.scaler.Transform(series)

	windows := make([][]float64, 0, len(scaled)-f.cfg.Window)
	targets := make([]float64, 0, len(scaled)-f.cfg.Window)
	for i := f.cfg.Window; i < len(scaled); i++ {
		windows = append(windows, scaled[i-f.cfg.Window:i])
		targets = append(targets, scaled[i])
	}

	rng := rand.New(rand.NewSource(f.cfg.Seed))
	f.net = newNetwork(f.cfg.Units, rng)
	if err := f.net.train(windows, targets, f.cfg.Epochs, f.cfg.BatchSize, rng); err != nil {
		return err
	}

	f.fitted = true
	return nil
}

// Forecast feeds the last window of the given series through the trained
// network recursively, returning predictions on the original price scale.
// The series may extend past the one used for Fit; it is scaled with the
// fitted range.
func (f *Forecaster) Forecast(series []float64, steps int) ([]float64, error) {
	if !f.fitted {
		return nil, domain.ErrNotFitted
	}
	if len(series) < f.cfg.Window {
		return nil, fmt.Errorf("%w: got %d observations, need at least %d",
			domain.ErrInsufficientHistory, len(series), f.cfg.Window)
	}

	window := f.scaler.Transform(series[len(series)-f.cfg.Window:])
	preds := make([]float64, steps)
	for s := 0; s < steps; s++ {
		next := f.net.predict(window)
		preds[s] = next
		window = append(window[1:], next)
	}

	return f.scaler.Inverse(preds), nil
}
