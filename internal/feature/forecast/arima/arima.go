// Package arima implements an autoregressive integrated model for
// univariate price series. The order is AR(p) with d-fold differencing;
// no moving-average terms.
package arima

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"stock_analyzer/internal/feature/forecast/domain"
)

// Default order used for stock close series.
const (
	DefaultP = 5
	DefaultD = 1
)

// ridge is the Tikhonov term added to the normal equations.
const ridge = 1e-8

// Model is an AR(p) model over a d-times differenced series, fit by
// ordinary least squares.
type Model struct {
	p, d int

	intercept float64
	coeffs    []float64 // lag 1..p

	// state captured at fit time, needed to roll the forecast forward
	lagBuf []float64 // last p differenced values, most recent last
	levels []float64 // last value at each integration stage, innermost first

	fitted bool
}

// New creates a model with the given autoregressive order p and degree
// of differencing d.
func New(p, d int) *Model {
	return &Model{p: p, d: d}
}

// NewDefault creates a model with the default (5,1) order.
func NewDefault() *Model {
	return New(DefaultP, DefaultD)
}

// MinObservations returns the shortest series Fit accepts: after d
// differences there must be at least p+1 regression rows.
func (m *Model) MinObservations() int {
	return m.d + 2*m.p + 1
}

// Fit estimates the AR coefficients from the series by least squares.
func (m *Model) Fit(series []float64) error {
	if len(series) < m.MinObservations() {
		return fmt.Errorf("%w: got %d observations, need at least %d",
			domain.ErrInsufficientHistory, len(series), m.MinObservations())
	}

	diffed := make([]float64, len(series))
	copy(diffed, series)
	m.levels = make([]float64, m.d)
	for i := 0; i < m.d; i++ {
		m.levels[i] = diffed[len(diffed)-1]
		diffed = difference(diffed)
	}

	rows := len(diffed) - m.p
	x := mat.NewDense(rows, m.p+1, nil)
	y := mat.NewVecDense(rows, nil)
	for r := 0; r < rows; r++ {
		x.Set(r, 0, 1)
		for lag := 1; lag <= m.p; lag++ {
			x.Set(r, lag, diffed[r+m.p-lag])
		}
		y.SetVec(r, diffed[r+m.p])
	}

	// Normal equations with a small ridge term. The ridge keeps the solve
	// well posed when the differenced series is collinear, e.g. a perfectly
	// linear input whose differences are constant.
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for i := 0; i <= m.p; i++ {
		xtx.Set(i, i, xtx.At(i, i)+ridge)
	}
	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("%w: %v", domain.ErrTrainingFailed, err)
		}
	}

	m.intercept = beta.AtVec(0)
	m.coeffs = make([]float64, m.p)
	for lag := 1; lag <= m.p; lag++ {
		m.coeffs[lag-1] = beta.AtVec(lag)
	}

	m.lagBuf = make([]float64, m.p)
	copy(m.lagBuf, diffed[len(diffed)-m.p:])
	m.fitted = true
	return nil
}

// Forecast rolls the fitted model forward the given number of steps and
// undoes the differencing, returning forecasts on the original scale.
func (m *Model) Forecast(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, domain.ErrNotFitted
	}

	lags := make([]float64, len(m.lagBuf))
	copy(lags, m.lagBuf)
	levels := make([]float64, len(m.levels))
	copy(levels, m.levels)

	out := make([]float64, steps)
	for s := 0; s < steps; s++ {
		next := m.intercept
		for lag := 1; lag <= m.p; lag++ {
			next += m.coeffs[lag-1] * lags[len(lags)-lag]
		}
		lags = append(lags[1:], next)

		// integrate back up through the differencing stages
		v := next
		for i := len(levels) - 1; i >= 0; i-- {
			v += levels[i]
			levels[i] = v
		}
		out[s] = v
	}
	return out, nil
}

// difference returns the first differences of a series.
func difference(series []float64) []float64 {
	out := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		out[i-1] = series[i] - series[i-1]
	}
	return out
}
