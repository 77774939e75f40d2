// Package usecase implements the business logic for price forecasting.
package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"stock_analyzer/internal/feature/forecast/arima"
	"stock_analyzer/internal/feature/forecast/domain"
	"stock_analyzer/internal/feature/forecast/domain/entity"
	"stock_analyzer/internal/feature/forecast/lstm"
	pricesdomain "stock_analyzer/internal/feature/prices/domain"
	pricesentity "stock_analyzer/internal/feature/prices/domain/entity"
	"stock_analyzer/internal/shared/dateutil"
)

// DefaultHorizon is the number of future trading days forecast.
const DefaultHorizon = 30

// MarketRepository abstracts the market-data provider.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]pricesentity.Bar, error)
}

// SymbolChecker reports whether a ticker exists in the catalog.
type SymbolChecker interface {
	Exists(ctx context.Context, code string) (bool, error)
}

// ARIMAEngine is the surface of the autoregressive model the usecase drives.
type ARIMAEngine interface {
	Fit(series []float64) error
	Forecast(steps int) ([]float64, error)
	MinObservations() int
}

// LSTMEngine is the surface of the neural forecaster the usecase drives.
type LSTMEngine interface {
	Fit(series []float64) error
	Forecast(series []float64, steps int) ([]float64, error)
	MinObservations() int
}

// ForecastUsecase fetches price history and runs the requested models.
type ForecastUsecase struct {
	market  MarketRepository
	symbols SymbolChecker
	horizon int

	newARIMA func() ARIMAEngine
	newLSTM  func() LSTMEngine
}

// NewForecastUsecase creates a ForecastUsecase with the default engines
// and horizon.
func NewForecastUsecase(market MarketRepository, symbols SymbolChecker) *ForecastUsecase {
	return &ForecastUsecase{
		market:   market,
		symbols:  symbols,
		horizon:  DefaultHorizon,
		newARIMA: func() ARIMAEngine { return arima.NewDefault() },
		newLSTM:  func() LSTMEngine { return lstm.New(lstm.DefaultConfig()) },
	}
}

// Forecast runs the requested model ("arima", "lstm" or "both") on the
// close series of a catalog symbol over [start, end].
//
// Accuracy is scored out of sample: the model is fit on the series with
// the final horizon observations held out, its forecast is compared to
// the held-out tail, then the forward path is produced from the full
// series. Forecast dates are the next trading days after the last bar.
func (fu *ForecastUsecase) Forecast(ctx context.Context, symbol string, start, end time.Time, model string) (*entity.Forecast, error) {
	switch model {
	case entity.ModelARIMA, entity.ModelLSTM, entity.ModelBoth:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownModel, model)
	}

	if end.Before(start) {
		return nil, pricesdomain.ErrInvalidRange
	}
	ok, err := fu.symbols.Exists(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("symbol lookup: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", pricesdomain.ErrUnknownSymbol, symbol)
	}

	bars, err := fu.market.GetDailyHistory(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, pricesdomain.ErrNoData
	}

	closes := pricesentity.Closes(bars)
	dates := dateutil.NextBusinessDays(bars[len(bars)-1].Date, fu.horizon)

	out := &entity.Forecast{Symbol: symbol, Horizon: fu.horizon}

	if model == entity.ModelARIMA || model == entity.ModelBoth {
		values, acc, err := fu.runARIMA(closes)
		if err != nil {
			return nil, err
		}
		out.Results = append(out.Results, entity.ModelResult{
			Model:       entity.ModelARIMA,
			Dates:       dates,
			Values:      values,
			AccuracyPct: acc,
		})
	}

	if model == entity.ModelLSTM || model == entity.ModelBoth {
		values, acc, err := fu.runLSTM(ctx, closes)
		if err != nil {
			return nil, err
		}
		out.Results = append(out.Results, entity.ModelResult{
			Model:       entity.ModelLSTM,
			Dates:       dates,
			Values:      values,
			AccuracyPct: acc,
		})
	}

	return out, nil
}

func (fu *ForecastUsecase) runARIMA(closes []float64) ([]float64, float64, error) {
	eng := fu.newARIMA()
	if len(closes) < eng.MinObservations()+fu.horizon {
		return nil, 0, fmt.Errorf("%w: got %d observations, need at least %d",
			domain.ErrInsufficientHistory, len(closes), eng.MinObservations()+fu.horizon)
	}

	head := closes[:len(closes)-fu.horizon]
	tail := closes[len(closes)-fu.horizon:]

	if err := eng.Fit(head); err != nil {
		return nil, 0, err
	}
	held, err := eng.Forecast(fu.horizon)
	if err != nil {
		return nil, 0, err
	}
	acc := accuracyPct(tail, held)

	// refit on the full series for the reported forward path
	if err := eng.Fit(closes); err != nil {
		return nil, 0, err
	}
	values, err := eng.Forecast(fu.horizon)
	if err != nil {
		return nil, 0, err
	}
	return values, acc, nil
}

func (fu *ForecastUsecase) runLSTM(ctx context.Context, closes []float64) ([]float64, float64, error) {
	eng := fu.newLSTM()
	if len(closes) < eng.MinObservations()+fu.horizon {
		return nil, 0, fmt.Errorf("%w: got %d observations, need at least %d",
			domain.ErrInsufficientHistory, len(closes), eng.MinObservations()+fu.horizon)
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	head := closes[:len(closes)-fu.horizon]
	tail := closes[len(closes)-fu.horizon:]

	if err := eng.Fit(head); err != nil {
		return nil, 0, err
	}
	held, err := eng.Forecast(head, fu.horizon)
	if err != nil {
		return nil, 0, err
	}
	acc := accuracyPct(tail, held)

	// the trained network rolls forward from the full series' last window
	values, err := eng.Forecast(closes, fu.horizon)
	if err != nil {
		return nil, 0, err
	}
	return values, acc, nil
}

// accuracyPct converts mean absolute percentage error into a bounded
// accuracy figure: max(0, 100 - MAPE*100).
func accuracyPct(actual, predicted []float64) float64 {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	if n == 0 {
		return 0
	}

	var mape float64
	for i := 0; i < n; i++ {
		if actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - predicted[i]) / actual[i])
	}
	mape /= float64(n)

	acc := 100 - mape*100
	if acc < 0 {
		return 0
	}
	return acc
}
