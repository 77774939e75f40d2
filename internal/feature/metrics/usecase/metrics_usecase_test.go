package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"stock_analyzer/internal/feature/metrics/domain"
	pricesdomain "stock_analyzer/internal/feature/prices/domain"
	pricesentity "stock_analyzer/internal/feature/prices/domain/entity"
)

// mockMarketRepository is a mock implementation of the MarketRepository interface.
type mockMarketRepository struct {
	GetDailyHistoryFunc func(ctx context.Context, symbol string, start, end time.Time) ([]pricesentity.Bar, error)
}

func (m *mockMarketRepository) GetDailyHistory(ctx context.Context, symbol string, start, end time.Time) ([]pricesentity.Bar, error) {
	return m.GetDailyHistoryFunc(ctx, symbol, start, end)
}

// mockSymbolChecker is a mock implementation of the SymbolChecker interface.
type mockSymbolChecker struct {
	ExistsFunc func(ctx context.Context, code string) (bool, error)
}

func (m *mockSymbolChecker) Exists(ctx context.Context, code string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, code)
	}
	return true, nil
}

func barsFromCloses(closes []float64) []pricesentity.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]pricesentity.Bar, len(closes))
	for i, c := range closes {
		bars[i] = pricesentity.Bar{
			Symbol: "TCS.NS",
			Date:   base.AddDate(0, 0, i),
			Close:  c,
			Volume: int64(1000 + i*100),
		}
	}
	return bars
}

func TestMetricsUsecase_GetMetrics_Summary(t *testing.T) {
	closes := []float64{100, 110, 90, 120, 105}
	market := &mockMarketRepository{
		GetDailyHistoryFunc: func(ctx context.Context, symbol string, start, end time.Time) ([]pricesentity.Bar, error) {
			return barsFromCloses(closes), nil
		},
	}
	mu := NewMetricsUsecase(market, &mockSymbolChecker{})

	m, err := mu.GetMetrics(context.Background(), "TCS.NS",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Summary.HighestPrice != 120 {
		t.Errorf("HighestPrice = %v, want 120", m.Summary.HighestPrice)
	}
	if m.Summary.LowestPrice != 90 {
		t.Errorf("LowestPrice = %v, want 90", m.Summary.LowestPrice)
	}
	if m.Summary.AveragePrice != 105 {
		t.Errorf("AveragePrice = %v, want 105", m.Summary.AveragePrice)
	}

	// Highest close is the fourth bar, lowest is the third.
	wantSell := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	wantBuy := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	if !m.Summary.BestTimeToSell.Equal(wantSell) {
		t.Errorf("BestTimeToSell = %v, want %v", m.Summary.BestTimeToSell, wantSell)
	}
	if !m.Summary.BestTimeToBuy.Equal(wantBuy) {
		t.Errorf("BestTimeToBuy = %v, want %v", m.Summary.BestTimeToBuy, wantBuy)
	}

	if got, want := m.Summary.TotalReturnPct, 5.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalReturnPct = %v, want %v", got, want)
	}
	if m.Summary.MaxVolume != 1400 {
		t.Errorf("MaxVolume = %v, want 1400", m.Summary.MaxVolume)
	}
	if m.Summary.AverageVolume != 1200 {
		t.Errorf("AverageVolume = %v, want 1200", m.Summary.AverageVolume)
	}
}

func TestMetricsUsecase_GetMetrics_Errors(t *testing.T) {
	tests := []struct {
		name        string
		start, end  time.Time
		exists      func(ctx context.Context, code string) (bool, error)
		market      func(ctx context.Context, symbol string, start, end time.Time) ([]pricesentity.Bar, error)
		expectedErr error
	}{
		{
			name:        "invalid range",
			start:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			end:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedErr: pricesdomain.ErrInvalidRange,
		},
		{
			name:  "unknown symbol",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			exists: func(ctx context.Context, code string) (bool, error) {
				return false, nil
			},
			expectedErr: pricesdomain.ErrUnknownSymbol,
		},
		{
			name:  "too few bars",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			market: func(ctx context.Context, symbol string, start, end time.Time) ([]pricesentity.Bar, error) {
				return barsFromCloses([]float64{100}), nil
			},
			expectedErr: domain.ErrInsufficientData,
		},
		{
			name:  "provider error",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			market: func(ctx context.Context, symbol string, start, end time.Time) ([]pricesentity.Bar, error) {
				return nil, pricesdomain.ErrNoData
			},
			expectedErr: pricesdomain.ErrNoData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := &mockMarketRepository{GetDailyHistoryFunc: tt.market}
			mu := NewMetricsUsecase(market, &mockSymbolChecker{ExistsFunc: tt.exists})

			_, err := mu.GetMetrics(context.Background(), "TCS.NS", tt.start, tt.end)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestComputeIndicatorSeries(t *testing.T) {
	// 60 rising closes so every indicator has enough history.
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	bars := barsFromCloses(closes)

	series := computeIndicatorSeries(bars)
	ind := latestIndicators(series)

	// Last 20 values are 140..159, mean 149.5. Last 50 are 110..159, mean 134.5.
	if math.Abs(ind.MA20-149.5) > 1e-9 {
		t.Errorf("MA20 = %v, want 149.5", ind.MA20)
	}
	if math.Abs(ind.MA50-134.5) > 1e-9 {
		t.Errorf("MA50 = %v, want 134.5", ind.MA50)
	}

	// Strictly rising series has no losses.
	if ind.RSI != 100 {
		t.Errorf("RSI = %v, want 100", ind.RSI)
	}

	// Fast EMA sits above slow EMA in an uptrend.
	if ind.MACD <= 0 {
		t.Errorf("MACD = %v, want positive", ind.MACD)
	}

	// Every series is aligned with the bar dates.
	for name, s := range map[string][]float64{
		"MA20":       series.MA20,
		"MA50":       series.MA50,
		"RSI":        series.RSI,
		"MACD":       series.MACD,
		"SignalLine": series.SignalLine,
	} {
		if len(s) != len(bars) {
			t.Errorf("len(%s) = %d, want %d", name, len(s), len(bars))
		}
	}
	if len(series.Dates) != len(bars) || !series.Dates[0].Equal(bars[0].Date) {
		t.Errorf("Dates misaligned with bars")
	}

	// Warm-up positions are NaN, then the first defined values appear.
	if !math.IsNaN(series.MA20[18]) || math.IsNaN(series.MA20[19]) {
		t.Errorf("MA20 warm-up boundary wrong: [18]=%v [19]=%v", series.MA20[18], series.MA20[19])
	}
	// First 20 closes are 100..119, mean 109.5.
	if math.Abs(series.MA20[19]-109.5) > 1e-9 {
		t.Errorf("MA20[19] = %v, want 109.5", series.MA20[19])
	}
	if !math.IsNaN(series.RSI[13]) || math.IsNaN(series.RSI[14]) {
		t.Errorf("RSI warm-up boundary wrong: [13]=%v [14]=%v", series.RSI[13], series.RSI[14])
	}
}

func TestComputeIndicatorSeries_ShortSeries(t *testing.T) {
	ind := latestIndicators(computeIndicatorSeries(barsFromCloses([]float64{100, 101, 102})))

	if !math.IsNaN(ind.MA20) {
		t.Errorf("MA20 = %v, want NaN", ind.MA20)
	}
	if !math.IsNaN(ind.MA50) {
		t.Errorf("MA50 = %v, want NaN", ind.MA50)
	}
	if !math.IsNaN(ind.RSI) {
		t.Errorf("RSI = %v, want NaN", ind.RSI)
	}
	if math.IsNaN(ind.MACD) {
		t.Errorf("MACD should be defined for any non-empty series, got NaN")
	}
}

func TestComputeRisk(t *testing.T) {
	closes := []float64{100, 110, 99, 120, 108, 130}
	risk := computeRisk(closes)

	// Peak 120 to trough 108 is the deepest decline: 108/120 - 1 = -0.1.
	if math.Abs(risk.MaxDrawdown-(-0.1)) > 1e-9 {
		t.Errorf("MaxDrawdown = %v, want -0.1", risk.MaxDrawdown)
	}

	if math.IsNaN(risk.SharpeRatio) {
		t.Errorf("SharpeRatio should be defined, got NaN")
	}
	if risk.ValueAtRisk95 >= 0 {
		t.Errorf("ValueAtRisk95 = %v, want negative", risk.ValueAtRisk95)
	}
	if risk.StdDeviation <= 0 {
		t.Errorf("StdDeviation = %v, want positive", risk.StdDeviation)
	}
}

func TestMaxDrawdown_Monotonic(t *testing.T) {
	if dd := maxDrawdown([]float64{100, 101, 102, 103}); dd != 0 {
		t.Errorf("maxDrawdown of rising series = %v, want 0", dd)
	}
}
